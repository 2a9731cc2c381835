package bilibili

import (
	"context"
	"fmt"
)

type UserInfo struct {
	IsLogin bool   `json:"isLogin"`
	Mid     int64  `json:"mid"`
	Uname   string `json:"uname"`
}

// UserInfo asks nav who the stored cookies belong to. An anonymous session
// is not an error; IsLogin is false then.
func (c *Client) UserInfo(ctx context.Context) (*UserInfo, error) {
	resp, err := c.gateway.Get(ctx, c.conf.WebBaseURL+"/x/web-interface/nav", nil)
	if err != nil {
		return nil, err
	}
	r, err := decodeResp[navData](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode nav: %w", err)
	}
	if r.Data == nil || r.Code != 0 {
		return &UserInfo{}, nil
	}
	return &UserInfo{
		IsLogin: r.Data.IsLogin,
		Mid:     r.Data.Mid,
		Uname:   r.Data.Uname,
	}, nil
}
