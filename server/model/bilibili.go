package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/lightningstudio/watchbili/utils"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

const maxSignParams = 64

var (
	ErrEmptyKey   = errors.New("key is empty")
	ErrEmptyVideo = errors.New("video is empty")
)

type QRCodePollReq struct {
	Key string `json:"key"`
}

func (r *QRCodePollReq) Decode(ctx *gin.Context) error {
	return decodeJSON(ctx, r)
}

func (r *QRCodePollReq) Validate() error {
	if r.Key == "" {
		return ErrEmptyKey
	}
	return nil
}

type FollowUpResp struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

type QRCodePollResp struct {
	Status    string         `json:"status"`
	Code      int            `json:"code"`
	Message   string         `json:"message,omitempty"`
	FollowUps []FollowUpResp `json:"followUps,omitempty"`
}

// NewQRCodePollResp leaves the credentials out; they stay in the store.
func NewQRCodePollResp(r *bilibili.PollResult) *QRCodePollResp {
	resp := &QRCodePollResp{
		Status:  r.State.String(),
		Code:    r.Code,
		Message: r.Message,
	}
	for _, f := range r.FollowUps {
		fr := FollowUpResp{Name: f.Name}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		resp.FollowUps = append(resp.FollowUps, fr)
	}
	return resp
}

type AccountResp struct {
	IsLogin     bool     `json:"isLogin"`
	Mid         int64    `json:"mid,omitempty"`
	Uname       string   `json:"uname,omitempty"`
	AccessToken string   `json:"accessToken,omitempty"`
	CSRF        string   `json:"csrf,omitempty"`
	Buvid3      string   `json:"buvid3,omitempty"`
	Buvid4      string   `json:"buvid4,omitempty"`
	HasWbiKeys  bool     `json:"hasWbiKeys"`
	HasTicket   bool     `json:"hasTicket"`
	Cookies     []string `json:"cookies,omitempty"`
	UpdatedAt   int64    `json:"updatedAt,omitempty"`
}

// NewAccountResp summarizes a with every secret masked. Only cookie names
// are listed.
func NewAccountResp(a *bilibili.Account) *AccountResp {
	if a == nil {
		return &AccountResp{}
	}
	resp := &AccountResp{
		IsLogin:     a.IsLogin(),
		AccessToken: utils.Mask(a.AccessToken),
		CSRF:        utils.Mask(a.CSRFToken()),
		Buvid3:      a.Buvid3,
		Buvid4:      a.Buvid4,
		HasWbiKeys:  a.HasWbiKeys(),
		HasTicket:   a.Ticket != "",
		UpdatedAt:   a.UpdatedAtMillis,
	}
	for name := range a.Cookies {
		resp.Cookies = append(resp.Cookies, name)
	}
	slices.Sort(resp.Cookies)
	return resp
}

type SignReq struct {
	Params map[string]string `json:"params"`
}

func (r *SignReq) Decode(ctx *gin.Context) error {
	return decodeJSON(ctx, r)
}

func (r *SignReq) Validate() error {
	if len(r.Params) > maxSignParams {
		return fmt.Errorf("too many params: %d > %d", len(r.Params), maxSignParams)
	}
	for k := range r.Params {
		if k == "" {
			return errors.New("param name is empty")
		}
	}
	return nil
}

type SignResp struct {
	Params map[string]string `json:"params"`
}

type ActionReq struct {
	Video      string  `json:"video"`
	Like       *bool   `json:"like"`
	Multiply   int     `json:"multiply"`
	SelectLike bool    `json:"selectLike"`
	Add        []int64 `json:"add"`
	Del        []int64 `json:"del"`
	PreferWeb  bool    `json:"preferWeb"`

	id bilibili.VideoID
}

func (r *ActionReq) Decode(ctx *gin.Context) error {
	return decodeJSON(ctx, r)
}

func (r *ActionReq) Validate() (err error) {
	if r.Video == "" {
		return ErrEmptyVideo
	}
	r.id, err = bilibili.ParseVideoID(r.Video)
	return err
}

func (r *ActionReq) VideoID() bilibili.VideoID {
	return r.id
}

func (r *ActionReq) Options() []bilibili.ActionOption {
	if r.PreferWeb {
		return []bilibili.ActionOption{bilibili.PreferWeb()}
	}
	return nil
}
