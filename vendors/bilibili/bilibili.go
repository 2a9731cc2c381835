package bilibili

import (
	json "github.com/json-iterator/go"
)

type apiResp[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TTL     int    `json:"ttl"`
	Data    *T     `json:"data"`
}

// decodeResp decodes the common {code,message,data} envelope. A malformed
// body is one error; no partial data is returned.
func decodeResp[T any](body []byte) (*apiResp[T], error) {
	var r apiResp[T]
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// decodeData requires code 0 and a data object.
func decodeData[T any](body []byte) (*T, error) {
	r, err := decodeResp[T](body)
	if err != nil {
		return nil, err
	}
	if r.Code != 0 {
		return nil, &APIError{Code: r.Code, Message: r.Message}
	}
	if r.Data == nil {
		return nil, &APIError{Code: -1, Message: "empty data"}
	}
	return r.Data, nil
}

type webQRCodeData struct {
	URL       string `json:"url"`
	QrcodeKey string `json:"qrcode_key"`
}

type webQRPollData struct {
	URL          string `json:"url"`
	RefreshToken string `json:"refresh_token"`
	Timestamp    int64  `json:"timestamp"`
	Code         int    `json:"code"`
	Message      string `json:"message"`
}

type tvQRCodeData struct {
	URL      string `json:"url"`
	AuthCode string `json:"auth_code"`
}

type tvToken struct {
	Mid          int64  `json:"mid"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type tvQRPollData struct {
	tvToken
	TokenInfo  *tvToken `json:"token_info"`
	CookieInfo *struct {
		Cookies []struct {
			Name     string `json:"name"`
			Value    string `json:"value"`
			HTTPOnly int    `json:"http_only"`
			Expires  int64  `json:"expires"`
		} `json:"cookies"`
		Domains []string `json:"domains"`
	} `json:"cookie_info"`
}

type buvidData struct {
	B3 string `json:"b_3"`
	B4 string `json:"b_4"`
}

type navData struct {
	IsLogin bool   `json:"isLogin"`
	Mid     int64  `json:"mid"`
	Uname   string `json:"uname"`
	WbiImg  struct {
		ImgURL string `json:"img_url"`
		SubURL string `json:"sub_url"`
	} `json:"wbi_img"`
}

type ticketData struct {
	Ticket    string `json:"ticket"`
	CreatedAt int64  `json:"created_at"`
	TTL       int64  `json:"ttl"`
}

type actionData struct {
	Like   *bool `json:"like"`
	Coin   *bool `json:"coin"`
	Fav    *bool `json:"fav"`
	Prompt *bool `json:"prompt"`
}
