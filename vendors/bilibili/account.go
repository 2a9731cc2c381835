package bilibili

import (
	"strings"

	"golang.org/x/exp/maps"
)

const (
	CookieCSRF    = "bili_jct"
	CookieSESS    = "SESSDATA"
	CookieBuvid3  = "buvid3"
	CookieBuvid4  = "buvid4"
	CookieTicket  = "bili_ticket"
	CookieDedeUID = "DedeUserID"
)

// Account is the single persisted session record. Empty strings mean absent.
type Account struct {
	Cookies         map[string]string `json:"cookies"`
	AccessToken     string            `json:"accessToken,omitempty"`
	RefreshToken    string            `json:"refreshToken,omitempty"`
	AppRefreshToken string            `json:"appRefreshToken,omitempty"`
	Buvid3          string            `json:"buvid3,omitempty"`
	Buvid4          string            `json:"buvid4,omitempty"`
	BNut            string            `json:"bNut,omitempty"`
	Ticket          string            `json:"biliTicket,omitempty"`
	WbiImgKey       string            `json:"wbiImgKey,omitempty"`
	WbiSubKey       string            `json:"wbiSubKey,omitempty"`
	UpdatedAtMillis int64             `json:"updatedAtMillis,omitempty"`
}

func (a *Account) CSRFToken() string {
	if a == nil {
		return ""
	}
	return a.Cookies[CookieCSRF]
}

func (a *Account) IsLogin() bool {
	if a == nil {
		return false
	}
	return a.Cookies[CookieSESS] != "" || a.AccessToken != ""
}

// HasWbiKeys reports whether both key fragments are present.
// One fragment alone is never usable.
func (a *Account) HasWbiKeys() bool {
	return a != nil && a.WbiImgKey != "" && a.WbiSubKey != ""
}

// CookieHeader renders the cookie map as a single Cookie header value,
// ordered by name so the output is stable.
func (a *Account) CookieHeader() string {
	if a == nil || len(a.Cookies) == 0 {
		return ""
	}
	names := sortedKeys(a.Cookies)
	var sb strings.Builder
	for i, name := range names {
		if i != 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(a.Cookies[name])
	}
	return sb.String()
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	n := *a
	if a.Cookies != nil {
		n.Cookies = maps.Clone(a.Cookies)
	}
	return &n
}

// MergeCookies overwrites base key-wise with updates. Neither input is
// modified; base is returned as is when there is nothing to merge.
func MergeCookies(base, updates map[string]string) map[string]string {
	if len(updates) == 0 {
		return base
	}
	merged := make(map[string]string, len(base)+len(updates))
	maps.Copy(merged, base)
	maps.Copy(merged, updates)
	return merged
}
