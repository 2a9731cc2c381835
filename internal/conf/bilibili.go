package conf

import (
	"time"

	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

//nolint:tagliatelle
type BilibiliConfig struct {
	AppKey    string `yaml:"app_key"     env:"BILIBILI_APP_KEY"`
	AppSec    string `yaml:"app_sec"     env:"BILIBILI_APP_SEC"`
	TVAppKey  string `yaml:"tv_app_key"  env:"BILIBILI_TV_APP_KEY"`
	TVAppSec  string `yaml:"tv_app_sec"  env:"BILIBILI_TV_APP_SEC"`
	MobiApp   string `yaml:"mobi_app"    env:"BILIBILI_MOBI_APP"`
	Platform  string `yaml:"platform"    env:"BILIBILI_PLATFORM"`
	Build     int    `yaml:"build"       env:"BILIBILI_BUILD"`
	UserAgent string `yaml:"user_agent"  env:"BILIBILI_USER_AGENT"`
	Referer   string `yaml:"referer"     env:"BILIBILI_REFERER"`

	WebBaseURL      string `yaml:"web_base_url"      env:"BILIBILI_WEB_BASE_URL"`
	AppBaseURL      string `yaml:"app_base_url"      env:"BILIBILI_APP_BASE_URL"`
	PassportBaseURL string `yaml:"passport_base_url" env:"BILIBILI_PASSPORT_BASE_URL"`

	TicketKeyID   string `yaml:"ticket_key_id"   env:"BILIBILI_TICKET_KEY_ID"   hc:"issued by the remote service, may rotate"`
	TicketHMACKey string `yaml:"ticket_hmac_key" env:"BILIBILI_TICKET_HMAC_KEY"`

	Timeout int `yaml:"timeout" env:"BILIBILI_TIMEOUT" hc:"request timeout" cm:"seconds"`

	Debug bool `yaml:"debug" env:"BILIBILI_DEBUG" hc:"log best-effort refresh failures"`
}

func DefaultBilibiliConfig() BilibiliConfig {
	d := bilibili.DefaultConfig()
	return BilibiliConfig{
		AppKey:          d.AppKey,
		AppSec:          d.AppSec,
		TVAppKey:        d.TVAppKey,
		TVAppSec:        d.TVAppSec,
		MobiApp:         d.MobiApp,
		Platform:        d.Platform,
		Build:           d.Build,
		UserAgent:       d.WebUserAgent,
		Referer:         d.WebReferer,
		WebBaseURL:      d.WebBaseURL,
		AppBaseURL:      d.AppBaseURL,
		PassportBaseURL: d.PassportBaseURL,
		TicketKeyID:     d.TicketKeyID,
		TicketHMACKey:   d.TicketHMACKey,
		Timeout:         int(d.Timeout / time.Second),
	}
}

// ToBilibili converts to the client config. Zero fields fall back to the
// client defaults.
func (c BilibiliConfig) ToBilibili() bilibili.Config {
	return bilibili.Config{
		AppKey:          c.AppKey,
		AppSec:          c.AppSec,
		TVAppKey:        c.TVAppKey,
		TVAppSec:        c.TVAppSec,
		MobiApp:         c.MobiApp,
		Platform:        c.Platform,
		Build:           c.Build,
		WebUserAgent:    c.UserAgent,
		WebReferer:      c.Referer,
		WebBaseURL:      c.WebBaseURL,
		AppBaseURL:      c.AppBaseURL,
		PassportBaseURL: c.PassportBaseURL,
		TicketKeyID:     c.TicketKeyID,
		TicketHMACKey:   c.TicketHMACKey,
		Timeout:         time.Duration(c.Timeout) * time.Second,
	}
}
