package bilibili

import "time"

type Config struct {
	AppKey    string
	AppSec    string
	TVAppKey  string
	TVAppSec  string
	TVMobiApp string
	TVLocalID string
	MobiApp   string
	Platform  string
	Build     int

	WebUserAgent string
	AppUserAgent string
	WebReferer   string

	WebBaseURL      string
	AppBaseURL      string
	PassportBaseURL string

	// The ticket signing key and its id are issued by the remote service and
	// may rotate without notice.
	TicketKeyID   string
	TicketHMACKey string

	// Timeout bounds a request whose context carries no deadline.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		AppKey:    "1d8b6e7d45233436",
		AppSec:    "560c52ccd288fed045859ed18bffd973",
		TVAppKey:  "4409e2ce8ffd12b8",
		TVAppSec:  "59b43e04ad6965f34319062b478f83dd",
		TVMobiApp: "android_tv_yst",
		TVLocalID: "0",
		MobiApp:   "android",
		Platform:  "android",
		Build:     7000000,

		WebUserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		AppUserAgent: "Mozilla/5.0 (Linux; Android 12; OPPO WatchRSS) AppleWebKit/537.36 (KHTML, like Gecko) Mobile Safari/537.36",
		WebReferer:   "https://www.bilibili.com/",

		WebBaseURL:      "https://api.bilibili.com",
		AppBaseURL:      "https://app.bilibili.com",
		PassportBaseURL: "https://passport.bilibili.com",

		TicketKeyID:   "ec02",
		TicketHMACKey: "XgwSnGZ1p",

		Timeout: 20 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.AppKey, d.AppKey)
	fill(&c.AppSec, d.AppSec)
	fill(&c.TVAppKey, d.TVAppKey)
	fill(&c.TVAppSec, d.TVAppSec)
	fill(&c.TVMobiApp, d.TVMobiApp)
	fill(&c.TVLocalID, d.TVLocalID)
	fill(&c.MobiApp, d.MobiApp)
	fill(&c.Platform, d.Platform)
	fill(&c.WebUserAgent, d.WebUserAgent)
	fill(&c.AppUserAgent, d.AppUserAgent)
	fill(&c.WebReferer, d.WebReferer)
	fill(&c.WebBaseURL, d.WebBaseURL)
	fill(&c.AppBaseURL, d.AppBaseURL)
	fill(&c.PassportBaseURL, d.PassportBaseURL)
	fill(&c.TicketKeyID, d.TicketKeyID)
	fill(&c.TicketHMACKey, d.TicketHMACKey)
	if c.Build == 0 {
		c.Build = d.Build
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}
