package conf

type RateLimitConfig struct {
	Enable                bool   `yaml:"enable" lc:"default: false" env:"SERVER_RATE_LIMIT_ENABLE"`
	Period                string `yaml:"period" hc:"window length, a go duration like 1m" env:"SERVER_RATE_LIMIT_PERIOD"`
	Limit                 int64  `yaml:"limit" hc:"requests per client ip and period" env:"SERVER_RATE_LIMIT_LIMIT"`
	TrustForwardHeader    bool   `yaml:"trust_forward_header" lc:"default: false" hc:"trust X-Real-IP and X-Forwarded-For. Only enable behind a reverse proxy that sets them." env:"SERVER_TRUST_FORWARD_HEADER"`
	TrustedClientIPHeader string `yaml:"trusted_client_ip_header" hc:"read the client ip from this header. Only set behind a reverse proxy that sets it." env:"SERVER_TRUSTED_CLIENT_IP_HEADER"`
}

// A qrcode poll every two seconds stays well under the default limit.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enable: false,
		Period: "1m",
		Limit:  120,
	}
}
