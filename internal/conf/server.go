package conf

//nolint:tagliatelle
type ServerConfig struct {
	Listen string `env:"SERVER_LISTEN" yaml:"listen"`
	Port   uint16 `env:"SERVER_PORT"   yaml:"port"`

	CertPath string `env:"SERVER_CERT_PATH" yaml:"cert_path"`
	KeyPath  string `env:"SERVER_KEY_PATH"  yaml:"key_path"`

	AllowOrigins []string `env:"SERVER_ALLOW_ORIGINS" yaml:"allow_origins" hc:"cors allow origins, empty means allow all"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Listen: "127.0.0.1",
		Port:   8080,
	}
}
