package conf

import (
	json "github.com/json-iterator/go"
	"github.com/lightningstudio/watchbili/utils"
)

var Conf *Config

//nolint:tagliatelle
type Config struct {
	// Log
	Log LogConfig `yaml:"log"`

	// Server
	Server ServerConfig `yaml:"server"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Keyring
	Keyring KeyringConfig `yaml:"keyring"`

	// Bilibili
	Bilibili BilibiliConfig `yaml:"bilibili"`

	// RateLimit
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

func (c *Config) Save(file string) error {
	return utils.WriteYaml(file, c)
}

func (c *Config) String() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func DefaultConfig() *Config {
	return &Config{
		// Log
		Log: DefaultLogConfig(),

		// Server
		Server: DefaultServerConfig(),

		// Database
		Database: DefaultDatabaseConfig(),

		// Keyring
		Keyring: DefaultKeyringConfig(),

		// Bilibili
		Bilibili: DefaultBilibiliConfig(),

		// RateLimit
		RateLimit: DefaultRateLimitConfig(),
	}
}
