package conf

type KeyringConfig struct {
	Service  string `yaml:"service"   env:"KEYRING_SERVICE"   hc:"os keyring service name the master key is stored under"`
	FilePath string `yaml:"file_path" env:"KEYRING_FILE_PATH" hc:"fallback key file when no os keyring is available, relative to data-dir"`
	Disable  bool   `yaml:"disable"   env:"KEYRING_DISABLE"   hc:"store the account unencrypted"`
}

func DefaultKeyringConfig() KeyringConfig {
	return KeyringConfig{
		Service:  "watchbili",
		FilePath: "master.key",
	}
}
