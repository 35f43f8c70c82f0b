package config

// DefaultErrorPolicy is used when the configuration does not name one.
const DefaultErrorPolicy = "default"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ErrorPolicy: DefaultErrorPolicy,
	}
}

// mergeConfig fills missing fields of cfg from defaults.
func mergeConfig(cfg, defaults *Config) {
	if cfg.ErrorPolicy == "" {
		cfg.ErrorPolicy = defaults.ErrorPolicy
	}
}
