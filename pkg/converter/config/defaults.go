package config

// applyDefaults applies default values to the configuration
func applyDefaults(cfg *Config) {
	if cfg.Registry.RequestTimeout == 0 {
		cfg.Registry.RequestTimeout = defaultRegistryRequestTimeout
	}
}
