package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateConfig validates the entire converter configuration
func validateConfig(cfg *Config) error {
	if err := validateSources(cfg); err != nil {
		return err
	}
	if err := validateRegistry(&cfg.Registry); err != nil {
		return err
	}
	return nil
}

// validateSources validates the source mapping string
func validateSources(cfg *Config) error {
	if strings.TrimSpace(cfg.Sources) == "" {
		return fmt.Errorf("converter sources cannot be empty")
	}
	return nil
}

// validateRegistry validates the Schema Registry configuration
func validateRegistry(cfg *RegistryConfig) error {
	if cfg.URL != "" {
		parsed, err := url.Parse(cfg.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("registry URL must be a valid absolute URL, got: %s", cfg.URL)
		}
	}
	if cfg.RequestTimeout < minRegistryRequestTimeout || cfg.RequestTimeout > maxRegistryRequestTimeout {
		return fmt.Errorf("registry request timeout must be between %v and %v, got: %v",
			minRegistryRequestTimeout, maxRegistryRequestTimeout, cfg.RequestTimeout)
	}
	return nil
}
