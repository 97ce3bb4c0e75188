package config

import "time"

// Config represents the converter configuration.
type Config struct {
	// Sources is a comma-separated list of identifier=locator pairs binding
	// each source identifier to its schema. The locator is a registry subject
	// name when Registry.URL is set, otherwise a local schema file path.
	Sources string `mapstructure:"sources"`
	// Registry configures the optional Confluent Schema Registry connection.
	Registry RegistryConfig `mapstructure:"registry"`
}

// RegistryConfig represents the Schema Registry connection configuration.
type RegistryConfig struct {
	// URL is the Schema Registry endpoint (e.g. "http://schema-registry:8081").
	// Leave empty to resolve all source locators as local file paths.
	URL string `mapstructure:"url"`
	// RequestTimeout bounds each registry call (100ms-1m, default 5s).
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}
