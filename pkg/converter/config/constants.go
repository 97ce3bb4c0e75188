package config

import "time"

const (
	defaultRegistryRequestTimeout = 5 * time.Second

	minRegistryRequestTimeout = 100 * time.Millisecond
	maxRegistryRequestTimeout = time.Minute
)
