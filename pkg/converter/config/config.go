package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrInvalidConfiguration is returned when the converter configuration is
// missing, malformed, or out of range. The converter never becomes usable
// with an invalid configuration.
var ErrInvalidConfiguration = errors.New("invalid converter configuration")

// NewConverterConfigModule creates an fx module providing the converter Config.
// Configuration is read from the "converter" sub-tree of the application viper.
func NewConverterConfigModule() fx.Option {
	return fx.Module("converter-config",
		fx.Provide(newConfig),
	)
}

func newConfig(v *viper.Viper, logger *zap.Logger) (Config, error) {
	cfg, err := Load(v)
	if err != nil {
		return Config{}, err
	}

	logger.Info("loaded converter config",
		zap.String("registryURL", cfg.Registry.URL),
		zap.Duration("registryRequestTimeout", cfg.Registry.RequestTimeout),
		zap.String("sources", cfg.Sources),
	)
	return cfg, nil
}

// Load reads the converter configuration from the "converter" sub-tree,
// applies defaults, and validates it.
func Load(v *viper.Viper) (Config, error) {
	sub := v.Sub("converter")
	if sub == nil {
		return Config{}, fmt.Errorf("%w: missing 'converter' configuration section", ErrInvalidConfiguration)
	}

	var cfg Config
	if err := sub.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return cfg, nil
}
