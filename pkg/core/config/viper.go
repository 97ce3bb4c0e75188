package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewViperModule creates an fx module providing the application *viper.Viper
// loaded from the AppConfig config file.
func NewViperModule() fx.Option {
	return fx.Module("viper",
		fx.Provide(newViper),
		fx.Invoke(func(logger *zap.Logger, v *viper.Viper) {
			logger.Info("configuration loaded",
				zap.String("configFile", v.ConfigFileUsed()),
				zap.Int("settingsCount", len(v.AllSettings())),
			)
		}),
	)
}

func newViper(conf AppConfig) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetConfigFile(conf.ConfigFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file [%s]: %w", conf.ConfigFile, err)
	}

	return v, nil
}
