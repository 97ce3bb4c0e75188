// Package config provides application identity and viper configuration
// loading as fx modules.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Environment variable names
const (
	envAppEnv            = "APP_ENV"
	envAppServiceName    = "APP_SERVICE_NAME"
	envAppServiceVersion = "APP_SERVICE_VERSION"
	envConfigFile        = "CONFIG_FILE"
	envConfigDir         = "CONFIG_DIR"
	envConfigName        = "CONFIG_NAME"
)

const defaultConfigDir = "./configs"

// AppConfig carries the service identity and configuration file location.
// It is the injected, read-only source of name/version metadata for every
// component that needs it.
type AppConfig struct {
	// ConfigFile is the full path to the config file
	ConfigFile string
	// ServiceName is the name of the service
	ServiceName string
	// ServiceVersion is the version of the service
	ServiceVersion string
	// Environment is the deployment environment (e.g. "local", "staging", "pro")
	Environment string
}

// NewAppConfigModule creates a new fx module providing AppConfig loaded from
// environment variables.
//
// Required environment variables:
//   - APP_ENV: Environment name
//   - APP_SERVICE_NAME: Service name
//   - APP_SERVICE_VERSION: Service version
//
// Optional environment variables:
//   - CONFIG_FILE: Full path to config file (default: ./configs/config.{env}.yaml)
func NewAppConfigModule() fx.Option {
	return fx.Module("appconfig",
		fx.Provide(newAppConfig),
		fx.Invoke(func(logger *zap.Logger, conf AppConfig) {
			logger.Info("loaded application configuration",
				zap.String("service", conf.ServiceName),
				zap.String("version", conf.ServiceVersion),
				zap.String("environment", conf.Environment),
				zap.String("configFile", conf.ConfigFile),
			)
		}),
	)
}

// newAppConfig reads the application identity from environment variables,
// loading a .env file first if one exists.
func newAppConfig() (AppConfig, error) {
	_ = godotenv.Load()

	env := os.Getenv(envAppEnv)
	if env == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppEnv)
	}

	serviceName := os.Getenv(envAppServiceName)
	if serviceName == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppServiceName)
	}

	serviceVersion := os.Getenv(envAppServiceVersion)
	if serviceVersion == "" {
		return AppConfig{}, fmt.Errorf("%s is required", envAppServiceVersion)
	}

	configFile := os.Getenv(envConfigFile)
	if configFile == "" {
		configDir := os.Getenv(envConfigDir)
		if configDir == "" {
			configDir = defaultConfigDir
		}

		configName := os.Getenv(envConfigName)
		if configName == "" {
			configName = "config." + env
		}

		configFile = filepath.Join(configDir, configName+".yaml")
	}

	return AppConfig{
		ConfigFile:     configFile,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    env,
	}, nil
}
