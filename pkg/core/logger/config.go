package logger

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents the logger configuration.
type Config struct {
	// Level specifies the minimum logging level.
	Level zapcore.Level `mapstructure:"level"`

	// Development enables development mode with console encoding and
	// human-readable timestamps. In production mode JSON encoding is used.
	Development bool `mapstructure:"development"`

	// OutputPaths is a list of URLs or file paths to write logging output to.
	// If empty, defaults to stderr.
	OutputPaths []string `mapstructure:"outputPaths"`

	// StacktraceLevel sets the minimum level at which stacktraces are
	// captured. Defaults to ErrorLevel.
	StacktraceLevel zapcore.Level `mapstructure:"stacktraceLevel"`
}

func newConfig(v *viper.Viper) (Config, error) {
	sub := v.Sub("logger")
	if sub == nil {
		return Config{
			Level:           zapcore.InfoLevel,
			StacktraceLevel: zapcore.ErrorLevel,
		}, nil
	}

	var rawCfg struct {
		Level           string   `mapstructure:"level"`
		Development     bool     `mapstructure:"development"`
		OutputPaths     []string `mapstructure:"outputPaths"`
		StacktraceLevel string   `mapstructure:"stacktraceLevel"`
	}
	if err := sub.Unmarshal(&rawCfg); err != nil {
		return Config{}, fmt.Errorf("failed to load logger config: %w", err)
	}

	level, err := parseLevel(rawCfg.Level, zapcore.InfoLevel)
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level '%s': %w", rawCfg.Level, err)
	}

	stacktraceLevel, err := parseLevel(rawCfg.StacktraceLevel, zapcore.ErrorLevel)
	if err != nil {
		return Config{}, fmt.Errorf("invalid stacktrace level '%s': %w", rawCfg.StacktraceLevel, err)
	}

	return Config{
		Level:           level,
		Development:     rawCfg.Development,
		OutputPaths:     rawCfg.OutputPaths,
		StacktraceLevel: stacktraceLevel,
	}, nil
}

func parseLevel(raw string, fallback zapcore.Level) (zapcore.Level, error) {
	if raw == "" {
		return fallback, nil
	}
	return zapcore.ParseLevel(raw)
}
