package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewViper_Success(t *testing.T) {
	// Arrange
	configFile := writeConfigFile(t, `
converter:
  sources: "orders=/schemas/orders.avsc"
  registry:
    url: http://localhost:8081
`)

	appCfg := AppConfig{
		ConfigFile:     configFile,
		ServiceName:    "record-converter",
		ServiceVersion: "1.0.0",
		Environment:    "test",
	}

	// Act
	v, err := newViper(appCfg)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "orders=/schemas/orders.avsc", v.GetString("converter.sources"))
	assert.Equal(t, "http://localhost:8081", v.GetString("converter.registry.url"))
}

func TestNewViper_FileNotFound(t *testing.T) {
	// Arrange
	appCfg := AppConfig{
		ConfigFile:     "/nonexistent/path/config.yaml",
		ServiceName:    "record-converter",
		ServiceVersion: "1.0.0",
		Environment:    "test",
	}

	// Act
	v, err := newViper(appCfg)

	// Assert
	require.Error(t, err)
	assert.Nil(t, v)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestNewViper_InvalidYAML(t *testing.T) {
	// Arrange
	configFile := writeConfigFile(t, `
converter:
  sources: "orders=/schemas/orders.avsc"
invalid yaml syntax here: [[[
`)

	appCfg := AppConfig{
		ConfigFile:     configFile,
		ServiceName:    "record-converter",
		ServiceVersion: "1.0.0",
		Environment:    "test",
	}

	// Act
	v, err := newViper(appCfg)

	// Assert
	require.Error(t, err)
	assert.Nil(t, v)
}

func TestNewViper_EnvVarOverride(t *testing.T) {
	// Arrange
	configFile := writeConfigFile(t, `
converter:
  sources: "orders=/schemas/orders.avsc"
  registry:
    url: http://localhost:8081
`)

	t.Setenv("CONVERTER_REGISTRY_URL", "http://registry:9091")

	appCfg := AppConfig{
		ConfigFile:     configFile,
		ServiceName:    "record-converter",
		ServiceVersion: "1.0.0",
		Environment:    "test",
	}

	// Act
	v, err := newViper(appCfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://registry:9091", v.GetString("converter.registry.url"))
}

func TestNewViper_EnvKeyReplacer(t *testing.T) {
	// Arrange: dots and dashes in the key map to underscores in the env name.
	configFile := writeConfigFile(t, `
converter:
  registry:
    request-timeout: 5s
`)

	t.Setenv("CONVERTER_REGISTRY_REQUEST_TIMEOUT", "10s")

	appCfg := AppConfig{
		ConfigFile:     configFile,
		ServiceName:    "record-converter",
		ServiceVersion: "1.0.0",
		Environment:    "test",
	}

	// Act
	v, err := newViper(appCfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "10s", v.GetString("converter.registry.request-timeout"))
}
