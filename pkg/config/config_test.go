package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hmibroker/pkg/logger"
	"github.com/carverauto/hmibroker/pkg/models"
)

var errNameRequired = errors.New("name is required")

type testNested struct {
	Level string `json:"level"`
}

type testServiceConfig struct {
	Name     string              `json:"name"`
	NATS     models.NATSConfig   `json:"nats"`
	Timeout  models.Duration     `json:"timeout"`
	Language models.Language     `json:"language"`
	Buttons  []models.ButtonName `json:"buttons,omitempty"`
	Modes    []uint32            `json:"modes,omitempty"`
	FailOpen *bool               `json:"fail_open,omitempty"`
	Optional *testNested         `json:"optional,omitempty"`
}

func (c *testServiceConfig) Validate() error {
	if c.Name == "" {
		return errNameRequired
	}

	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hmibroker.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadAndValidateFileWithOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"name": "broker",
		"nats": {"url": "nats://file:4222", "hmi_prefix": "hmi"},
		"timeout": "5s",
		"language": "EN-US"
	}`)

	t.Setenv("HMIBROKER_NATS_URL", "nats://env:4222")
	t.Setenv("HMIBROKER_TIMEOUT", "1m")
	t.Setenv("HMIBROKER_LANGUAGE", "de_de")
	t.Setenv("HMIBROKER_BUTTONS", "OK, PLAY_PAUSE")
	t.Setenv("HMIBROKER_MODES", "[1, 2]")
	t.Setenv("HMIBROKER_FAIL_OPEN", "false")

	var cfg testServiceConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "broker", cfg.Name)
	assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
	assert.Equal(t, "hmi", cfg.NATS.HMIPrefix)
	assert.Equal(t, time.Minute, time.Duration(cfg.Timeout))
	assert.Equal(t, models.LanguageDeDE, cfg.Language)
	assert.Equal(t, []models.ButtonName{models.ButtonOK, models.ButtonPlayPause}, cfg.Buttons)
	assert.Equal(t, []uint32{1, 2}, cfg.Modes)
	require.NotNil(t, cfg.FailOpen)
	assert.False(t, *cfg.FailOpen)
	assert.Nil(t, cfg.Optional, "untouched pointer sections stay nil")
	assert.Nil(t, cfg.NATS.Security)
}

func TestLoadAndValidateErrors(t *testing.T) {
	ctx := context.Background()
	loader := NewConfig(nil)

	var cfg testServiceConfig

	err := loader.LoadAndValidate(ctx, writeConfig(t, `{"nats": {}}`), &cfg)
	require.ErrorIs(t, err, errNameRequired)

	err = loader.LoadAndValidate(ctx, writeConfig(t, `{"name": "x", "typo": true}`), &cfg)
	require.Error(t, err)

	err = loader.LoadAndValidate(ctx, filepath.Join(t.TempDir(), "missing.json"), &cfg)
	require.Error(t, err)

	err = loader.LoadAndValidate(ctx, "", &cfg)
	require.ErrorIs(t, err, errEmptyPath)

	t.Setenv("HMIBROKER_LANGUAGE", "KLINGON")
	err = loader.LoadAndValidate(ctx, writeConfig(t, `{"name": "x"}`), &cfg)
	require.Error(t, err)
}

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("HMIBROKER_CONFIG_SOURCE", "env")
	t.Setenv("HMIBROKER_CONFIG_JSON", `{"name": "from-json", "nats": {"url": "nats://json:4222"}}`)
	t.Setenv("HMIBROKER_NAME", "from-var")
	t.Setenv("HMIBROKER_OPTIONAL_LEVEL", "debug")

	var cfg testServiceConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "from-var", cfg.Name)
	assert.Equal(t, "nats://json:4222", cfg.NATS.URL)
	require.NotNil(t, cfg.Optional)
	assert.Equal(t, "debug", cfg.Optional.Level)
}

func TestLoadInvalidSource(t *testing.T) {
	t.Setenv("HMIBROKER_CONFIG_SOURCE", "kv")

	var cfg testServiceConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestNormalizeSecurityConfig(t *testing.T) {
	path := writeConfig(t, `{
		"name": "broker",
		"nats": {
			"url": "tls://bus:4222",
			"security": {
				"mode": "mtls",
				"cert_dir": "/etc/hmibroker/certs",
				"tls": {"cert_file": "client.pem", "key_file": "client-key.pem", "ca_file": "/opt/ca/root.pem"}
			}
		}
	}`)

	var cfg testServiceConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))

	require.NotNil(t, cfg.NATS.Security)
	assert.Equal(t, "/etc/hmibroker/certs/client.pem", cfg.NATS.Security.TLS.CertFile)
	assert.Equal(t, "/etc/hmibroker/certs/client-key.pem", cfg.NATS.Security.TLS.KeyFile)
	assert.Equal(t, "/opt/ca/root.pem", cfg.NATS.Security.TLS.CAFile)
}

func TestEnvLoaderRejectsNonStruct(t *testing.T) {
	loader := NewEnvConfigLoader(nil, DefaultEnvPrefix)

	var s string
	require.ErrorIs(t, loader.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
	require.ErrorIs(t, loader.Load(context.Background(), "", nil), ErrDstMustBeNonNilPointer)
}

func TestValidateConfigIgnoresNonValidators(t *testing.T) {
	require.NoError(t, ValidateConfig(&struct{}{}))
}
