package config_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	s, err := config.Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), s)
}

func TestLoad_ConfigFile(t *testing.T) {
	v := newViper(t)
	v.SetConfigType(config.ConfigFileType)

	raw := []byte(`
language: EN
variant: last-names
traits: false
format: yaml
server:
  port: "9090"
  cache_ttl: 1m
calendar:
  reminder: -P1D
contacts:
  url: https://dav.example.com/contacts/
  user: alice
`)
	require.NoError(t, v.ReadConfig(bytes.NewReader(raw)))

	s, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "en", s.Language, "language is normalized")
	assert.Equal(t, config.VariantLastNames, s.Variant)
	assert.False(t, s.Traits)
	assert.Equal(t, config.FormatYAML, s.Format)
	assert.Equal(t, "9090", s.Server.Port)
	assert.Equal(t, time.Minute, s.Server.CacheTTL)
	assert.Equal(t, "-P1D", s.Calendar.Reminder)
	assert.Equal(t, "alice", s.Contacts.User)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("PYTHAGORE_SERVER_PORT", "7000")
	t.Setenv("PYTHAGORE_LANGUAGE", "en")

	v := newViper(t)
	v.SetConfigType(config.ConfigFileType)
	require.NoError(t, v.ReadConfig(bytes.NewReader([]byte("server:\n  port: \"9090\"\n"))))

	s, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "7000", s.Server.Port)
	assert.Equal(t, "en", s.Language)
}

func TestLoad_Invalid(t *testing.T) {
	v := newViper(t)
	v.Set(config.KeyLanguage, "de")
	v.Set(config.KeyFormat, "pdf")

	_, err := config.Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLanguageUnknown)
	assert.Contains(t, err.Error(), config.ErrFormatUnknown)
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    string
		wantErr string
	}{
		{"18080", ""},
		{"1", ""},
		{"65535", ""},
		{"", config.ErrPortRequired},
		{"abc", config.ErrPortNumber},
		{"0", config.ErrPortRange},
		{"70000", config.ErrPortRange},
	}

	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			err := config.ValidatePort(tt.port)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_YAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(config.Defaults())
	require.NoError(t, err)

	assert.Contains(t, string(data), "language: fr")
	assert.Contains(t, string(data), "variant: first-names")

	var back config.Settings
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, config.Defaults(), back)
}
