// File: internal/config/config_test.go
package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "prahari", cfg.Logger.ServiceName)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.AnalyzeTemperature, 1e-9)
	assert.InDelta(t, 0.7, cfg.LLM.ScanTemperature, 1e-9)
	assert.Equal(t, 3, cfg.LLM.ScanProfileCount)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.StatsInterval)
	assert.Equal(t, 3500*time.Millisecond, cfg.Dashboard.FeedInterval)
	assert.Equal(t, 5, cfg.Dashboard.FeedSize)
	assert.NoError(t, cfg.Validate())
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	t.Run("Core Validation", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Server.Addr = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.addr is a required configuration field")
	})

	t.Run("LLM Validation", func(t *testing.T) {
		valid := NewDefaultConfig().LLM
		assert.NoError(t, valid.Validate())

		badProvider := valid
		badProvider.Provider = "openai"
		assert.ErrorContains(t, badProvider.Validate(), "unsupported provider")

		noModel := valid
		noModel.Model = ""
		assert.ErrorContains(t, noModel.Validate(), "model must be set")

		hot := valid
		hot.ScanTemperature = 2.5
		assert.ErrorContains(t, hot.Validate(), "temperatures must be between")

		noProfiles := valid
		noProfiles.ScanProfileCount = 0
		assert.ErrorContains(t, noProfiles.Validate(), "scan_profile_count")
	})

	t.Run("Dashboard Validation", func(t *testing.T) {
		d := NewDefaultConfig().Dashboard
		d.FeedInterval = 0
		assert.ErrorContains(t, d.Validate(), "must be positive durations")

		d = NewDefaultConfig().Dashboard
		d.FeedSize = -1
		assert.ErrorContains(t, d.Validate(), "feed_size")
	})

	t.Run("Missing API key is allowed", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.LLM.APIKey = ""
		assert.NoError(t, cfg.Validate())
	})
}

// -- Viper Loading Tests --

func TestNewConfigFromViper(t *testing.T) {
	yamlConfig := []byte(`
logger:
  level: debug
server:
  addr: "127.0.0.1:9090"
  allowed_origins: ["https://dash.example"]
llm:
  model: gemini-2.5-pro
  api_timeout: 5s
dashboard:
  feed_size: 8
`)
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlConfig)))

	t.Setenv("PRAHARI_LLM_API_KEY", "from-env")

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://dash.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.APITimeout)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, 8, cfg.Dashboard.FeedSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, 2*time.Second, cfg.Dashboard.StatsInterval)
}

func TestNewConfigFromViper_APIKeyFallback(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	t.Setenv("PRAHARI_LLM_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.LLM.APIKey)
}

func TestNewConfigFromViper_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("llm.provider", "claude")

	_, err := NewConfigFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
