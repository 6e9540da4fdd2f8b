// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// LLMProvider names a supported generative model backend.
type LLMProvider string

const (
	// ProviderGemini is Google's Gemini API.
	ProviderGemini LLMProvider = "gemini"
)

// Config holds the entire application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	LLM       LLMConfig       `mapstructure:"llm" yaml:"llm"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig maps log levels to terminal color names.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
}

// LLMConfig defines the generative model used by the analysis service.
type LLMConfig struct {
	Provider           LLMProvider   `mapstructure:"provider" yaml:"provider"`
	Model              string        `mapstructure:"model" yaml:"model"`
	APIKey             string        `mapstructure:"api_key" yaml:"api_key"`
	Endpoint           string        `mapstructure:"endpoint" yaml:"endpoint"`
	APITimeout         time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	AnalyzeTemperature float64       `mapstructure:"analyze_temperature" yaml:"analyze_temperature"`
	ScanTemperature    float64       `mapstructure:"scan_temperature" yaml:"scan_temperature"`
	ScanProfileCount   int           `mapstructure:"scan_profile_count" yaml:"scan_profile_count"`
}

// DashboardConfig controls the command center's live data simulation.
type DashboardConfig struct {
	StatsInterval time.Duration `mapstructure:"stats_interval" yaml:"stats_interval"`
	FeedInterval  time.Duration `mapstructure:"feed_interval" yaml:"feed_interval"`
	FeedSize      int           `mapstructure:"feed_size" yaml:"feed_size"`
}

// NewDefaultConfig returns a configuration populated only with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "prahari")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Server --
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.metrics_enabled", true)

	// -- LLM --
	v.SetDefault("llm.provider", string(ProviderGemini))
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.api_timeout", "60s")
	v.SetDefault("llm.analyze_temperature", 0.3)
	v.SetDefault("llm.scan_temperature", 0.7)
	v.SetDefault("llm.scan_profile_count", 3)

	// -- Dashboard --
	v.SetDefault("dashboard.stats_interval", "2s")
	v.SetDefault("dashboard.feed_interval", "3500ms")
	v.SetDefault("dashboard.feed_size", 5)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// The key is sensitive, so it usually arrives through the environment.
	_ = v.BindEnv("llm.api_key", "PRAHARI_LLM_API_KEY")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Fall back to the conventional variable used by the dashboard build.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
// A missing API key is not an error: analysis degrades to the fallback result.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is a required configuration field")
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm configuration invalid: %w", err)
	}
	if err := c.Dashboard.Validate(); err != nil {
		return fmt.Errorf("dashboard configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the LLM configuration.
func (l *LLMConfig) Validate() error {
	if l.Provider != ProviderGemini {
		return fmt.Errorf("unsupported provider '%s' (supported: %s)", l.Provider, ProviderGemini)
	}
	if l.Model == "" {
		return fmt.Errorf("model must be set")
	}
	if l.AnalyzeTemperature < 0 || l.AnalyzeTemperature > 2 || l.ScanTemperature < 0 || l.ScanTemperature > 2 {
		return fmt.Errorf("temperatures must be between 0.0 and 2.0")
	}
	if l.ScanProfileCount <= 0 {
		return fmt.Errorf("scan_profile_count must be a positive integer")
	}
	return nil
}

// Validate checks the dashboard simulation settings.
func (d *DashboardConfig) Validate() error {
	if d.StatsInterval <= 0 || d.FeedInterval <= 0 {
		return fmt.Errorf("stats_interval and feed_interval must be positive durations")
	}
	if d.FeedSize <= 0 {
		return fmt.Errorf("feed_size must be a positive integer")
	}
	return nil
}
