// Package config handles configuration loading for the stock advisor.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"      yaml:"llm"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	Report   ReportConfig   `mapstructure:"report"   yaml:"report"`
}

// LLMConfig holds LLM provider configuration.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"    yaml:"provider"` // "gemini" or "openai"
	GeminiKey   string  `mapstructure:"gemini_key"  yaml:"gemini_key"`
	OpenAIKey   string  `mapstructure:"openai_key"  yaml:"openai_key"`
	Model       string  `mapstructure:"model"       yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
}

// AnalysisConfig holds technical analysis engine settings.
type AnalysisConfig struct {
	HistoryDays      int     `mapstructure:"history_days"      yaml:"history_days"`
	PivotWindow      int     `mapstructure:"pivot_window"      yaml:"pivot_window"`
	ClusterThreshold float64 `mapstructure:"cluster_threshold" yaml:"cluster_threshold"`
}

// NewsConfig holds news collection settings.
type NewsConfig struct {
	Limit     int  `mapstructure:"limit"      yaml:"limit"`
	FetchBody bool `mapstructure:"fetch_body" yaml:"fetch_body"`
	BodyTopN  int  `mapstructure:"body_top_n" yaml:"body_top_n"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	PDF       bool   `mapstructure:"pdf"        yaml:"pdf"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.stockadvisor/config.yaml (home directory)
//  3. /etc/stockadvisor/config.yaml (system)
//
// Environment variables override config file values.
// Format: STOCKADVISOR_<SECTION>_<KEY>, e.g., STOCKADVISOR_LLM_GEMINI_KEY
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".stockadvisor"))
	v.AddConfigPath("/etc/stockadvisor")

	v.SetEnvPrefix("STOCKADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is fine, use defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("STOCKADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config: temperature %v out of range [0, 2]", c.LLM.Temperature)
	}
	if c.Analysis.HistoryDays < 1 {
		return fmt.Errorf("config: history_days must be positive")
	}
	if c.Analysis.PivotWindow < 2 {
		return fmt.Errorf("config: pivot_window must be at least 2")
	}
	if c.Analysis.ClusterThreshold <= 0 || c.Analysis.ClusterThreshold >= 1 {
		return fmt.Errorf("config: cluster_threshold must be in (0, 1)")
	}
	return nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	switch c.LLM.Provider {
	case "gemini":
		return c.LLM.GeminiKey
	case "openai":
		return c.LLM.OpenAIKey
	}
	return ""
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// LLM defaults: deterministic generation.
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.max_tokens", 4096)

	// Analysis defaults.
	v.SetDefault("analysis.history_days", 200)
	v.SetDefault("analysis.pivot_window", 10)
	v.SetDefault("analysis.cluster_threshold", 0.03)

	// News defaults.
	v.SetDefault("news.limit", 15)
	v.SetDefault("news.fetch_body", false)
	v.SetDefault("news.body_top_n", 3)

	// Report defaults.
	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.pdf", true)
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables, including the bare names users commonly export.
func overrideFromEnv(cfg *Config) {
	for _, name := range []string{"STOCKADVISOR_LLM_GEMINI_KEY", "GEMINI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			cfg.LLM.GeminiKey = key
			break
		}
	}
	for _, name := range []string{"STOCKADVISOR_LLM_OPENAI_KEY", "OPENAI_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			cfg.LLM.OpenAIKey = key
			break
		}
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
