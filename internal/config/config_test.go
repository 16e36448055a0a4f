package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LLM.Provider != "gemini" {
		t.Errorf("got provider %q, want gemini", cfg.LLM.Provider)
	}
	if cfg.LLM.Temperature != 0 {
		t.Errorf("got temperature %v, want 0", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 4096 {
		t.Errorf("got max tokens %d, want 4096", cfg.LLM.MaxTokens)
	}
	if cfg.Analysis.HistoryDays != 200 {
		t.Errorf("got history days %d, want 200", cfg.Analysis.HistoryDays)
	}
	if cfg.Analysis.PivotWindow != 10 {
		t.Errorf("got pivot window %d, want 10", cfg.Analysis.PivotWindow)
	}
	if cfg.Analysis.ClusterThreshold != 0.03 {
		t.Errorf("got cluster threshold %v, want 0.03", cfg.Analysis.ClusterThreshold)
	}
	if cfg.Report.OutputDir != "reports" {
		t.Errorf("got output dir %q, want reports", cfg.Report.OutputDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
llm:
  provider: openai
  model: gpt-4o-mini
  temperature: 0.2
analysis:
  history_days: 120
  pivot_window: 6
news:
  limit: 5
report:
  pdf: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("llm section not applied: %+v", cfg.LLM)
	}
	if cfg.Analysis.HistoryDays != 120 || cfg.Analysis.PivotWindow != 6 {
		t.Errorf("analysis section not applied: %+v", cfg.Analysis)
	}
	// Unset values keep their defaults.
	if cfg.Analysis.ClusterThreshold != 0.03 {
		t.Errorf("got cluster threshold %v, want default 0.03", cfg.Analysis.ClusterThreshold)
	}
	if cfg.News.Limit != 5 {
		t.Errorf("got news limit %d, want 5", cfg.News.Limit)
	}
	if cfg.Report.PDF {
		t.Error("report.pdf should be false")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvOverridesKey(t *testing.T) {
	t.Setenv("STOCKADVISOR_LLM_GEMINI_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.GeminiKey != "from-env" {
		t.Fatalf("got gemini key %q, want from-env", cfg.LLM.GeminiKey)
	}
}

func TestBareEnvKeyFallback(t *testing.T) {
	t.Setenv("STOCKADVISOR_LLM_OPENAI_KEY", "")
	t.Setenv("OPENAI_API_KEY", "bare-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.OpenAIKey != "bare-key" {
		t.Fatalf("got openai key %q, want bare-key", cfg.LLM.OpenAIKey)
	}
}

func TestAPIKeySelection(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.Provider = "gemini"
	cfg.LLM.GeminiKey = "g"
	cfg.LLM.OpenAIKey = "o"

	if got := cfg.APIKey(); got != "g" {
		t.Fatalf("got %q, want g", got)
	}
	cfg.LLM.Provider = "openai"
	if got := cfg.APIKey(); got != "o" {
		t.Fatalf("got %q, want o", got)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		LLM:      LLMConfig{Provider: "gemini", Temperature: 0},
		Analysis: AnalysisConfig{HistoryDays: 200, PivotWindow: 10, ClusterThreshold: 0.03},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.LLM.Provider = "llama-farm" }},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 3 }},
		{"zero history", func(c *Config) { c.Analysis.HistoryDays = 0 }},
		{"tiny pivot window", func(c *Config) { c.Analysis.PivotWindow = 1 }},
		{"threshold out of range", func(c *Config) { c.Analysis.ClusterThreshold = 1.5 }},
	}
	for _, tc := range cases {
		c := *valid
		tc.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
