package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"xlsum/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUMMARY_PROVIDER", "")
	os.Unsetenv("SUMMARY_PROVIDER")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SummaryProvider != config.SummaryProviderOpenAI {
		t.Fatalf("unexpected summary provider: %q", cfg.SummaryProvider)
	}

	if cfg.MaxInputTokens != 1024 || cfg.TranslatorCacheSize != 16 || cfg.CandidateParallelism != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	if cfg.SamplingBeams != 4 || cfg.SamplingTemperature != 0.7 || cfg.SamplingTopK != 50 || cfg.SamplingTopP != 0.95 {
		t.Fatalf("unexpected sampling defaults: %+v", cfg)
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")

	if err := os.WriteFile(path, []byte("XLSUM_UNUSED=1\nTRANSLATOR_CACHE_SIZE=4\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	t.Setenv("TRANSLATOR_CACHE_SIZE", "")
	os.Unsetenv("TRANSLATOR_CACHE_SIZE")
	t.Setenv("XLSUM_UNUSED", "")
	os.Unsetenv("XLSUM_UNUSED")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TranslatorCacheSize != 4 {
		t.Fatalf("expected dotenv value 4, got %d", cfg.TranslatorCacheSize)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("SUMMARY_PROVIDER", "mystery")

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestValidateNormalizesCase(t *testing.T) {
	cfg := config.Config{
		SummaryProvider:      " Gemini ",
		TranslationProvider:  "NONE",
		LogFormat:            "JSON",
		LogLevel:             "debug",
		MaxInputTokens:       1,
		MaxTranslationTokens: 1,
		TranslatorCacheSize:  1,
		CandidateParallelism: 1,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SummaryProvider != config.SummaryProviderGemini || cfg.TranslationProvider != config.TranslationProviderNone {
		t.Fatalf("expected normalized providers, got %+v", cfg)
	}

	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Fatalf("unexpected level %v, err %v", level, err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := config.Config{
		SummaryProvider:     "openai",
		TranslationProvider: "huggingface",
		LogFormat:           "text",
		LogLevel:            "loud",
	}

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation errors")
	}
}
