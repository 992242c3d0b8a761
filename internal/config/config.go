package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	SummaryProviderOpenAI = "openai"
	SummaryProviderGemini = "gemini"

	TranslationProviderOpenAI      = "openai"
	TranslationProviderHuggingFace = "huggingface"
	TranslationProviderNone        = "none"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	SummaryProvider     string `env:"SUMMARY_PROVIDER"     envDefault:"openai"`
	TranslationProvider string `env:"TRANSLATION_PROVIDER" envDefault:"huggingface"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL"    envDefault:"gpt-4.1-mini"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`
	GeminiModel   string `env:"GEMINI_MODEL"    envDefault:"gemini-2.5-flash"`

	HuggingFaceToken        string `env:"HF_TOKEN"`
	HuggingFaceHubURL       string `env:"HF_HUB_URL"       envDefault:"https://huggingface.co"`
	HuggingFaceInferenceURL string `env:"HF_INFERENCE_URL" envDefault:"https://router.huggingface.co/hf-inference"`

	MaxInputTokens       int    `env:"MAX_INPUT_TOKENS"       envDefault:"1024"`
	MaxTranslationTokens int    `env:"MAX_TRANSLATION_TOKENS" envDefault:"1024"`
	TokenEncoding        string `env:"TOKEN_ENCODING"         envDefault:"cl100k_base"`
	TranslatorCacheSize  int    `env:"TRANSLATOR_CACHE_SIZE"  envDefault:"16"`
	CandidateParallelism int    `env:"CANDIDATE_PARALLELISM"  envDefault:"1"`

	CapabilityRPS   float64 `env:"CAPABILITY_RPS"   envDefault:"0"`
	CapabilityBurst int     `env:"CAPABILITY_BURST" envDefault:"1"`

	SamplingBeams       int     `env:"SAMPLING_BEAMS"       envDefault:"4"`
	SamplingTemperature float64 `env:"SAMPLING_TEMPERATURE" envDefault:"0.7"`
	SamplingTopK        int     `env:"SAMPLING_TOP_K"       envDefault:"50"`
	SamplingTopP        float64 `env:"SAMPLING_TOP_P"       envDefault:"0.95"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the optional dotenv files (".env" when none are given) and then
// the process environment. Variables already set in the environment win.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}

	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load dotenv %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	c.SummaryProvider = strings.ToLower(strings.TrimSpace(c.SummaryProvider))
	switch c.SummaryProvider {
	case SummaryProviderOpenAI, SummaryProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("SUMMARY_PROVIDER must be openai or gemini, got %q", c.SummaryProvider))
	}

	c.TranslationProvider = strings.ToLower(strings.TrimSpace(c.TranslationProvider))
	switch c.TranslationProvider {
	case TranslationProviderOpenAI, TranslationProviderHuggingFace, TranslationProviderNone:
	default:
		errs = append(errs, fmt.Errorf(
			"TRANSLATION_PROVIDER must be openai, huggingface or none, got %q", c.TranslationProvider))
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if c.MaxInputTokens <= 0 {
		errs = append(errs, fmt.Errorf("MAX_INPUT_TOKENS must be positive, got %d", c.MaxInputTokens))
	}

	if c.MaxTranslationTokens <= 0 {
		errs = append(errs, fmt.Errorf("MAX_TRANSLATION_TOKENS must be positive, got %d", c.MaxTranslationTokens))
	}

	if c.TranslatorCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("TRANSLATOR_CACHE_SIZE must be positive, got %d", c.TranslatorCacheSize))
	}

	if c.CandidateParallelism <= 0 {
		errs = append(errs, fmt.Errorf("CANDIDATE_PARALLELISM must be positive, got %d", c.CandidateParallelism))
	}

	if c.CapabilityRPS < 0 {
		errs = append(errs, fmt.Errorf("CAPABILITY_RPS must not be negative, got %v", c.CapabilityRPS))
	}

	return errors.Join(errs...)
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	return level, nil
}
