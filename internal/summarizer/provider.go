package summarizer

import (
	"context"
	"fmt"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Options struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
}

// New builds the summarizer for the configured provider.
func New(ctx context.Context, opts Options) (Summarizer, error) {
	switch opts.Provider {
	case ProviderOpenAI, "":
		s, err := NewOpenAISummarizer(opts.OpenAIAPIKey, opts.OpenAIBaseURL, opts.OpenAIModel)
		if err != nil {
			return nil, err
		}

		return s, nil
	case ProviderGemini:
		s, err := NewGeminiSummarizer(ctx, opts.GeminiAPIKey, opts.GeminiBaseURL, opts.GeminiModel)
		if err != nil {
			return nil, err
		}

		return s, nil
	default:
		return nil, fmt.Errorf("unknown summary provider %q", opts.Provider)
	}
}
