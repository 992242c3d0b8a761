package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiSummarizer produces summaries with the Gemini API. Unlike the
// Responses API it honours top-k.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

func NewGeminiSummarizer(ctx context.Context, apiKey, baseURL, model string) (*GeminiSummarizer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("api key is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiSummarizer{client: client, model: model}, nil
}

func (s *GeminiSummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	language := strings.TrimSpace(input.Language)
	if language == "" {
		language = "the same language as the input"
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(systemPromptTemplate, input.MinLength, input.MaxLength, language)},
			},
		},
		MaxOutputTokens: int32(max(2*input.MaxLength, int(minMaxOutputTokens))), //nolint:gosec // Bounded by the request.
	}
	if input.Sampling.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(input.Sampling.Temperature))
	}
	if input.Sampling.TopP > 0 {
		config.TopP = genai.Ptr(float32(input.Sampling.TopP))
	}
	if input.Sampling.TopK > 0 {
		config.TopK = genai.Ptr(float32(input.Sampling.TopK))
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: text}},
		},
	}, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			b.WriteString(part.Text)
		}
	}

	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "", errors.New("output text is missing")
	}

	return summary, nil
}
