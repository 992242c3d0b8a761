package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	minMaxOutputTokens   int64 = 256
	limitMaxOutputTokens int64 = 2048

	DefaultOpenAIModel = "gpt-4.1-mini"

	systemPromptTemplate = `Summarize the text provided by the user.

Rules:
- Between %d and %d tokens.
- Write the summary in %s.
- Keep the core idea and critical context (dates, numbers, names).
- Neutral tone. No preamble, no lists, no headings.
- Output only the summary.`
)

// OpenAISummarizer calls OpenAI's Responses API to produce summaries.
type OpenAISummarizer struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAISummarizer builds a new summarizer instance. An empty baseURL keeps
// the default endpoint.
func NewOpenAISummarizer(apiKey, baseURL, model string) (*OpenAISummarizer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("api key is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAISummarizer{
		client: openai.NewClient(clientOptions(apiKey, baseURL)...),
		model:  openai.ChatModel(model),
	}, nil
}

func clientOptions(apiKey, baseURL string) []option.RequestOption {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return opts
}

// Summarize produces a single candidate summary. Beam count and top-k are not
// exposed by the Responses API and are ignored.
func (s *OpenAISummarizer) Summarize(
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

	instructions := fmt.Sprintf(systemPromptTemplate, input.MinLength, input.MaxLength, language)

	maxOutputTokens := max(2*int64(input.MaxLength), minMaxOutputTokens)
	limit := max(limitMaxOutputTokens, maxOutputTokens)

	for {
		params := responses.ResponseNewParams{
			Model:           s.model,
			MaxOutputTokens: openai.Int(maxOutputTokens),
			Instructions:    openai.String(instructions),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(text),
			},
		}
		if input.Sampling.Temperature > 0 {
			params.Temperature = openai.Float(input.Sampling.Temperature)
		}
		if input.Sampling.TopP > 0 {
			params.TopP = openai.Float(input.Sampling.TopP)
		}

		resp, err := s.client.Responses.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("do request: %w", err)
		}

		if resp.Status == "incomplete" {
			if resp.IncompleteDetails.Reason == "max_output_tokens" && maxOutputTokens < limit {
				maxOutputTokens = min(maxOutputTokens*2, limit)

				continue
			}
			return "", fmt.Errorf(
				"response is incomplete (reason = %s, maxOutputTokens = %d)",
				resp.IncompleteDetails.Reason,
				maxOutputTokens,
			)
		}

		summary := strings.TrimSpace(resp.OutputText())
		if summary == "" {
			return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
		}
		return summary, nil
	}
}
