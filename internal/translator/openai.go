package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"xlsum/internal/domain"
	"xlsum/internal/language"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	DefaultOpenAIModel = "gpt-4.1-mini"

	translatePromptTemplate = `Translate the text provided by the user from %s to %s.

Rules:
- Preserve meaning, names, numbers and paragraph breaks.
- Do not summarize, explain or add notes.
- Output only the translation.`
)

type OpenAIFactory struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAIFactory(apiKey, baseURL, model string) (*OpenAIFactory, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("api key is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIFactory{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(model),
	}, nil
}

func (f *OpenAIFactory) New(_ context.Context, pair domain.Pair) (Translator, error) {
	src, ok := language.Lookup(pair.Source)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, pair.Source)
	}

	dst, ok := language.Lookup(pair.Target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, pair.Target)
	}

	return &openAITranslator{
		client:       f.client,
		model:        f.model,
		instructions: fmt.Sprintf(translatePromptTemplate, src.Name, dst.Name),
	}, nil
}

type openAITranslator struct {
	client       openai.Client
	model        openai.ChatModel
	instructions string
}

func (t *openAITranslator) Translate(ctx context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	resp, err := t.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           t.model,
		MaxOutputTokens: openai.Int(int64(maxTokens)),
		Instructions:    openai.String(t.instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	// An incomplete response still carries the translation up to the output bound.
	translated := strings.TrimSpace(resp.OutputText())
	if translated == "" {
		return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
	}

	return translated, nil
}
