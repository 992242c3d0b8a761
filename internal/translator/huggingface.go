package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"xlsum/internal/domain"
)

const (
	DefaultHubURL       = "https://huggingface.co"
	DefaultInferenceURL = "https://router.huggingface.co/hf-inference"

	huggingFaceClientTimeout = 60 * time.Second
	maxErrorBodyBytes        = 4096

	opusModelTemplate = "Helsinki-NLP/opus-mt-%s-%s"
)

// OpusModelName returns the Helsinki-NLP opus-mt model serving the pair.
func OpusModelName(pair domain.Pair) string {
	return fmt.Sprintf(opusModelTemplate, pair.Source, pair.Target)
}

// HuggingFaceFactory creates translators backed by opus-mt models on the
// Hugging Face inference API. Creation checks that the pair's model exists.
type HuggingFaceFactory struct {
	client       *http.Client
	token        string
	hubURL       string
	inferenceURL string
}

func NewHuggingFaceFactory(token, hubURL, inferenceURL string) *HuggingFaceFactory {
	hubURL = strings.TrimRight(strings.TrimSpace(hubURL), "/")
	if hubURL == "" {
		hubURL = DefaultHubURL
	}

	inferenceURL = strings.TrimRight(strings.TrimSpace(inferenceURL), "/")
	if inferenceURL == "" {
		inferenceURL = DefaultInferenceURL
	}

	return &HuggingFaceFactory{
		client:       &http.Client{Timeout: huggingFaceClientTimeout},
		token:        strings.TrimSpace(token),
		hubURL:       hubURL,
		inferenceURL: inferenceURL,
	}
}

func (f *HuggingFaceFactory) New(ctx context.Context, pair domain.Pair) (Translator, error) {
	model := OpusModelName(pair)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.hubURL+"/api/models/"+model, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	f.authorize(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: probe model %s: %w", domain.ErrCapabilityUnavailable, model, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: model %s not found", domain.ErrCapabilityUnavailable, model)
	default:
		return nil, fmt.Errorf("%w: probe model %s: status %d",
			domain.ErrCapabilityUnavailable, model, resp.StatusCode)
	}

	return &huggingFaceTranslator{
		factory:  f,
		endpoint: f.inferenceURL + "/models/" + model,
	}, nil
}

func (f *HuggingFaceFactory) authorize(req *http.Request) {
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
}

type huggingFaceTranslator struct {
	factory  *HuggingFaceFactory
	endpoint string
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxLength int `json:"max_length"`
}

type inferenceResult struct {
	TranslationText string `json:"translation_text"`
}

func (t *huggingFaceTranslator) Translate(ctx context.Context, input Input) (string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	body, err := json.Marshal(inferenceRequest{
		Inputs:     text,
		Parameters: inferenceParameters{MaxLength: maxTokens},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	t.factory.authorize(req)

	resp, err := t.factory.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

		return "", fmt.Errorf("inference status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var results []inferenceResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		return "", errors.New("translation is missing")
	}

	translated := strings.TrimSpace(results[0].TranslationText)
	if translated == "" {
		return "", errors.New("translation is empty")
	}

	return translated, nil
}
