package translator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"xlsum/internal/domain"
	"xlsum/internal/translator"
)

const translatedResponse = `{
  "id": "resp_1",
  "object": "response",
  "created_at": 1700000000,
  "status": "completed",
  "model": "gpt-4.1-mini",
  "output": [{
    "type": "message",
    "id": "msg_1",
    "role": "assistant",
    "status": "completed",
    "content": [{"type": "output_text", "text": "  Bonjour le monde.  ", "annotations": []}]
  }]
}`

const emptyResponse = `{
  "id": "resp_2",
  "object": "response",
  "created_at": 1700000000,
  "status": "incomplete",
  "model": "gpt-4.1-mini",
  "incomplete_details": {"reason": "max_output_tokens"},
  "output": []
}`

type translateRequest struct {
	MaxOutputTokens int64  `json:"max_output_tokens"`
	Instructions    string `json:"instructions"`
	Input           string `json:"input"`
	Model           string `json:"model"`
}

type responsesStub struct {
	mu       sync.Mutex
	requests []translateRequest
	response string
}

func (s *responsesStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	resp := s.response
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

func (s *responsesStub) recorded() []translateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]translateRequest(nil), s.requests...)
}

func newOpenAITranslator(t *testing.T, stub *responsesStub, pair domain.Pair) translator.Translator {
	t.Helper()

	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	f, err := translator.NewOpenAIFactory("test-key", srv.URL+"/", "")
	if err != nil {
		t.Fatalf("create factory: %v", err)
	}

	tr, err := f.New(context.Background(), pair)
	if err != nil {
		t.Fatalf("create translator: %v", err)
	}

	return tr
}

func TestOpenAITranslatorTranslate(t *testing.T) {
	stub := &responsesStub{response: translatedResponse}
	tr := newOpenAITranslator(t, stub, domain.Pair{Source: "en", Target: "fr"})

	got, err := tr.Translate(context.Background(), translator.Input{Text: " Hello world. ", MaxTokens: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "Bonjour le monde." {
		t.Fatalf("unexpected translation: %q", got)
	}

	requests := stub.recorded()
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}

	req := requests[0]
	if req.MaxOutputTokens != 200 || req.Input != "Hello world." {
		t.Fatalf("unexpected request: %+v", req)
	}

	if req.Model != translator.DefaultOpenAIModel {
		t.Fatalf("unexpected model: %q", req.Model)
	}

	if !strings.Contains(req.Instructions, "from English to French") {
		t.Fatalf("unexpected instructions: %q", req.Instructions)
	}
}

func TestOpenAITranslatorDefaultsOutputBudget(t *testing.T) {
	stub := &responsesStub{response: translatedResponse}
	tr := newOpenAITranslator(t, stub, domain.Pair{Source: "de", Target: "en"})

	if _, err := tr.Translate(context.Background(), translator.Input{Text: "Hallo Welt."}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stub.recorded()[0].MaxOutputTokens; got != translator.DefaultMaxTokens {
		t.Fatalf("expected default budget %d, got %d", translator.DefaultMaxTokens, got)
	}
}

func TestOpenAITranslatorEmptyOutput(t *testing.T) {
	stub := &responsesStub{response: emptyResponse}
	tr := newOpenAITranslator(t, stub, domain.Pair{Source: "en", Target: "fr"})

	if _, err := tr.Translate(context.Background(), translator.Input{Text: "Hello."}); err == nil {
		t.Fatalf("expected error for missing output")
	}
}

func TestOpenAITranslatorRejectsEmptyInput(t *testing.T) {
	stub := &responsesStub{response: translatedResponse}
	tr := newOpenAITranslator(t, stub, domain.Pair{Source: "en", Target: "fr"})

	if _, err := tr.Translate(context.Background(), translator.Input{Text: "  "}); err == nil {
		t.Fatalf("expected error for empty input")
	}

	if requests := stub.recorded(); len(requests) != 0 {
		t.Fatalf("expected no requests, got %d", len(requests))
	}
}
