package translator_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"xlsum/internal/domain"
	"xlsum/internal/translator"
)

type hubStub struct {
	mu        sync.Mutex
	probes    []string
	inferred  []map[string]any
	authOK    bool
	known     map[string]bool
	inference http.HandlerFunc
}

func (h *hubStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.authOK = r.Header.Get("Authorization") == "Bearer hf-token"
	h.mu.Unlock()

	switch {
	case r.Method == http.MethodGet:
		model := r.URL.Path[len("/api/models/"):]

		h.mu.Lock()
		h.probes = append(h.probes, model)
		h.mu.Unlock()

		if !h.known[model] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"` + model + `"}`))

	case r.Method == http.MethodPost:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		h.mu.Lock()
		h.inferred = append(h.inferred, body)
		h.mu.Unlock()

		if h.inference != nil {
			h.inference(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"translation_text":"  Bonjour le monde.  "}]`))
	}
}

func (h *hubStub) snapshot() (probes []string, inferred []map[string]any, authOK bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.probes...), append([]map[string]any(nil), h.inferred...), h.authOK
}

func newHub(t *testing.T, stub *hubStub) *translator.HuggingFaceFactory {
	t.Helper()

	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	return translator.NewHuggingFaceFactory("hf-token", srv.URL, srv.URL+"/hf-inference/")
}

func TestOpusModelName(t *testing.T) {
	got := translator.OpusModelName(domain.Pair{Source: "en", Target: "fr"})
	if got != "Helsinki-NLP/opus-mt-en-fr" {
		t.Fatalf("unexpected model name: %q", got)
	}
}

func TestHuggingFaceFactoryTranslates(t *testing.T) {
	stub := &hubStub{known: map[string]bool{"Helsinki-NLP/opus-mt-en-fr": true}}
	f := newHub(t, stub)

	tr, err := f.New(context.Background(), domain.Pair{Source: "en", Target: "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := tr.Translate(context.Background(), translator.Input{Text: "Hello world.", MaxTokens: 512})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "Bonjour le monde." {
		t.Fatalf("unexpected translation: %q", got)
	}

	_, inferred, authOK := stub.snapshot()
	if !authOK {
		t.Fatalf("expected bearer token to be sent")
	}

	if len(inferred) != 1 {
		t.Fatalf("expected 1 inference call, got %d", len(inferred))
	}

	body := inferred[0]
	if body["inputs"] != "Hello world." {
		t.Fatalf("unexpected inputs: %v", body["inputs"])
	}

	params, ok := body["parameters"].(map[string]any)
	if !ok || params["max_length"] != float64(512) {
		t.Fatalf("unexpected parameters: %v", body["parameters"])
	}
}

func TestHuggingFaceFactoryMissingModel(t *testing.T) {
	stub := &hubStub{known: map[string]bool{}}
	f := newHub(t, stub)

	_, err := f.New(context.Background(), domain.Pair{Source: "en", Target: "sa"})
	if !errors.Is(err, domain.ErrCapabilityUnavailable) {
		t.Fatalf("expected capability unavailable, got %v", err)
	}

	probes, _, _ := stub.snapshot()
	if len(probes) != 1 || probes[0] != "Helsinki-NLP/opus-mt-en-sa" {
		t.Fatalf("unexpected probes: %v", probes)
	}
}

func TestHuggingFaceTranslatorInferenceError(t *testing.T) {
	stub := &hubStub{
		known: map[string]bool{"Helsinki-NLP/opus-mt-de-en": true},
		inference: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"model is loading"}`))
		},
	}
	f := newHub(t, stub)

	tr, err := f.New(context.Background(), domain.Pair{Source: "de", Target: "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err = tr.Translate(context.Background(), translator.Input{Text: "Hallo"}); err == nil {
		t.Fatalf("expected inference error")
	}
}

func TestHuggingFaceTranslatorRejectsEmptyInput(t *testing.T) {
	stub := &hubStub{known: map[string]bool{"Helsinki-NLP/opus-mt-en-es": true}}
	f := newHub(t, stub)

	tr, err := f.New(context.Background(), domain.Pair{Source: "en", Target: "es"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err = tr.Translate(context.Background(), translator.Input{Text: " "}); err == nil {
		t.Fatalf("expected error for empty input")
	}

	if _, inferred, _ := stub.snapshot(); len(inferred) != 0 {
		t.Fatalf("expected no inference calls, got %d", len(inferred))
	}
}

func TestOpenAIFactoryRejectsUnknownLanguage(t *testing.T) {
	f, err := translator.NewOpenAIFactory("test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.New(context.Background(), domain.Pair{Source: "en", Target: "xx"})
	if !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Fatalf("expected unsupported language, got %v", err)
	}

	if _, err = f.New(context.Background(), domain.Pair{Source: "en", Target: "fr"}); err != nil {
		t.Fatalf("unexpected error for known pair: %v", err)
	}
}
