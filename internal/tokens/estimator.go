// Package tokens measures and bounds text by model tokens using tiktoken.
package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	DefaultEncoding = "cl100k_base"

	// Used when the encoding cannot be loaded.
	fallbackRunesPerToken = 4
)

// Estimator counts and truncates text by tokens. A nil Estimator, or one
// without an encoding, falls back to runes/4.
type Estimator struct {
	mu       sync.Mutex
	encoding *tiktoken.Tiktoken
}

func New(encodingName string) (*Estimator, error) {
	if strings.TrimSpace(encodingName) == "" {
		encodingName = DefaultEncoding
	}

	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("get encoding %s: %w", encodingName, err)
	}

	return &Estimator{encoding: enc}, nil
}

// Fallback returns an estimator that never touches tiktoken.
func Fallback() *Estimator {
	return &Estimator{}
}

func (e *Estimator) Count(text string) int {
	if text == "" {
		return 0
	}

	if e == nil || e.encoding == nil {
		n := len([]rune(text))

		return (n + fallbackRunesPerToken - 1) / fallbackRunesPerToken
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.encoding.Encode(text, nil, nil))
}

// Truncate cuts text to at most maxTokens tokens and reports whether it did.
func (e *Estimator) Truncate(text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 || text == "" {
		return text, false
	}

	if e == nil || e.encoding == nil {
		runes := []rune(text)
		limit := maxTokens * fallbackRunesPerToken
		if len(runes) <= limit {
			return text, false
		}

		return strings.TrimSpace(string(runes[:limit])), true
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	toks := e.encoding.Encode(text, nil, nil)
	if len(toks) <= maxTokens {
		return text, false
	}

	// A token boundary can split a multi-byte rune.
	cut := strings.ToValidUTF8(e.encoding.Decode(toks[:maxTokens]), "")

	return strings.TrimSpace(cut), true
}
