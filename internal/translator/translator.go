// Package translator provides per-language-pair translation capabilities.
package translator

import (
	"context"
	"xlsum/internal/domain"
)

const DefaultMaxTokens = 1024

type Input struct {
	Text string
	// MaxTokens bounds the translated output.
	MaxTokens int
}

// Translator translates text for the single language pair it was created for.
type Translator interface {
	Translate(ctx context.Context, input Input) (string, error)
}

// Factory creates the translator for a language pair. Creation may be
// expensive and may fail when no model serves the pair.
type Factory interface {
	New(ctx context.Context, pair domain.Pair) (Translator, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx context.Context, pair domain.Pair) (Translator, error)

func (f FactoryFunc) New(ctx context.Context, pair domain.Pair) (Translator, error) {
	return f(ctx, pair)
}
