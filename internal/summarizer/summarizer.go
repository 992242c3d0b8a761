package summarizer

import (
	"context"
	"xlsum/internal/domain"
)

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the plain text to summarise, already bounded to the input budget.
	Text string
	// Language is the display name of the language the summary must be written in.
	Language string
	// MaxLength and MinLength bound the summary length in tokens.
	MaxLength int
	MinLength int
	Sampling  domain.Sampling
	// Index is the zero-based position of the candidate in the result.
	Index int
}

// Summarizer produces a single summary for a given input text. Repeated calls
// with the same input may return different summaries.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}
