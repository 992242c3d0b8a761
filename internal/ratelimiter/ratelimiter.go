package ratelimiter

import (
	"context"
	"log/slog"
	"time"
	"xlsum/internal/domain"
	"xlsum/internal/summarizer"
	"xlsum/internal/translator"

	"golang.org/x/time/rate"
)

const defaultBurst = 1

// RateLimiter spaces out calls to remote capabilities. A nil *RateLimiter
// passes calls through untouched.
type RateLimiter struct {
	limiter *rate.Limiter
	log     *slog.Logger
}

// New returns nil when requestsPerSecond is not positive.
func New(requestsPerSecond float64, burst int, log *slog.Logger) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}

	if burst <= 0 {
		burst = defaultBurst
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		log:     log,
	}
}

func (rl *RateLimiter) Wait(ctx context.Context, operation string) error {
	if rl == nil {
		return nil
	}

	r := rl.limiter.Reserve()
	if !r.OK() {
		return rl.limiter.Wait(ctx)
	}

	delay := r.Delay()
	if delay <= 0 {
		return nil
	}

	rl.log.DebugContext(ctx, "Rate limiting capability call",
		"operation", operation,
		"delay", delay)

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()

		return ctx.Err()
	}
}

func (rl *RateLimiter) Summarizer(next summarizer.Summarizer) summarizer.Summarizer {
	if rl == nil || next == nil {
		return next
	}

	return &limitedSummarizer{rl: rl, next: next}
}

func (rl *RateLimiter) Factory(next translator.Factory) translator.Factory {
	if rl == nil || next == nil {
		return next
	}

	return translator.FactoryFunc(func(ctx context.Context, pair domain.Pair) (translator.Translator, error) {
		if err := rl.Wait(ctx, "createTranslator"); err != nil {
			return nil, err
		}

		t, err := next.New(ctx, pair)
		if err != nil {
			return nil, err
		}

		return &limitedTranslator{rl: rl, next: t}, nil
	})
}

type limitedSummarizer struct {
	rl   *RateLimiter
	next summarizer.Summarizer
}

func (s *limitedSummarizer) Summarize(ctx context.Context, input summarizer.Input) (string, error) {
	if err := s.rl.Wait(ctx, "summarize"); err != nil {
		return "", err
	}

	return s.next.Summarize(ctx, input)
}

type limitedTranslator struct {
	rl   *RateLimiter
	next translator.Translator
}

func (t *limitedTranslator) Translate(ctx context.Context, input translator.Input) (string, error) {
	if err := t.rl.Wait(ctx, "translate"); err != nil {
		return "", err
	}

	return t.next.Translate(ctx, input)
}
