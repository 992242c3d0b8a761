// Package engine validates summarization requests, bridges languages through
// translators and dispatches each strategy to its summarization path.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"xlsum/internal/domain"
	"xlsum/internal/extractive"
	"xlsum/internal/language"
	"xlsum/internal/summarizer"
	"xlsum/internal/textprep"
	"xlsum/internal/tokens"
	"xlsum/internal/translator"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMaxInputTokens       = 1024
	DefaultMaxTranslationTokens = 1024

	// Hybrid requests condense their input to this many times MaxLength before generation.
	hybridCondenseFactor = 3
)

type Options struct {
	MaxInputTokens       int
	MaxTranslationTokens int
	TranslatorCacheSize  int
	// Parallelism bounds concurrent candidate generation. 1 keeps calls sequential.
	Parallelism int
	Sampling    domain.Sampling
}

// Engine is safe for concurrent use. Either capability may be nil: without a
// summarizer only extractive requests succeed, without a factory every
// cross-language request degrades to the untranslated text.
type Engine struct {
	summarizer summarizer.Summarizer
	factory    translator.Factory
	tokens     *tokens.Estimator
	ranker     *extractive.Ranker
	cache      *translatorCache
	creating   singleflight.Group
	opts       Options
	log        *slog.Logger
}

func New(
	s summarizer.Summarizer,
	f translator.Factory,
	est *tokens.Estimator,
	opts Options,
	log *slog.Logger,
) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if opts.MaxInputTokens <= 0 {
		opts.MaxInputTokens = DefaultMaxInputTokens
	}
	if opts.MaxTranslationTokens <= 0 {
		opts.MaxTranslationTokens = DefaultMaxTranslationTokens
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	if opts.Sampling == (domain.Sampling{}) {
		opts.Sampling = domain.DefaultSampling()
	}

	return &Engine{
		summarizer: s,
		factory:    f,
		tokens:     est,
		ranker:     extractive.NewRanker(est),
		cache:      newTranslatorCache(opts.TranslatorCacheSize),
		opts:       opts,
		log:        log,
	}
}

func (e *Engine) Languages() []domain.Language {
	return language.All()
}

func (e *Engine) Strategies() []domain.Strategy {
	return domain.Strategies()
}

// Summarize returns req.CandidateCount summaries in generation order. Validation
// failures return before any capability is called.
func (e *Engine) Summarize(ctx context.Context, req domain.Request) (domain.Result, error) {
	start := time.Now()
	res := domain.Result{RequestID: uuid.NewString()}

	req, err := e.prepare(req)
	if err != nil {
		return domain.Result{}, err
	}

	e.log.InfoContext(ctx, "Summarization is requested",
		"requestID", res.RequestID,
		"sourceLanguage", req.SourceLanguage,
		"targetLanguage", req.TargetLanguage,
		"strategy", req.Strategy,
		"maxLength", req.MaxLength,
		"minLength", req.MinLength,
		"candidateCount", req.CandidateCount)

	text := req.Text
	lang, _ := language.Lookup(req.SourceLanguage)

	if req.SourceLanguage != req.TargetLanguage {
		pair := domain.Pair{Source: req.SourceLanguage, Target: req.TargetLanguage}

		translated, translateErr := e.translate(ctx, pair, text)
		switch {
		case translateErr == nil:
			text = translated
			lang, _ = language.Lookup(req.TargetLanguage)
			res.Translated = true

			var truncated bool
			text, truncated = e.tokens.Truncate(text, e.opts.MaxTranslationTokens)
			res.InputTruncated = truncated

		case ctx.Err() != nil:
			return domain.Result{}, ctx.Err()

		case errors.Is(translateErr, domain.ErrCapabilityUnavailable) && !req.RequireTranslation:
			e.log.WarnContext(ctx, "Translator is unavailable so untranslated text will be used",
				"error", translateErr,
				"requestID", res.RequestID,
				"pair", pair.String())

			res.Degraded = true
			res.DegradedReason = translateErr

		default:
			return domain.Result{}, fmt.Errorf("translate %s: %w", pair, translateErr)
		}
	}

	text, truncated := e.tokens.Truncate(text, e.opts.MaxInputTokens)
	if truncated {
		res.InputTruncated = true
		e.log.DebugContext(ctx, "Input is truncated",
			"requestID", res.RequestID,
			"maxInputTokens", e.opts.MaxInputTokens)
	}

	switch req.Strategy {
	case domain.StrategyExtractive:
		res.Candidates = e.ranker.Candidates(text, req.CandidateCount, req.MaxLength)

	case domain.StrategyHybrid:
		condensed := e.ranker.Condense(text, hybridCondenseFactor*req.MaxLength)
		res.Candidates, err = e.generate(ctx, condensed, lang, req)

	default:
		res.Candidates, err = e.generate(ctx, text, lang, req)
	}
	if err != nil {
		return domain.Result{}, err
	}

	e.log.InfoContext(ctx, "Summarization is done",
		"requestID", res.RequestID,
		"strategy", req.Strategy,
		"candidateCount", len(res.Candidates),
		"translated", res.Translated,
		"degraded", res.Degraded,
		"inputTruncated", res.InputTruncated,
		"durationSeconds", time.Since(start).Seconds())

	return res, nil
}

func (e *Engine) prepare(req domain.Request) (domain.Request, error) {
	if _, ok := language.Lookup(req.SourceLanguage); !ok {
		return req, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, req.SourceLanguage)
	}

	if _, ok := language.Lookup(req.TargetLanguage); !ok {
		return req, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, req.TargetLanguage)
	}

	if !req.Strategy.Valid() {
		return req, fmt.Errorf("%w: %q", domain.ErrInvalidStrategy, req.Strategy)
	}

	if req.MinLength == 0 {
		req.MinLength = min(domain.DefaultMinLength, req.MaxLength-1)
	}

	if req.MinLength <= 0 || req.MaxLength <= req.MinLength {
		return req, fmt.Errorf("%w: minLength = %d, maxLength = %d",
			domain.ErrInvalidLength, req.MinLength, req.MaxLength)
	}

	if req.CandidateCount == 0 {
		req.CandidateCount = domain.DefaultCandidateCount
	}

	if req.CandidateCount < 0 {
		return req, fmt.Errorf("%w: %d", domain.ErrInvalidCandidateCount, req.CandidateCount)
	}

	if req.Strategy != domain.StrategyExtractive && e.summarizer == nil {
		return req, fmt.Errorf("%w: no summary provider is configured", domain.ErrCapabilityUnavailable)
	}

	text, err := textprep.Normalize(req.Text)
	if err != nil {
		return req, fmt.Errorf("normalize text: %w", err)
	}

	if text == "" {
		return req, domain.ErrEmptyInput
	}
	req.Text = text

	return req, nil
}

func (e *Engine) translate(ctx context.Context, pair domain.Pair, text string) (string, error) {
	t, err := e.translatorFor(ctx, pair)
	if err != nil {
		return "", err
	}

	translated, err := t.Translate(ctx, translator.Input{
		Text:      text,
		MaxTokens: e.opts.MaxTranslationTokens,
	})
	if err != nil {
		return "", fmt.Errorf("translate text: %w", err)
	}

	return translated, nil
}

// translatorFor returns the cached translator for pair, creating it at most
// once even when several requests miss at the same time.
func (e *Engine) translatorFor(ctx context.Context, pair domain.Pair) (translator.Translator, error) {
	if t, ok := e.cache.get(pair); ok {
		return t, nil
	}

	if e.factory == nil {
		return nil, fmt.Errorf("%w: no translation provider is configured", domain.ErrCapabilityUnavailable)
	}

	// Creation outlives any single caller: a waiter whose context ends leaves
	// early without failing the others sharing the call.
	ch := e.creating.DoChan(pair.String(), func() (any, error) {
		if t, ok := e.cache.get(pair); ok {
			return t, nil
		}

		createCtx := context.WithoutCancel(ctx)

		t, err := e.factory.New(createCtx, pair)
		if err != nil {
			return nil, err
		}

		e.log.InfoContext(createCtx, "Translator is created",
			"pair", pair.String(),
			"cachedPairs", e.cache.len()+1)

		return e.cache.add(pair, t), nil
	})

	var (
		v   any
		err error
	)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		v, err = r.Val, r.Err
	}
	if err != nil {
		if !errors.Is(err, domain.ErrCapabilityUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrCapabilityUnavailable, err)
		}

		return nil, fmt.Errorf("create translator %s: %w", pair, err)
	}

	t, ok := v.(translator.Translator)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected translator type %T", domain.ErrCapabilityUnavailable, v)
	}

	return t, nil
}

func (e *Engine) generate(
	ctx context.Context,
	text string,
	lang domain.Language,
	req domain.Request,
) ([]string, error) {
	input := summarizer.Input{
		Text:      text,
		Language:  lang.Name,
		MaxLength: req.MaxLength,
		MinLength: req.MinLength,
		Sampling:  e.opts.Sampling,
	}

	out := make([]string, req.CandidateCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Parallelism)

	for i := range out {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			in := input
			in.Index = i

			summary, err := e.summarizer.Summarize(gctx, in)
			if err != nil {
				return fmt.Errorf("summarize candidate %d: %w", i+1, err)
			}
			out[i] = summary

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
