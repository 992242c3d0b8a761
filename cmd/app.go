package main

import (
	"context"
	"log/slog"
	"os"
	"time"
	"xlsum/internal/config"
	"xlsum/internal/domain"
	"xlsum/internal/engine"
	"xlsum/internal/ratelimiter"
	"xlsum/internal/summarizer"
	"xlsum/internal/tokens"
	"xlsum/internal/translator"

	charmlog "github.com/charmbracelet/log"
)

type app struct {
	ctx    context.Context
	cfg    config.Config
	log    *slog.Logger
	engine *engine.Engine
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) *app {
	est := initEstimator(ctx, cfg, log)
	limiter := ratelimiter.New(cfg.CapabilityRPS, cfg.CapabilityBurst, log)

	s := limiter.Summarizer(initSummarizer(ctx, cfg, log))
	f := limiter.Factory(initTranslatorFactory(ctx, cfg, log))

	e := engine.New(s, f, est, engine.Options{
		MaxInputTokens:       cfg.MaxInputTokens,
		MaxTranslationTokens: cfg.MaxTranslationTokens,
		TranslatorCacheSize:  cfg.TranslatorCacheSize,
		Parallelism:          cfg.CandidateParallelism,
		Sampling: domain.Sampling{
			Beams:       cfg.SamplingBeams,
			Temperature: cfg.SamplingTemperature,
			TopK:        cfg.SamplingTopK,
			TopP:        cfg.SamplingTopP,
		},
	}, log)
	log.DebugContext(ctx, "Engine is initialized",
		"summaryProvider", cfg.SummaryProvider,
		"translationProvider", cfg.TranslationProvider,
		"translatorCacheSize", cfg.TranslatorCacheSize,
		"parallelism", cfg.CandidateParallelism,
		"capabilityRPS", cfg.CapabilityRPS)

	return &app{
		ctx:    ctx,
		cfg:    cfg,
		log:    log,
		engine: e,
	}
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
	}

	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           charmlog.Level(level),
	})

	return slog.New(handler), nil
}

func initEstimator(ctx context.Context, cfg config.Config, log *slog.Logger) *tokens.Estimator {
	est, err := tokens.New(cfg.TokenEncoding)
	if err != nil {
		log.WarnContext(ctx, "Failed to load token encoding so fallback will be used",
			"error", err,
			"encoding", cfg.TokenEncoding)

		return tokens.Fallback()
	}

	return est
}

func initSummarizer(ctx context.Context, cfg config.Config, log *slog.Logger) summarizer.Summarizer {
	s, err := summarizer.New(ctx, summarizer.Options{
		Provider:      cfg.SummaryProvider,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiBaseURL: cfg.GeminiBaseURL,
		GeminiModel:   cfg.GeminiModel,
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to create summarizer so only extractive strategy is available",
			"error", err,
			"provider", cfg.SummaryProvider)

		return nil
	}

	log.DebugContext(ctx, "Summarizer is initialized",
		"provider", cfg.SummaryProvider)

	return s
}

func initTranslatorFactory(ctx context.Context, cfg config.Config, log *slog.Logger) translator.Factory {
	switch cfg.TranslationProvider {
	case config.TranslationProviderHuggingFace:
		log.DebugContext(ctx, "Translator factory is initialized",
			"provider", cfg.TranslationProvider,
			"hubURL", cfg.HuggingFaceHubURL)

		return translator.NewHuggingFaceFactory(
			cfg.HuggingFaceToken, cfg.HuggingFaceHubURL, cfg.HuggingFaceInferenceURL)
	case config.TranslationProviderOpenAI:
		f, err := translator.NewOpenAIFactory(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			log.WarnContext(ctx, "Failed to create translator factory so translation is disabled",
				"error", err,
				"provider", cfg.TranslationProvider)

			return nil
		}

		log.DebugContext(ctx, "Translator factory is initialized",
			"provider", cfg.TranslationProvider)

		return f
	default:
		log.DebugContext(ctx, "Translation is disabled",
			"provider", cfg.TranslationProvider)

		return nil
	}
}
