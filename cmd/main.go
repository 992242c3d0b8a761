package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"xlsum/internal/config"
	"xlsum/internal/language"

	"github.com/alecthomas/kong"
)

//nolint:gochecknoglobals // Set at build time with -ldflags.
var version = "dev"

type cli struct {
	EnvFile []string `name:"env-file" default:".env" help:"Dotenv files loaded before the environment." type:"path"`

	TUI       tuiCmd       `cmd:"" default:"1" help:"Run the interactive summarizer."`
	Summarize summarizeCmd `cmd:"" help:"Summarize a file or standard input."`
	Languages languagesCmd `cmd:"" help:"List supported languages."`
	Version   versionCmd   `cmd:"" help:"Print the version."`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("xlsum"),
		kong.Description("Cross-lingual text summarizer."),
		kong.UsageOnError(),
		kong.Vars{"languages": strings.Join(language.Codes(), ",")},
	)

	if kctx.Command() == "version" {
		kctx.FatalIfErrorf(kctx.Run())

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(c.EnvFile...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop is called above.
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		stop()
		os.Exit(1)
	}
	slog.SetDefault(log)

	start := time.Now()
	a := newApp(ctx, cfg, log)

	err = kctx.Run(a)

	log.DebugContext(ctx, "Exiting...",
		"command", kctx.Command(),
		"uptimeSeconds", time.Since(start).Seconds())

	if err != nil {
		stop()
		kctx.FatalIfErrorf(err)
	}
}
