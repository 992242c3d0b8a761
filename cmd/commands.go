package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"xlsum/internal/domain"
	"xlsum/internal/ui"
)

type tuiCmd struct{}

func (c *tuiCmd) Run(a *app) error {
	session := ui.NewSession(a.engine, a.log)

	return ui.NewTUI(session, os.Stdout, a.log).Run(a.ctx)
}

type summarizeCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Text file to summarize. Standard input is read when omitted."`

	Source             string `short:"s" default:"en" enum:"${languages}" help:"Source language code: ${languages}."`
	Target             string `short:"t" default:"en" enum:"${languages}" help:"Target language code: ${languages}."`
	Strategy           string `default:"abstractive"            help:"One of extractive, abstractive or hybrid."`
	MaxLength          int    `name:"max-length" default:"150"  help:"Maximum summary length in tokens."`
	MinLength          int    `name:"min-length" default:"0"    help:"Minimum summary length in tokens. Derived from max length when 0."`
	Candidates         int    `short:"n" default:"3"           help:"Number of summaries to generate."`
	RequireTranslation bool   `name:"require-translation"      help:"Fail instead of summarizing untranslated text."`
}

func (c *summarizeCmd) Run(a *app) error {
	text, err := c.readInput()
	if err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyInput
	}

	res, err := a.engine.Summarize(a.ctx, domain.Request{
		Text:               text,
		SourceLanguage:     c.Source,
		TargetLanguage:     c.Target,
		Strategy:           domain.Strategy(c.Strategy),
		MaxLength:          c.MaxLength,
		MinLength:          c.MinLength,
		CandidateCount:     c.Candidates,
		RequireTranslation: c.RequireTranslation,
	})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if res.Degraded {
		fmt.Fprintln(os.Stderr, ui.RenderNotice(fmt.Sprintf(
			"Translation %s→%s is unavailable, summaries use the original text: %v",
			c.Source, c.Target, res.DegradedReason)))
	}

	_, err = fmt.Fprint(os.Stdout, ui.FormatSummaries(res.Candidates))

	return err
}

func (c *summarizeCmd) readInput() (string, error) {
	if c.File == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(b), nil
	}

	b, err := os.ReadFile(c.File)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", c.File, err)
	}

	return string(b), nil
}

type languagesCmd struct{}

func (c *languagesCmd) Run(a *app) error {
	for _, l := range a.engine.Languages() {
		if _, err := fmt.Fprintf(os.Stdout, "%s\t%s\n", l.Code, l.Name); err != nil {
			return err
		}
	}

	return nil
}

type versionCmd struct{}

func (c *versionCmd) Run() error {
	_, err := fmt.Fprintln(os.Stdout, version)

	return err
}
