package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

const (
	actionSummarize = "summarize"
	actionClear     = "clear"
	actionQuit      = "quit"

	inputCharLimit = 20000
	inputLines     = 8
)

// TUI is the interactive form loop around a Session.
type TUI struct {
	session *Session
	out     io.Writer
	log     *slog.Logger
}

func NewTUI(session *Session, out io.Writer, log *slog.Logger) *TUI {
	return &TUI{
		session: session,
		out:     out,
		log:     log,
	}
}

// Run shows the form until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, RenderTitle())

	for {
		action, err := t.ask(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("run form: %w", err)
		}

		switch action {
		case actionSummarize:
			if err = t.submit(ctx); err != nil {
				return err
			}
		case actionClear:
			t.session.Clear()
			fmt.Fprintln(t.out, RenderNotice("Cleared."))
		case actionQuit:
			return nil
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (t *TUI) submit(ctx context.Context) error {
	var submitErr error

	err := spinner.New().
		Title("Summarizing...").
		Context(ctx).
		Action(func() {
			submitErr = t.session.Submit(ctx)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("run spinner: %w", err)
	}

	if submitErr != nil {
		fmt.Fprintln(t.out, RenderError(ErrorMessage(submitErr)))

		return nil
	}

	fmt.Fprint(t.out, RenderSummaries(t.session.Candidates, t.session.Notice))

	return nil
}

func (t *TUI) ask(ctx context.Context) (string, error) {
	s := t.session
	maxLength := strconv.Itoa(s.MaxLength)
	action := actionSummarize

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Input Text").
				Placeholder("Enter your text here...").
				CharLimit(inputCharLimit).
				Lines(inputLines).
				Value(&s.Input),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source Language").
				Options(t.languageOptions()...).
				Value(&s.SourceLanguage),
			huh.NewSelect[string]().
				Title("Target Language").
				Options(t.languageOptions()...).
				Value(&s.TargetLanguage),
			huh.NewSelect[string]().
				Title("Strategy").
				Options(t.strategyOptions()...).
				Value((*string)(&s.Strategy)),
			huh.NewInput().
				Title("Max Summary Length").
				Description(fmt.Sprintf("Tokens, %d to %d.", MinMaxLength, MaxMaxLength)).
				Value(&maxLength).
				Validate(func(v string) error {
					_, err := ParseMaxLength(v)

					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Action").
				Options(
					huh.NewOption("Summarize", actionSummarize),
					huh.NewOption("Clear", actionClear),
					huh.NewOption("Quit", actionQuit),
				).
				Value(&action),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}

	n, err := ParseMaxLength(maxLength)
	if err != nil {
		return "", err
	}
	s.MaxLength = n

	t.log.DebugContext(ctx, "Form is submitted",
		"action", action,
		"sourceLanguage", s.SourceLanguage,
		"targetLanguage", s.TargetLanguage,
		"strategy", s.Strategy,
		"maxLength", s.MaxLength)

	return action, nil
}

func (t *TUI) languageOptions() []huh.Option[string] {
	languages := t.session.engine.Languages()
	opts := make([]huh.Option[string], 0, len(languages))
	for _, l := range languages {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", l.Name, l.Code), l.Code))
	}

	return opts
}

func (t *TUI) strategyOptions() []huh.Option[string] {
	strategies := t.session.engine.Strategies()
	opts := make([]huh.Option[string], 0, len(strategies))
	for _, st := range strategies {
		opts = append(opts, huh.NewOption(string(st), string(st)))
	}

	return opts
}
