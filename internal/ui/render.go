package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

//nolint:gochecknoglobals // Styles are immutable once built.
var (
	accentColor = lipgloss.Color("#58a6ff")
	textColor   = lipgloss.Color("#c9d1d9")
	errorColor  = lipgloss.Color("#f85149")
	noticeColor = lipgloss.Color("#d29922")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	bodyStyle    = lipgloss.NewStyle().Foreground(textColor).PaddingLeft(2)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	noticeStyle  = lipgloss.NewStyle().Italic(true).Foreground(noticeColor)
)

const Title = "Interstellar Cross-Lingual Summarizer"

func RenderTitle() string {
	return titleStyle.Render(Title)
}

// RenderSummaries styles the numbered candidates for the terminal.
func RenderSummaries(summaries []string, notice string) string {
	var b strings.Builder

	if notice != "" {
		b.WriteString(noticeStyle.Render(notice))
		b.WriteString("\n\n")
	}

	b.WriteString(headingStyle.Render("Generated Summaries:"))
	b.WriteString("\n\n")

	for i, summary := range summaries {
		b.WriteString(headingStyle.Render(fmt.Sprintf("Summary %d:", i+1)))
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(summary))
		b.WriteString("\n\n")
	}

	return b.String()
}

func RenderError(message string) string {
	return errorStyle.Render("Error: " + message)
}

func RenderNotice(message string) string {
	return noticeStyle.Render(message)
}
