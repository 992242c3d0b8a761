// Package textprep normalizes user-supplied text before it reaches a capability.
package textprep

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

const blockSelectors = "p, div, li, tr, h1, h2, h3, h4, h5, h6, blockquote, pre, article, section"

//nolint:gochecknoglobals // Compiled once, read-only.
var htmlTagRe = regexp.MustCompile(
	`(?i)<(?:p|div|br|span|a|li|ul|ol|h[1-6]|table|tr|td|html|body|article|section|blockquote|pre)\b[^>]*>`,
)

// Normalize returns text in NFC form with pasted markup reduced to plain text
// and runs of whitespace collapsed. At most one blank line separates paragraphs.
func Normalize(text string) (string, error) {
	text = norm.NFC.String(text)

	if LooksLikeHTML(text) {
		plain, err := htmlToText(text)
		if err != nil {
			return "", fmt.Errorf("extract html text: %w", err)
		}
		text = plain
	}

	return collapseWhitespace(text), nil
}

func LooksLikeHTML(text string) bool {
	return htmlTagRe.MatchString(text)
}

func htmlToText(text string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return doc.Text(), nil
}

func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true

			continue
		}

		out = append(out, line)
		blank = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
