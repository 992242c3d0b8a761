package extractive

import (
	"strings"
	"unicode"
)

// SplitSentences breaks text into trimmed sentences. Latin terminators end a
// sentence only before whitespace; CJK and Devanagari terminators always do.
// Line breaks always end a sentence.
func SplitSentences(text string) []string {
	var out []string

	for _, line := range strings.Split(text, "\n") {
		out = append(out, splitLine(line)...)
	}

	return out
}

func splitLine(line string) []string {
	var out []string
	runes := []rune(line)
	start := 0

	flush := func(end int) {
		s := strings.TrimSpace(string(runes[start:end]))
		if s != "" {
			out = append(out, s)
		}
		start = end
	}

	for i, c := range runes {
		switch {
		case isWideTerminator(c):
			flush(i + 1)
		case isTerminator(c):
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush(i + 1)
			}
		}
	}
	flush(len(runes))

	return out
}

func isTerminator(c rune) bool {
	switch c {
	case '.', '!', '?', '؟':
		return true
	default:
		return false
	}
}

func isWideTerminator(c rune) bool {
	switch c {
	case '。', '！', '？', '।', '॥':
		return true
	default:
		return false
	}
}
