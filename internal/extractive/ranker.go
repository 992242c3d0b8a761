// Package extractive selects existing sentences from a text instead of generating new ones.
package extractive

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
	"xlsum/internal/tokens"

	"mvdan.cc/xurls/v2"
)

const (
	minScoredWordRunes = 3
	separatorTokens    = 1

	// A candidate keeps at most 1/sentenceShare of the sentences.
	sentenceShare = 3
)

type Ranker struct {
	tokens *tokens.Estimator
	urlRe  *regexp.Regexp
}

func NewRanker(est *tokens.Estimator) *Ranker {
	return &Ranker{
		tokens: est,
		urlRe:  xurls.Relaxed(),
	}
}

type sentence struct {
	index  int
	text   string
	score  float64
	tokens int
}

// Candidates returns n extractive summaries of at most maxTokens tokens and
// at most a third of the sentences each. Candidate k starts its selection at
// the k-th best sentence, wrapping around when n exceeds the sentence count.
func (r *Ranker) Candidates(text string, n int, maxTokens int) []string {
	ranked := r.rank(text)
	out := make([]string, 0, n)
	limit := max(1, (len(ranked)+sentenceShare-1)/sentenceShare)

	for k := range n {
		if len(ranked) == 0 {
			out = append(out, "")
			continue
		}

		start := k % len(ranked)
		order := make([]sentence, 0, len(ranked))
		order = append(order, ranked[start:]...)
		order = append(order, ranked[:start]...)

		out = append(out, r.pick(order, maxTokens, limit))
	}

	return out
}

// Condense keeps the best sentences of text that fit into maxTokens, in their
// original order. Text that already fits is returned unchanged.
func (r *Ranker) Condense(text string, maxTokens int) string {
	if maxTokens <= 0 || r.tokens.Count(text) <= maxTokens {
		return text
	}

	ranked := r.rank(text)
	if len(ranked) == 0 {
		return text
	}

	return r.pick(ranked, maxTokens, len(ranked))
}

func (r *Ranker) pick(order []sentence, maxTokens int, maxSentences int) string {
	var chosen []sentence
	total := 0

	for _, s := range order {
		if len(chosen) == maxSentences {
			break
		}

		cost := s.tokens
		if len(chosen) > 0 {
			cost += separatorTokens
		}

		if total+cost > maxTokens {
			continue
		}

		chosen = append(chosen, s)
		total += cost
	}

	if len(chosen) == 0 {
		cut, _ := r.tokens.Truncate(order[0].text, maxTokens)

		return cut
	}

	slices.SortFunc(chosen, func(a, b sentence) int {
		return a.index - b.index
	})

	parts := make([]string, 0, len(chosen))
	for _, s := range chosen {
		parts = append(parts, s.text)
	}

	return strings.Join(parts, " ")
}

func (r *Ranker) rank(text string) []sentence {
	raw := SplitSentences(text)
	if len(raw) == 0 {
		return nil
	}

	words := make([][]string, len(raw))
	freq := make(map[string]int)

	for i, s := range raw {
		words[i] = r.words(s)
		for _, w := range words[i] {
			freq[w]++
		}
	}

	ranked := make([]sentence, len(raw))
	for i, s := range raw {
		var score float64
		if len(words[i]) > 0 {
			sum := 0
			for _, w := range words[i] {
				sum += freq[w]
			}
			score = float64(sum) / float64(len(words[i]))
		}

		ranked[i] = sentence{
			index:  i,
			text:   s,
			score:  score,
			tokens: r.tokens.Count(s),
		}
	}

	slices.SortStableFunc(ranked, func(a, b sentence) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	return ranked
}

func (r *Ranker) words(s string) []string {
	s = r.urlRe.ReplaceAllString(s, " ")

	fields := strings.FieldsFunc(strings.ToLower(s), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c) && !unicode.IsMark(c)
	})

	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minScoredWordRunes {
			out = append(out, f)
		}
	}

	return out
}
