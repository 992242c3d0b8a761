// Package language holds the fixed catalog of languages the summarizer accepts.
package language

import "xlsum/internal/domain"

//nolint:gochecknoglobals // Lookup table meant to be immutable.
var entries = []domain.Language{
	{Code: "en", Name: "English", Tag: "en_XX"},
	{Code: "es", Name: "Spanish", Tag: "es_XX"},
	{Code: "fr", Name: "French", Tag: "fr_XX"},
	{Code: "de", Name: "German", Tag: "de_DE"},
	{Code: "it", Name: "Italian", Tag: "it_IT"},
	{Code: "ru", Name: "Russian", Tag: "ru_RU"},
	{Code: "zh", Name: "Chinese", Tag: "zh_CN"},
	{Code: "ar", Name: "Arabic", Tag: "ar_AR"},
	{Code: "hi", Name: "Hindi", Tag: "hi_IN"},
	{Code: "sa", Name: "Sanskrit", Tag: "sa_IN"},
}

// All returns the catalog in display order. The slice is a copy.
func All() []domain.Language {
	out := make([]domain.Language, len(entries))
	copy(out, entries)

	return out
}

func Lookup(code string) (domain.Language, bool) {
	for _, l := range entries {
		if l.Code == code {
			return l, true
		}
	}

	return domain.Language{}, false
}

func Codes() []string {
	codes := make([]string, 0, len(entries))
	for _, l := range entries {
		codes = append(codes, l.Code)
	}

	return codes
}
