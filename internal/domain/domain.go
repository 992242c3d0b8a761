package domain

import "errors"

const (
	DefaultMinLength      = 50
	DefaultCandidateCount = 3
)

var (
	ErrUnsupportedLanguage   = errors.New("unsupported language")
	ErrInvalidStrategy       = errors.New("invalid strategy")
	ErrInvalidLength         = errors.New("invalid length bounds")
	ErrInvalidCandidateCount = errors.New("invalid candidate count")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrEmptyInput            = errors.New("input text is required")
)

type Language struct {
	Code string
	Name string
	// Tag is the model-specific locale tag, e.g. "en_XX".
	Tag string
}

type Strategy string

const (
	StrategyExtractive  Strategy = "extractive"
	StrategyAbstractive Strategy = "abstractive"
	StrategyHybrid      Strategy = "hybrid"
)

func Strategies() []Strategy {
	return []Strategy{StrategyExtractive, StrategyAbstractive, StrategyHybrid}
}

func (s Strategy) Valid() bool {
	switch s {
	case StrategyExtractive, StrategyAbstractive, StrategyHybrid:
		return true
	default:
		return false
	}
}

// Pair is an ordered source/target language pair.
type Pair struct {
	Source string
	Target string
}

func (p Pair) String() string {
	return p.Source + "->" + p.Target
}

type Sampling struct {
	Beams       int
	Temperature float64
	TopK        int
	TopP        float64
}

func DefaultSampling() Sampling {
	return Sampling{
		Beams:       4,
		Temperature: 0.7,
		TopK:        50,
		TopP:        0.95,
	}
}

type Request struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
	Strategy       Strategy
	MaxLength      int
	MinLength      int
	CandidateCount int
	// RequireTranslation turns a translation failure into an error instead of a degraded result.
	RequireTranslation bool
}

type Result struct {
	RequestID      string
	Candidates     []string
	Translated     bool
	Degraded       bool
	DegradedReason error
	InputTruncated bool
}
