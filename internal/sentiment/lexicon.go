package sentiment

import (
	"context"
	"math"
	"strings"
)

// Polarity keyword sets. Exact matches only, no stemming.
var (
	positiveWords = map[string]struct{}{
		"good": {}, "great": {}, "excellent": {}, "amazing": {}, "love": {},
		"fantastic": {}, "happy": {}, "satisfied": {}, "awesome": {}, "perfect": {},
	}
	negativeWords = map[string]struct{}{
		"bad": {}, "terrible": {}, "awful": {}, "hate": {}, "poor": {},
		"angry": {}, "unsatisfied": {}, "horrible": {}, "worst": {}, "disappointed": {},
	}
)

// labelThreshold separates POSITIVE/NEGATIVE from NEUTRAL on the normalized score.
const labelThreshold = 0.15

// LexiconStrategy scores text against fixed keyword sets. It has no external
// dependency, is exactly deterministic for identical input, and never fails,
// which makes it the guaranteed terminal of every strategy chain.
type LexiconStrategy struct{}

func NewLexiconStrategy() *LexiconStrategy {
	return &LexiconStrategy{}
}

func (s *LexiconStrategy) Name() string { return "lexicon" }

func (s *LexiconStrategy) Classify(_ context.Context, text string) (Result, error) {
	tokens := tokenize(text)

	raw := 0
	for _, token := range tokens {
		if _, ok := positiveWords[token]; ok {
			raw++
		}
		if _, ok := negativeWords[token]; ok {
			raw--
		}
	}

	// Normalize by text length so long neutral text doesn't trivially saturate.
	score := clamp(float64(raw)/math.Max(1, float64(len(tokens))/10), -1, 1)

	label := LabelNeutral
	switch {
	case score > labelThreshold:
		label = LabelPositive
	case score < -labelThreshold:
		label = LabelNegative
	}

	return Result{
		Score:      score,
		Label:      label,
		Confidence: math.Min(1, math.Abs(score)),
	}, nil
}

// tokenize splits text into lowercase alphabetic runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}
