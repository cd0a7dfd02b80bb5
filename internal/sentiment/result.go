package sentiment

import (
	"fmt"
	"math"
	"strings"
)

// Label is the discretized polarity category of a sentiment score.
type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
)

// Result is a normalized sentiment judgment. Score is in [-1, 1] (sign is
// polarity, magnitude is strength), Confidence is in [0, 1]. A Result is only
// ever produced as a complete triple; strategies that cannot fill all three
// fields fail instead.
type Result struct {
	Score      float64
	Label      Label
	Confidence float64
}

// NormalizeLabel maps provider label vocabularies onto our enum.
// Matching is a deliberately lenient case-insensitive substring check so that
// "Positive", "LABEL_POSITIVE" and "pos" all normalize the same way.
func NormalizeLabel(raw string) Label {
	v := strings.ToLower(raw)
	if strings.Contains(v, "pos") {
		return LabelPositive
	}
	if strings.Contains(v, "neg") {
		return LabelNegative
	}
	return LabelNeutral
}

// NewResult builds a Result from raw provider values, clamping score to
// [-1, 1] and confidence to [0, 1]. Non-finite values disqualify the provider
// output entirely.
func NewResult(score float64, label Label, confidence float64) (Result, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return Result{}, fmt.Errorf("score is not a finite number")
	}
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return Result{}, fmt.Errorf("confidence is not a finite number")
	}
	return Result{
		Score:      clamp(score, -1, 1),
		Label:      label,
		Confidence: clamp(confidence, 0, 1),
	}, nil
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
