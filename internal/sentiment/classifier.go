package sentiment

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/reviewpulse/reviewpulse/internal/metrics"
)

// Strategy is one interchangeable method of producing a sentiment judgment.
// A strategy either returns a complete valid Result or an error; errors are
// never propagated to the classifier's caller, they only trigger fallback.
type Strategy interface {
	Name() string
	Classify(ctx context.Context, text string) (Result, error)
}

// Classifier tries an ordered chain of strategies and returns the first
// successful result. The chain must end with a strategy that cannot fail
// (see NewLexiconStrategy); NewClassifier enforces this by always appending
// one. The classifier is stateless across calls.
type Classifier struct {
	strategies []Strategy
}

// NewClassifier builds a classifier from the given strategies, appending the
// lexicon strategy as the guaranteed-success terminal.
func NewClassifier(strategies ...Strategy) *Classifier {
	chain := make([]Strategy, 0, len(strategies)+1)
	chain = append(chain, strategies...)
	chain = append(chain, NewLexiconStrategy())
	return &Classifier{strategies: chain}
}

// NewDefaultClassifier assembles the production chain from configured
// credentials: OpenAI when an API key is present, HuggingFace when an access
// token is present, lexicon always. An unconfigured provider is skipped
// entirely rather than attempted.
func NewDefaultClassifier(openAIAPIKey, hfAccessToken string, client *http.Client) *Classifier {
	var strategies []Strategy
	if openAIAPIKey != "" {
		strategies = append(strategies, NewOpenAIStrategy(openAIAPIKey, client))
	}
	if hfAccessToken != "" {
		strategies = append(strategies, NewHuggingFaceStrategy(hfAccessToken, client))
	}
	return NewClassifier(strategies...)
}

// Classify produces a sentiment judgment for the given text. It never fails:
// strategy errors are logged and counted, then the next strategy is tried.
// Callers are expected to reject empty or too-short text beforehand.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	for _, s := range c.strategies {
		start := time.Now()
		metrics.ClassificationAttempts.WithLabelValues(s.Name()).Inc()

		result, err := s.Classify(ctx, text)
		metrics.ClassificationDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ClassificationFailures.WithLabelValues(s.Name()).Inc()
			slog.Warn("Sentiment strategy failed, falling back", "strategy", s.Name(), "error", err)
			continue
		}

		metrics.ClassificationServed.WithLabelValues(s.Name()).Inc()
		return result
	}

	// Unreachable: the lexicon terminal cannot fail.
	return Result{Label: LabelNeutral}
}
