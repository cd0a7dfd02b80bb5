package sentiment

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/reviewpulse/reviewpulse/internal/retry"
)

// apiError carries the upstream HTTP status so failures can be classified
// for retry: throttling backs off longer, server errors retry, everything
// else is permanent.
type apiError struct {
	service string
	status  int
	body    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s API %d: %s", e.service, e.status, e.body)
}

func classifyAPIError(err error) retry.Action {
	var ae *apiError
	if errors.As(err, &ae) {
		switch {
		case ae.status == http.StatusTooManyRequests:
			return retry.After
		case ae.status >= 500:
			return retry.Retry
		default:
			return retry.Stop
		}
	}
	// Network failures and timeouts are worth one more attempt.
	return retry.Retry
}

func remoteRetryPolicy(service string) retry.Policy {
	return retry.Policy{
		MaxAttempts:      2,
		InitialBackoff:   100 * time.Millisecond,
		RateLimitBackoff: 500 * time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Debug("Retrying sentiment API call",
				"service", service, "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
}
