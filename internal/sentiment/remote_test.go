package sentiment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reviewpulse/reviewpulse/internal/retry"
)

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want retry.Action
	}{
		{"throttled", &apiError{service: "openai", status: 429}, retry.After},
		{"server error", &apiError{service: "openai", status: 500}, retry.Retry},
		{"bad gateway", &apiError{service: "huggingface", status: 502}, retry.Retry},
		{"unauthorized", &apiError{service: "openai", status: 401}, retry.Stop},
		{"bad request", &apiError{service: "openai", status: 400}, retry.Stop},
		{"network failure", errors.New("connection refused"), retry.Retry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAPIError(tt.err))
		})
	}
}
