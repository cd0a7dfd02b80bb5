package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/reviewpulse/reviewpulse/internal/retry"
)

const (
	hfModel    = "distilbert-base-uncased-finetuned-sst-2-english"
	hfEndpoint = "https://api-inference.huggingface.co/models/" + hfModel
)

// HuggingFaceStrategy calls a hosted binary sentiment classifier. The top
// label's probability becomes the score magnitude: positive labels map to
// +probability, negative to -probability, anything else to 0.
type HuggingFaceStrategy struct {
	token    string
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

func NewHuggingFaceStrategy(token string, client *http.Client) *HuggingFaceStrategy {
	return &HuggingFaceStrategy{
		token:    token,
		endpoint: hfEndpoint,
		client:   client,
		breaker:  gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "huggingface"}),
	}
}

func (s *HuggingFaceStrategy) Name() string { return "huggingface" }

type hfClassification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (s *HuggingFaceStrategy) Classify(ctx context.Context, text string) (Result, error) {
	top, err := s.breaker.Execute(func() (any, error) {
		return retry.Do(ctx, remoteRetryPolicy(s.Name()), classifyAPIError, func() (hfClassification, error) {
			return s.call(ctx, text)
		})
	})
	if err != nil {
		return Result{}, err
	}

	classification := top.(hfClassification)
	label := NormalizeLabel(classification.Label)
	probability := classification.Score

	var score float64
	switch label {
	case LabelPositive:
		score = probability
	case LabelNegative:
		score = -probability
	default:
		score = 0
	}

	return NewResult(score, label, probability)
}

func (s *HuggingFaceStrategy) call(ctx context.Context, text string) (hfClassification, error) {
	body, _ := json.Marshal(map[string]string{"inputs": text})

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(body))
	if err != nil {
		return hfClassification{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return hfClassification{}, fmt.Errorf("huggingface API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return hfClassification{}, &apiError{service: s.Name(), status: resp.StatusCode, body: string(b)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return hfClassification{}, err
	}

	// The inference API returns either [[{label,score},...]] or [{label,score},...]
	// depending on the pipeline; accept both.
	var nested [][]hfClassification
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0][0], nil
	}
	var flat []hfClassification
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat[0], nil
	}

	return hfClassification{}, fmt.Errorf("unexpected huggingface response shape")
}
