package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/reviewpulse/reviewpulse/internal/retry"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	openAIModel    = "gpt-4o-mini"
)

const openAIPrompt = `You are a precise sentiment analyzer. Analyze the user's review and respond ONLY as strict JSON with keys: score (float -1..1), label (POSITIVE|NEGATIVE|NEUTRAL), confidence (0..1). Review: %q`

// OpenAIStrategy asks a hosted LLM for a strict-JSON sentiment judgment.
// The model does not guarantee structured output, so the response is parsed
// defensively: direct parse first, then the first balanced {...} substring.
// Anything unrecoverable fails the strategy rather than the classification.
type OpenAIStrategy struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

func NewOpenAIStrategy(apiKey string, client *http.Client) *OpenAIStrategy {
	return &OpenAIStrategy{
		apiKey:   apiKey,
		model:    openAIModel,
		endpoint: openAIEndpoint,
		client:   client,
		breaker:  gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "openai"}),
	}
}

func (s *OpenAIStrategy) Name() string { return "openai" }

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *OpenAIStrategy) Classify(ctx context.Context, text string) (Result, error) {
	content, err := s.breaker.Execute(func() (any, error) {
		return retry.Do(ctx, remoteRetryPolicy(s.Name()), classifyAPIError, func() (string, error) {
			return s.call(ctx, fmt.Sprintf(openAIPrompt, text))
		})
	})
	if err != nil {
		return Result{}, err
	}

	return parseSentimentJSON(content.(string))
}

func (s *OpenAIStrategy) call(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(openAIRequest{
		Model:    s.model,
		Messages: []openAIMessage{{Role: "user", Content: prompt}},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &apiError{service: s.Name(), status: resp.StatusCode, body: string(b)}
	}

	var or openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", err
	}
	if len(or.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return or.Choices[0].Message.Content, nil
}

// sentimentPayload mirrors the JSON shape the prompt requests. Score and
// label are required; a missing confidence defaults to |score|.
type sentimentPayload struct {
	Score      *float64 `json:"score"`
	Label      *string  `json:"label"`
	Confidence *float64 `json:"confidence"`
}

func parseSentimentJSON(content string) (Result, error) {
	content = strings.TrimSpace(content)

	var payload sentimentPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		extracted, exErr := extractJSONObject(content)
		if exErr != nil {
			return Result{}, fmt.Errorf("no parseable JSON in response: %w", err)
		}
		if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
			return Result{}, fmt.Errorf("extracted JSON invalid: %w", err)
		}
	}

	if payload.Score == nil {
		return Result{}, fmt.Errorf("response missing score")
	}
	if payload.Label == nil {
		return Result{}, fmt.Errorf("response missing label")
	}

	confidence := math.Abs(*payload.Score)
	if payload.Confidence != nil {
		confidence = *payload.Confidence
	}

	return NewResult(*payload.Score, NormalizeLabel(*payload.Label), confidence)
}
