package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxNewTokens is the generation length requested from the hosted model.
const maxNewTokens = 100

// InferenceClient proxies prompts to a hosted text-generation model.
type InferenceClient struct {
	url        string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

// NewInferenceClient creates an InferenceClient. ratePerMinute of zero
// leaves outbound calls unthrottled.
func NewInferenceClient(url, token string, timeout time.Duration, ratePerMinute int) *InferenceClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &InferenceClient{
		url:        url,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    newLimiter(ratePerMinute),
	}
}

// Configured reports whether a model URL is set.
func (c *InferenceClient) Configured() bool {
	return c.url != ""
}

// Generate sends prompt and returns the generated text. The hosted model
// answers either [{"generated_text": ...}] or {"generated_text": ...}.
func (c *InferenceClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("inference: model URL not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("inference: rate limit wait: %w", err)
	}

	body, err := json.Marshal(inferenceRequest{
		Inputs:     prompt,
		Parameters: inferenceParameters{MaxNewTokens: maxNewTokens},
	})
	if err != nil {
		return "", fmt.Errorf("inference: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("inference: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("inference: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	type generated struct {
		GeneratedText string `json:"generated_text"`
	}
	var list []generated
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", nil
		}
		return list[0].GeneratedText, nil
	}
	var single generated
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", fmt.Errorf("inference: parse response: %w", err)
	}
	return single.GeneratedText, nil
}
