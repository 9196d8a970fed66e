package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultCompletionModel = "llama3-70b-8192"
	DefaultTemperature     = 0.5
	DefaultMaxTokens       = 1000
	DefaultTimeout         = 30 * time.Second
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionClient calls an OpenAI-compatible /chat/completions endpoint with
// one system and one user message. It does not retry.
type CompletionClient struct {
	cfg        CompletionConfig
	httpClient *http.Client
}

func NewCompletionClient(cfg CompletionConfig) (*CompletionClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Field: "llm.api_key"}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultCompletionModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &CompletionClient{
		cfg:        cfg,
		httpClient: &http.Client{},
	}, nil
}

func (c *CompletionClient) Model() string {
	return c.cfg.Model
}

// Complete returns the first choice's message content. Failures are one of
// *TimeoutError, *UpstreamError or *MalformedResponseError, unless ctx itself
// was cancelled. A deadline on ctx that is shorter than the configured
// timeout also yields *TimeoutError.
func (c *CompletionClient) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	bodyBytes, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal llm request failed: %w", err)
	}

	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline).Round(time.Millisecond))
	}
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build llm request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(ctx, err, timeout)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(ctx, err, timeout)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newUpstreamError(resp, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &MalformedResponseError{Reason: "body is not valid json", Body: string(raw)}
	}
	if len(parsed.Choices) == 0 {
		return "", &MalformedResponseError{Reason: "no choices", Body: string(raw)}
	}
	content := parsed.Choices[0].Message.Content
	if content == nil {
		return "", &MalformedResponseError{Reason: "choice has no message content", Body: string(raw)}
	}
	return *content, nil
}

func transportError(parent context.Context, err error, timeout time.Duration) error {
	if errors.Is(parent.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout, Err: parent.Err()}
	}
	if parent.Err() != nil {
		return fmt.Errorf("llm request failed: %w", parent.Err())
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Timeout: timeout, Err: err}
	}
	return &UpstreamError{Err: err}
}

func newUpstreamError(resp *http.Response, raw []byte) *UpstreamError {
	ue := &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var detail any
		if err := json.Unmarshal(raw, &detail); err == nil {
			ue.Detail = detail
		}
	}
	return ue
}
