// Package client talks to a running edubot server over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"edubot/internal/app"
	"edubot/internal/rag"
)

const chatbotPrefix = "/api/v1/chatbot"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-zero code from the server's response envelope.
type APIError struct {
	HTTPStatus int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d (code %d): %s", e.HTTPStatus, e.Code, e.Message)
}

type QueryRequest struct {
	Query   string        `json:"query"`
	UserID  string        `json:"userId,omitempty"`
	Context *QueryContext `json:"context,omitempty"`
}

type QueryContext struct {
	UserRole string `json:"userRole,omitempty"`
}

type RefreshAck struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ChunkCount     int    `json:"chunk_count"`
	SkippedRecords int    `json:"skipped_records"`
	DroppedChunks  int    `json:"dropped_chunks"`
	BuiltAt        string `json:"built_at"`
	RequestID      string `json:"request_id"`
}

func (c *Client) Query(ctx context.Context, req QueryRequest) (*rag.AnswerEnvelope, error) {
	var out rag.AnswerEnvelope
	if err := c.do(ctx, http.MethodPost, chatbotPrefix+"/query", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, async bool) (*RefreshAck, error) {
	path := chatbotPrefix + "/refresh-knowledge"
	if async {
		path += "?async=true"
	}
	var out RefreshAck
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SuggestQueries(ctx context.Context, topic string) ([]string, error) {
	path := chatbotPrefix + "/suggest-queries"
	if topic != "" {
		path += "?context=" + url.QueryEscape(topic)
	}
	var out []string
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Feedback(ctx context.Context, responseID string, rating int, comment string) (*app.FeedbackReceipt, error) {
	body := map[string]any{"response_id": responseID, "rating": rating, "comment": comment}
	var out app.FeedbackReceipt
	if err := c.do(ctx, http.MethodPost, chatbotPrefix+"/feedback", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*app.IndexStats, error) {
	var out app.IndexStats
	if err := c.do(ctx, http.MethodGet, chatbotPrefix+"/index/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns the raw /healthz document; a 503 still carries a body.
func (c *Client) Health(ctx context.Context) (map[string]any, int, error) {
	resp, raw, err := c.send(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return nil, 0, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse health response failed: %w", err)
	}
	return out, resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("parse response failed (status %d): %w", resp.StatusCode, err)
	}
	if envelope.Code != 0 || resp.StatusCode >= 300 {
		return &APIError{HTTPStatus: resp.StatusCode, Code: envelope.Code, Message: envelope.Message}
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("parse response data failed: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response failed: %w", err)
	}
	return resp, raw, nil
}
