package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxErrorBody = 512

// ErrUnexpectedStatus は翻訳 API が 2xx 以外を返したことを示します。
var ErrUnexpectedStatus = errors.New("translator: unexpected status")

type translateRequest struct {
	Texts          []string `json:"texts"`
	TargetLanguage string   `json:"targetLanguage"`
}

type translateResponse struct {
	Translations []string `json:"translations"`
}

// Client は HTTP の一括翻訳 API クライアントです。
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient は Client を生成します。timeout が 0 以下の場合は 10 秒です。
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// TranslateBatch は texts を target の言語に翻訳し、同じ順序で返します。
func (c *Client) TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	body, err := json.Marshal(translateRequest{Texts: texts, TargetLanguage: target})
	if err != nil {
		return nil, fmt.Errorf("translator: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("translator: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translator: call %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("translator: decode response: %w", err)
	}
	if len(out.Translations) != len(texts) {
		return nil, fmt.Errorf("translator: expected %d translations, got %d", len(texts), len(out.Translations))
	}
	return out.Translations, nil
}
