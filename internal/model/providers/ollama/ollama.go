// Package ollama speaks the native Ollama chat API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harunnryd/tachi/internal/model/contract"
)

const defaultBaseURL = "http://localhost:11434"

// maxErrorBody caps how much of an error response is echoed into the error.
const maxErrorBody = 2048

type Provider struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *Provider) Name() string {
	return "ollama"
}

type chatRequest struct {
	Model    string             `json:"model"`
	Messages []contract.Message `json:"messages"`
	Stream   bool               `json:"stream"`
}

type chatResponse struct {
	Message contract.Message `json:"message"`
	Done    bool             `json:"done"`
}

// Generate sends one non-streaming chat request and returns the
// response content verbatim.
func (p *Provider) Generate(ctx context.Context, req contract.CompletionRequest) (*contract.CompletionResponse, error) {
	payload := chatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Stream:   false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("ollama API error %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &contract.CompletionResponse{Content: chatResp.Message.Content}, nil
}
