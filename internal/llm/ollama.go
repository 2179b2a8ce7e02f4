package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaClient implements Client for a local inference engine speaking the
// Ollama chat API.
type OllamaClient struct {
	host       string
	model      string
	httpClient *http.Client
}

// NewOllamaClient creates a client for a local Ollama server.
func NewOllamaClient(cfg *Config) *OllamaClient {
	host := strings.TrimSuffix(cfg.Host, "/")
	if host == "" {
		host = "http://localhost:11434"
	}
	return &OllamaClient{
		host:  host,
		model: cfg.Model,
		// Local model inference is slow; the caller's context is the
		// real interruption mechanism.
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

// Generate submits a system directive and user prompt and returns the
// generated text.
func (c *OllamaClient) Generate(ctx context.Context, system, prompt string, opts Options) (string, error) {
	reqBody := ollamaChatRequest{
		Model:  c.model,
		Stream: false,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			TopP:        opts.TopP,
		},
	}
	if system != "" {
		reqBody.Messages = append(reqBody.Messages, ollamaMessage{Role: "system", Content: system})
	}
	reqBody.Messages = append(reqBody.Messages, ollamaMessage{Role: "user", Content: prompt})
	if opts.JSONOutput {
		reqBody.Format = "json"
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close failure is not actionable

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat request returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	return chatResp.Message.Content, nil
}

// Close is a no-op; the client holds no persistent connections.
func (c *OllamaClient) Close() error {
	return nil
}
