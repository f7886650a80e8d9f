package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OllamaProvider targets a local or self-hosted Ollama instance via its
// chat API. Count completions are requested sequentially.
type OllamaProvider struct {
	client  *http.Client
	baseURL string
	model   string
}

// NewOllamaProvider creates an Ollama provider from the given configuration.
func NewOllamaProvider(cfg Config) *OllamaProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaProvider{
		client:  &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL: baseURL,
		model:   cfg.Model,
	}
}

func (p *OllamaProvider) Name() string {
	return ProviderOllama
}

func (p *OllamaProvider) Complete(ctx context.Context, req Request) ([]string, error) {
	texts := make([]string, 0, req.Count)

	for range req.Count {
		text, err := p.complete(ctx, req)
		if err != nil {
			return texts, err
		}
		if text != "" {
			texts = append(texts, text)
		}
	}

	return texts, nil
}

func (p *OllamaProvider) complete(ctx context.Context, req Request) (string, error) {
	messages := make([]ollamaMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: req.Prompt})

	payload, err := json.Marshal(ollamaRequest{
		Model:    p.model,
		Messages: messages,
		Stream:   false,
		Options:  ollamaOptions{Temperature: req.Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ollama: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, ProviderOllama); err != nil {
		return "", err
	}

	var parsed ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}

	return strings.TrimSpace(parsed.Message.Content), nil
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}
