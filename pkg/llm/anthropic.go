package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider targets the Anthropic messages API. The API has no
// multi-completion parameter, so Count completions are requested
// sequentially.
type AnthropicProvider struct {
	client    *http.Client
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
}

// NewAnthropicProvider creates an Anthropic provider from the given configuration.
func NewAnthropicProvider(cfg Config) *AnthropicProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &AnthropicProvider{
		client:    &http.Client{Timeout: cfg.TimeoutDuration()},
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (p *AnthropicProvider) Name() string {
	return ProviderAnthropic
}

func (p *AnthropicProvider) Complete(ctx context.Context, req Request) ([]string, error) {
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

func (p *AnthropicProvider) complete(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(anthropicRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		System:      req.System,
		Temperature: req.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("anthropic: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Anthropic-Version", anthropicVersion)
	if p.apiKey != "" {
		httpReq.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("anthropic: request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, ProviderAnthropic); err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}
