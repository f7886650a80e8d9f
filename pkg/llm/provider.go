// Package llm provides chat-completion clients for AI providers behind a
// uniform Provider interface. Each client speaks its provider's native HTTP
// API and enforces a per-call timeout.
package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Request carries the inputs for a completion call.
// Count asks the provider for that many independent completions; providers
// without native multi-completion support issue sequential calls.
type Request struct {
	System      string
	Prompt      string
	Count       int
	Temperature float64
}

// Provider produces chat completions for a single AI backend.
type Provider interface {
	// Name returns the provider identifier used in configuration and results.
	Name() string
	// Complete returns up to req.Count completion texts.
	Complete(ctx context.Context, req Request) ([]string, error)
}

// NewProvider creates a Provider for the configured backend.
// Returns ErrUnknownProvider for unrecognized names.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg), nil
	case ProviderOllama:
		return NewOllamaProvider(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// Known provider identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

func checkStatus(resp *http.Response, provider string) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s: unexpected status %s: %s", provider, resp.Status, strings.TrimSpace(string(body)))
}
