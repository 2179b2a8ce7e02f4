// Package llm provides the text-generation client abstraction and its
// provider implementations. Providers are interchangeable: callers see only
// the generated text, never provider-specific response shapes.
package llm

import (
	"context"
	"fmt"
)

// Options are per-call decoding parameters. The pipeline uses low-randomness
// settings throughout to minimize output variance.
type Options struct {
	Temperature float32
	TopP        float32
	// JSONOutput asks the provider for a pure-JSON response where the
	// provider supports constrained decoding. Output still goes through
	// the repair pass; this only lowers the failure rate.
	JSONOutput bool
}

// DefaultOptions returns the deterministic decoding parameters used for
// extraction, selection and scoring calls.
func DefaultOptions() Options {
	return Options{Temperature: 0.1, TopP: 0.9, JSONOutput: true}
}

// Client is an abstraction over text-generation providers.
type Client interface {
	// Generate submits a system directive and user prompt and returns the
	// generated text.
	Generate(ctx context.Context, system, prompt string, opts Options) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Provider identifies a text-generation backend. Selection is a
// configuration-time decision, not a runtime type check.
type Provider string

// Supported providers.
const (
	// ProviderGemini is the hosted Google Gemini API.
	ProviderGemini Provider = "gemini"
	// ProviderOllama is a local inference engine speaking the Ollama REST API.
	ProviderOllama Provider = "ollama"
)

// Config holds provider selection and model naming for the process.
type Config struct {
	Provider Provider
	Model    string
	// APIKey authenticates hosted providers. Ignored by local ones.
	APIKey string
	// Host is the base URL of a local inference engine.
	Host string
}

// DefaultConfig returns the default local-inference configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOllama,
		Model:    "gemma3:4b",
		Host:     "http://localhost:11434",
	}
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case ProviderOllama:
		return NewOllamaClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
