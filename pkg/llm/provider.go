package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when the backing provider has no API key or
// endpoint to talk to. Callers show an admin-facing message instead of the
// generic failure apology.
var ErrNotConfigured = errors.New("llm provider not configured")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ConfigProbe is implemented by providers that can be constructed without
// working credentials. Callers may check it before issuing any call;
// providers that need no credentials (local Ollama) don't implement it.
type ConfigProbe interface {
	Configured() bool
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
