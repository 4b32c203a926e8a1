package llm

import (
	"context"
)

// Message is a chat message in a provider-agnostic format.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option sets optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // override the provider's default model
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

// LLMProvider is the contract for any content-generation backend.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt (convenience over Chat).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
