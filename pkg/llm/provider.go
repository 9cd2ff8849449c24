package llm

import (
	"context"
)

// Message is one turn of a chat exchange, decoupled from any vendor SDK.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option adjusts a single call without changing the provider's defaults.
type Option func(*Options)

type Options struct {
	Model string // overrides the provider's configured model for this call
}

// WithModel routes one call to a different model, e.g. a session's
// prompt_model or the model field of an /ask request.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider is what the answering and preprocessing paths program against;
// openai and ollama implementations live in the subpackages.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate wraps a single prompt as a one-message chat.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
