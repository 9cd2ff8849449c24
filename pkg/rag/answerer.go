package rag

import (
	"context"

	"doc-manager-be/pkg/llm"
)

// Answerer turns retrieved chunks plus a question into a generated answer.
type Answerer struct {
	llmProvider llm.LLMProvider
}

func NewAnswerer(llmProvider llm.LLMProvider) *Answerer {
	return &Answerer{llmProvider: llmProvider}
}

// Answer generates the response. An empty model keeps the provider default.
func (a *Answerer) Answer(ctx context.Context, question string, contexts []string, model string) (string, error) {
	prompt := BuildGroundedPrompt(question, contexts)

	var options []llm.Option
	if model != "" {
		options = append(options, llm.WithModel(model))
	}

	return a.llmProvider.Generate(ctx, prompt, options...)
}
