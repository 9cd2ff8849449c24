package openai

import (
	"context"
	"fmt"

	"doc-manager-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client       *goopenai.Client
	defaultModel string
}

func NewOpenAIProvider(apiKey, defaultModel string) llm.LLMProvider {
	if defaultModel == "" {
		defaultModel = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client:       goopenai.NewClient(apiKey),
		defaultModel: defaultModel,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Options{}
	for _, o := range options {
		o(&opts)
	}

	model := p.defaultModel
	if opts.Model != "" {
		model = opts.Model
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	res, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("openai returned no completion choices")
	}
	return res.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
