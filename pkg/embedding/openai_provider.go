package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(model),
	}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Data) == 0 {
		return nil, fmt.Errorf("openai returned no embedding data")
	}
	return res.Data[0].Embedding, nil
}

func (p *OpenAIProvider) Model() string {
	return string(p.model)
}
