package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	// Embed returns the embedding vector for one text
	Embed(ctx context.Context, text string) ([]float32, error)
	// Model reports the model name for decision logging
	Model() string
}
