package embedding

import "fmt"

func NewProvider(providerType, openAIKey, model, ollamaBaseURL string) (EmbeddingProvider, error) {
	switch providerType {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider")
		}
		return NewOpenAIProvider(openAIKey, model), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434"
		}
		return NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
