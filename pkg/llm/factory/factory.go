package factory

import (
	"fmt"

	"doc-manager-be/pkg/llm"
	"doc-manager-be/pkg/llm/ollama"
	"doc-manager-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, openAIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai LLM provider")
		}
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
