package factory

import (
	"fmt"

	"nagrik-mitra-be/pkg/llm"
	"nagrik-mitra-be/pkg/llm/ollama"
	"nagrik-mitra-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, apiKey, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		// A missing API key is not a construction error: the provider
		// reports llm.ErrNotConfigured on first use so chat turns can
		// answer with the admin-facing message.
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
