package factory

import (
	"fmt"

	"lifehub-agent-be/pkg/llm"
	"lifehub-agent-be/pkg/llm/ollama"
	"lifehub-agent-be/pkg/llm/openai"
)

// NewLLMProvider builds a provider for the given type. apiKey is only used by
// the openai provider; an empty baseURL means each provider's default host.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(apiKey, modelName, baseURL), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
