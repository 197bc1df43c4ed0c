package embedding

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements EmbeddingProvider using the OpenAI embeddings API.
type OpenAIProvider struct {
	client    *openai.Client
	ModelName string
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		ModelName: model,
	}
}

func (p *OpenAIProvider) Name() string  { return "openai" }
func (p *OpenAIProvider) Model() string { return p.ModelName }

func (p *OpenAIProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	resp, err := p.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.ModelName),
		Input: []string{text},
	})
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Err: errNoEmbedding}
	}

	// OpenAI embeddings are already unit-normalized; normalize anyway so the
	// cosine-distance contract holds regardless of backend.
	values := normalizeVector(resp.Data[0].Embedding)

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: values,
		},
	}, nil
}
