package embed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
)

// OllamaClient implements ports.EmbeddingProvider against a local Ollama
// server. The Ollama embeddings API takes one prompt per call, so inputs are
// embedded sequentially.
type OllamaClient struct {
	client *api.Client
	model  string
}

var _ ports.EmbeddingProvider = (*OllamaClient)(nil)

// NewOllamaClient builds a client for the given server URL and model.
func NewOllamaClient(serverURL, model string) (*OllamaClient, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %s: %w", serverURL, err)
	}

	httpClient := &http.Client{Timeout: 120 * time.Second}
	return &OllamaClient{
		client: api.NewClient(parsed, httpClient),
		model:  model,
	}, nil
}

// Embed returns one vector per input text, in input order.
func (c *OllamaClient) Embed(ctx context.Context, texts []string) ([]domain.Vector, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([]domain.Vector, len(texts))
	for i, text := range texts {
		resp, err := c.client.Embeddings(ctx, &api.EmbeddingRequest{
			Model:  c.model,
			Prompt: text,
		})
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		vectors[i] = resp.Embedding
	}

	return vectors, nil
}
