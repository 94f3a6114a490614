package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
)

// GeminiProvider implements ports.SummarizationProvider via the Gemini API.
// Rotates across its API keys when one hits a rate limit.
type GeminiProvider struct {
	model   string
	apiKeys []string

	mu         sync.Mutex
	currentKey int
}

var _ ports.SummarizationProvider = (*GeminiProvider)(nil)

// NewGeminiProvider builds a provider over one or more API keys.
func NewGeminiProvider(model string, apiKeys []string) (*GeminiProvider, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini provider needs at least one api key")
	}
	return &GeminiProvider{model: model, apiKeys: apiKeys}, nil
}

// Name identifies the provider inside the registry.
func (p *GeminiProvider) Name() string {
	return "Gemini"
}

// Summarize sends the document to Gemini, rotating keys on 429 / quota errors.
func (p *GeminiProvider) Summarize(ctx context.Context, doc domain.CandidateDocument) (domain.SummaryRecord, error) {
	prompt := systemPrompt + "\n\nTranscript:\n---\n" + doc.Text + "\n---"

	var lastErr error
	for range p.apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  p.nextKey(false),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			p.nextKey(true)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				p.nextKey(true)
				lastErr = err
				continue
			}
			return domain.SummaryRecord{}, fmt.Errorf("generate content: %w", err)
		}

		text := collectText(result)
		if text == "" {
			return domain.SummaryRecord{}, fmt.Errorf("empty response from gemini")
		}
		return buildRecord(doc, text)
	}

	return domain.SummaryRecord{}, fmt.Errorf("all api keys exhausted: %w", lastErr)
}

// nextKey returns the active key, first advancing the rotation when rotate is
// set.
func (p *GeminiProvider) nextKey(rotate bool) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if rotate {
		p.currentKey = (p.currentKey + 1) % len(p.apiKeys)
	}
	return p.apiKeys[p.currentKey]
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func collectText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}
