package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
)

const systemPrompt = `You summarize television news transcripts. Respond with a single JSON object and nothing else: {"title": "...", "description": "...", "category": "..."}. The title is one short headline, the description is 2-3 sentences, the category is one word such as politics, economy, war, culture or sports.`

// OpenAIProvider implements ports.SummarizationProvider against
// OpenAI-compatible chat APIs. The same client covers Vicuna-style servers,
// which expose the OpenAI protocol at an alternate endpoint with a dummy key.
type OpenAIProvider struct {
	name       string
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.SummarizationProvider = (*OpenAIProvider)(nil)

// NewOpenAIProvider builds a provider registered under the given model name.
func NewOpenAIProvider(name, endpoint, model, apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		name:     name,
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Name identifies the provider inside the registry.
func (p *OpenAIProvider) Name() string {
	return p.name
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type summaryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Summarize sends the document text as a user message and parses the JSON
// summary out of the reply.
func (p *OpenAIProvider) Summarize(ctx context.Context, doc domain.CandidateDocument) (domain.SummaryRecord, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: doc.Text},
		},
	})
	if err != nil {
		return domain.SummaryRecord{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SummaryRecord{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.SummaryRecord{}, fmt.Errorf("request summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.SummaryRecord{}, fmt.Errorf("chat error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.SummaryRecord{}, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return domain.SummaryRecord{}, fmt.Errorf("chat response carries no choices")
	}

	return buildRecord(doc, parsed.Choices[0].Message.Content)
}

// buildRecord attaches the document's identity and time span to the model's
// summary fields.
func buildRecord(doc domain.CandidateDocument, reply string) (domain.SummaryRecord, error) {
	var summary summaryPayload
	if err := json.Unmarshal([]byte(extractJSON(reply)), &summary); err != nil {
		return domain.SummaryRecord{}, fmt.Errorf("parse summary reply: %w", err)
	}

	return domain.SummaryRecord{
		ID:          doc.ProgramID,
		Start:       doc.Start,
		End:         doc.End,
		Title:       summary.Title,
		Description: summary.Description,
		Category:    summary.Category,
		Transcript:  doc.Text,
	}, nil
}

// extractJSON cuts the outermost object out of a reply. Models wrap JSON in
// code fences or prose despite instructions.
func extractJSON(reply string) string {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return reply
	}
	return reply[start : end+1]
}
