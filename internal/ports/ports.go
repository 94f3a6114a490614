package ports

import (
	"context"
	"time"

	"NewsSummary/internal/domain"
)

// InventorySource lists the programs a channel aired on a given day.
// Days the archive has not published yet fail with *domain.NotAvailableError.
type InventorySource interface {
	DayInventory(ctx context.Context, channel, date string, lang domain.Language) ([]domain.ProgramRecord, error)
}

// TranscriptSource fetches the time-coded transcript of one program.
type TranscriptSource interface {
	Transcript(ctx context.Context, programID string, lang domain.Language) ([]domain.TranscriptLine, error)
}

// EmbeddingProvider maps texts to vectors, one per input, order preserved.
// All-or-nothing: a failed call returns no partial results.
type EmbeddingProvider interface {
	Embed(ctx context.Context, texts []string) ([]domain.Vector, error)
}

// SummarizationProvider condenses one candidate document into a structured
// summary. Name identifies the provider for registry lookup and cache keys.
type SummarizationProvider interface {
	Name() string
	Summarize(ctx context.Context, doc domain.CandidateDocument) (domain.SummaryRecord, error)
}

// SummaryCache persists finished day runs keyed by the full parameter tuple.
// A miss is reported with ok=false, not an error.
type SummaryCache interface {
	Get(ctx context.Context, key domain.CacheKey) ([]domain.SummaryRecord, bool, error)
	Put(ctx context.Context, key domain.CacheKey, records []domain.SummaryRecord) error
}

// Notifier streams finished digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when day runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
