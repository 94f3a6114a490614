package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"NewsSummary/internal/cluster"
	"NewsSummary/internal/docselect"
	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
	"NewsSummary/internal/segment"
)

// PipelineDeps wires the driven adapters into the day pipeline.
type PipelineDeps struct {
	Transcripts ports.TranscriptSource
	Embedder    ports.EmbeddingProvider
	Logger      *slog.Logger
}

// PipelineConfig carries the tunable parameters of one pipeline run.
type PipelineConfig struct {
	ChunkSize      int
	ClusterCount   int
	Seed           int64
	FetchWorkers   int
	SummaryWorkers int
	Retries        int
	RetryBase      time.Duration
}

// runStage names the phases a day run moves through, in order. A run that
// hits an unrecoverable error ends in stageFailed from whatever phase it was
// in.
type runStage string

const (
	stageFetching   runStage = "FETCHING"
	stageSegmenting runStage = "SEGMENTING"
	stageEmbedding  runStage = "EMBEDDING"
	stageClustering runStage = "CLUSTERING"
	stageSelecting  runStage = "SELECTING"
	stageDone       runStage = "DONE"
	stageFailed     runStage = "FAILED"
)

// Pipeline turns a day's program inventory into candidate documents:
// fetch transcripts, segment, embed, cluster, merge. Programs whose
// transcripts cannot be fetched are skipped, not fatal; embedding failures
// fail the whole run after retries.
type Pipeline struct {
	transcripts ports.TranscriptSource
	embedder    ports.EmbeddingProvider
	logger      *slog.Logger
	cfg         PipelineConfig
}

// NewPipeline constructs the orchestration component with sane worker and
// retry defaults.
func NewPipeline(deps PipelineDeps, cfg PipelineConfig) *Pipeline {
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 4
	}
	if cfg.SummaryWorkers <= 0 {
		cfg.SummaryWorkers = 4
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		transcripts: deps.Transcripts,
		embedder:    deps.Embedder,
		logger:      logger,
		cfg:         cfg,
	}
}

// run carries the identity and current stage of one day run.
type run struct {
	logger *slog.Logger
	stage  runStage
}

func (r *run) advance(next runStage) {
	r.logger.Debug("run stage", "from", r.stage, "to", next)
	r.stage = next
}

func (r *run) fail(err error) error {
	r.logger.Warn("run failed", "stage", r.stage, "error", err)
	r.stage = stageFailed
	return err
}

// SelectDocuments runs segmentation, embedding and clustering over the whole
// day and returns the merged candidate documents ordered by cluster id. A day
// with no usable transcript text yields an empty result, not an error.
func (p *Pipeline) SelectDocuments(ctx context.Context, lang domain.Language, programs []domain.ProgramRecord) ([]domain.CandidateDocument, error) {
	r := &run{
		logger: p.logger.With("run_id", uuid.NewString()),
		stage:  stageFetching,
	}

	transcripts, err := p.fetchTranscripts(ctx, r.logger, lang, programs)
	if err != nil {
		return nil, r.fail(err)
	}

	r.advance(stageSegmenting)
	var chunks []domain.Chunk
	for i, lines := range transcripts {
		chunks = append(chunks, segment.Split(programs[i].ID, lines, float64(p.cfg.ChunkSize))...)
	}
	if len(chunks) == 0 {
		r.advance(stageDone)
		r.logger.Info("no transcript text for the day, nothing to cluster")
		return nil, nil
	}

	r.advance(stageEmbedding)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := p.embedWithRetry(ctx, r.logger, texts)
	if err != nil {
		return nil, r.fail(err)
	}
	if len(vectors) != len(chunks) {
		return nil, r.fail(&domain.ProviderError{
			Provider: "embedding",
			Err:      fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)),
		})
	}

	r.advance(stageClustering)
	assignment := cluster.Assign(vectors, p.cfg.ClusterCount, p.cfg.Seed)

	r.advance(stageSelecting)
	docs := docselect.Merge(chunks, assignment)

	r.advance(stageDone)
	r.logger.Info("selected candidate documents",
		"programs", len(programs), "chunks", len(chunks), "documents", len(docs))
	return docs, nil
}

// fetchTranscripts pulls transcripts with a bounded worker pool. Per-program
// failures are logged and skipped (their slot stays empty); result order
// follows the inventory order. Each program's lines stay private to its
// worker until the pool drains.
func (p *Pipeline) fetchTranscripts(ctx context.Context, logger *slog.Logger, lang domain.Language, programs []domain.ProgramRecord) ([][]domain.TranscriptLine, error) {
	results := make([][]domain.TranscriptLine, len(programs))
	sem := newSemaphore(p.cfg.FetchWorkers)

	var wg sync.WaitGroup
	for i, prog := range programs {
		if err := sem.acquire(ctx); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(i int, prog domain.ProgramRecord) {
			defer wg.Done()
			defer sem.release()

			lines, err := p.transcripts.Transcript(ctx, prog.ID, lang)
			if err != nil {
				logger.Warn("skipping program", "program", prog.ID, "error", err)
				return
			}
			results[i] = lines
		}(i, prog)
	}
	wg.Wait()

	return results, nil
}

func (p *Pipeline) embedWithRetry(ctx context.Context, logger *slog.Logger, texts []string) ([]domain.Vector, error) {
	var lastErr error
	for attempt := 0; attempt < p.cfg.Retries; attempt++ {
		vectors, err := p.embedder.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err

		delay := time.Duration(math.Pow(2, float64(attempt))) * p.cfg.RetryBase
		logger.Warn("embedding attempt failed",
			"attempt", attempt+1, "retries", p.cfg.Retries, "delay", delay, "error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, &domain.ProviderError{
		Provider: "embedding",
		Err:      fmt.Errorf("after %d attempts: %w", p.cfg.Retries, lastErr),
	}
}

// Summarize fans the candidate documents out to the provider with a bounded
// worker pool and returns the records in document order. Any document failing
// after retries fails the run.
func (p *Pipeline) Summarize(ctx context.Context, provider ports.SummarizationProvider, docs []domain.CandidateDocument) ([]domain.SummaryRecord, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	records := make([]domain.SummaryRecord, len(docs))
	errs := make([]error, len(docs))
	sem := newSemaphore(p.cfg.SummaryWorkers)

	var wg sync.WaitGroup
	for i, doc := range docs {
		if err := sem.acquire(ctx); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(i int, doc domain.CandidateDocument) {
			defer wg.Done()
			defer sem.release()
			records[i], errs[i] = p.summarizeWithRetry(ctx, provider, doc)
		}(i, doc)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (p *Pipeline) summarizeWithRetry(ctx context.Context, provider ports.SummarizationProvider, doc domain.CandidateDocument) (domain.SummaryRecord, error) {
	var lastErr error
	for attempt := 0; attempt < p.cfg.Retries; attempt++ {
		record, err := provider.Summarize(ctx, doc)
		if err == nil {
			return record, nil
		}
		lastErr = err

		delay := time.Duration(math.Pow(2, float64(attempt))) * p.cfg.RetryBase
		p.logger.Warn("summary attempt failed",
			"provider", provider.Name(), "program", doc.ProgramID,
			"attempt", attempt+1, "error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return domain.SummaryRecord{}, ctx.Err()
		}
	}

	return domain.SummaryRecord{}, &domain.ProviderError{
		Provider: provider.Name(),
		Err:      fmt.Errorf("after %d attempts: %w", p.cfg.Retries, lastErr),
	}
}
