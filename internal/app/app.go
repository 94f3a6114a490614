package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"NewsSummary/internal/config"
	"NewsSummary/internal/domain"
	"NewsSummary/internal/infrastructure/archive"
	"NewsSummary/internal/infrastructure/cache"
	"NewsSummary/internal/infrastructure/embed"
	"NewsSummary/internal/infrastructure/llm"
	"NewsSummary/internal/infrastructure/scheduler"
	"NewsSummary/internal/infrastructure/telegram"
	"NewsSummary/internal/logging"
	"NewsSummary/internal/ports"
	"NewsSummary/internal/provider"
	"NewsSummary/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	archive  *archive.Client
	pipeline *usecase.Pipeline
	registry *provider.Registry
	cache    ports.SummaryCache
	notifier ports.Notifier
}

// RunRequest describes one day summarization request.
type RunRequest struct {
	Channel  string
	Date     string // YYYYMMDD
	Language domain.Language
	Model    string
}

// New builds a runnable application instance from configuration.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.Archive.TimeoutSeconds) * time.Second}
	archiveClient := archive.NewClient(httpClient, cfg.Archive.BaseURL)

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("build embedder: %w", err)
	}

	registry, err := buildRegistry(cfg.Summarizer)
	if err != nil {
		return nil, fmt.Errorf("build summarizer registry: %w", err)
	}

	summaryCache, err := buildCache(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("build cache: %w", err)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Transcripts: archiveClient,
		Embedder:    embedder,
		Logger:      baseLogger.With("component", "pipeline"),
	}, usecase.PipelineConfig{
		ChunkSize:      cfg.Pipeline.ChunkSize,
		ClusterCount:   cfg.Pipeline.ClusterCount,
		Seed:           cfg.Pipeline.Seed,
		FetchWorkers:   cfg.Pipeline.FetchWorkers,
		SummaryWorkers: cfg.Pipeline.SummaryWorkers,
		Retries:        cfg.Pipeline.Retries,
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		archive:  archiveClient,
		pipeline: pipeline,
		registry: registry,
		cache:    summaryCache,
		notifier: notifier,
	}, nil
}

// Models lists the registered summarization model names.
func (a *Application) Models() []string {
	return a.registry.Names()
}

// SummarizeDay runs the full pipeline for one channel and day, consulting the
// result cache first. Returns the summary records ordered by cluster id.
func (a *Application) SummarizeDay(ctx context.Context, req RunRequest) ([]domain.SummaryRecord, error) {
	channel := req.Channel
	if mapped, ok := a.cfg.Channels[channel]; ok {
		channel = mapped
	}
	if req.Model == "" {
		req.Model = a.cfg.Summarizer.Default
	}
	if req.Language == "" {
		req.Language = domain.LanguageEnglish
	}

	if err := archive.CheckDate(channel, req.Date, time.Now()); err != nil {
		return nil, err
	}

	summarizer, err := a.registry.Resolve(req.Model)
	if err != nil {
		return nil, err
	}

	key := domain.CacheKey{
		Date:         req.Date,
		Channel:      channel,
		Model:        req.Model,
		Language:     req.Language,
		ChunkSize:    a.cfg.Pipeline.ChunkSize,
		ClusterCount: a.cfg.Pipeline.ClusterCount,
	}
	logger := a.logger.With("channel", channel, "date", req.Date, "model", req.Model)

	if records, ok, err := a.cache.Get(ctx, key); err != nil {
		logger.Warn("cache lookup failed", "error", err)
	} else if ok {
		logger.Info("serving cached day summary", "records", len(records))
		return records, nil
	}

	programs, err := a.archive.DayInventory(ctx, channel, req.Date, req.Language)
	if err != nil {
		return nil, err
	}
	logger.Info("fetched day inventory", "programs", len(programs))

	docs, err := a.pipeline.SelectDocuments(ctx, req.Language, programs)
	if err != nil {
		return nil, err
	}

	records, err := a.pipeline.Summarize(ctx, summarizer, docs)
	if err != nil {
		return nil, err
	}

	if err := a.cache.Put(ctx, key, records); err != nil {
		logger.Warn("cache store failed", "error", err)
	}

	if a.notifier != nil && len(records) > 0 {
		digest := telegram.BuildDigest(channel, req.Date, records)
		if err := a.notifier.PublishDigest(ctx, digest); err != nil {
			logger.Warn("digest publish failed", "error", err)
		}
	}

	return records, nil
}

// RunDaemon summarizes the latest published day for every configured channel
// on the configured interval until the context ends.
func (a *Application) RunDaemon(ctx context.Context) error {
	driver := scheduler.NewIntervalScheduler(time.Duration(a.cfg.Scheduler.IntervalHours) * time.Hour)

	sched := usecase.NewScheduler(driver, func(ctx context.Context, trigger time.Time) {
		date := archive.LatestAvailableDay(trigger).Format("20060102")
		for name := range a.cfg.Channels {
			if ctx.Err() != nil {
				return
			}
			if _, err := a.SummarizeDay(ctx, RunRequest{Channel: name, Date: date}); err != nil {
				a.logger.Warn("scheduled run failed", "channel", name, "date", date, "error", err)
			}
		}
	})

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return sched.Stop(context.Background())
}

func buildEmbedder(cfg config.EmbeddingConfig) (ports.EmbeddingProvider, error) {
	switch cfg.Provider {
	case "ollama":
		return embed.NewOllamaClient(cfg.Endpoint, cfg.Model)
	case "", "openai":
		return embed.NewOpenAIClient(cfg.Endpoint, cfg.Model, cfg.APIKey, cfg.BatchSize), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func buildRegistry(cfg config.SummarizerConfig) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	if cfg.OpenAI.APIKey != "" {
		registry.Register(llm.NewOpenAIProvider("OpenAI", cfg.OpenAI.Endpoint, cfg.OpenAI.Model, cfg.OpenAI.APIKey))
	}
	if cfg.Vicuna.Endpoint != "" {
		// Vicuna-style servers speak the OpenAI protocol and ignore the key.
		registry.Register(llm.NewOpenAIProvider("Vicuna", cfg.Vicuna.Endpoint, cfg.Vicuna.Model, "EMPTY"))
	}
	if len(cfg.Gemini.APIKeys) > 0 {
		gemini, err := llm.NewGeminiProvider(cfg.Gemini.Model, cfg.Gemini.APIKeys)
		if err != nil {
			return nil, err
		}
		registry.Register(gemini)
	}

	if len(registry.Names()) == 0 {
		return nil, fmt.Errorf("no summarization provider configured")
	}
	return registry, nil
}

func buildCache(ctx context.Context, cfg config.CacheConfig) (ports.SummaryCache, error) {
	switch cfg.Backend {
	case "", "file":
		return cache.NewFileCache(cfg.Dir)
	case "postgres":
		db, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return cache.NewPostgresCache(db), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr, "newssummary")
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
