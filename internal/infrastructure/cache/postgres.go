package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
)

// PostgresCache stores day summaries in a single table keyed by the full
// parameter tuple, records serialized as JSON.
//
// Expected schema:
//
//	CREATE TABLE day_summaries (
//	    date          TEXT NOT NULL,
//	    channel       TEXT NOT NULL,
//	    model         TEXT NOT NULL,
//	    language      TEXT NOT NULL,
//	    chunk_size    INT  NOT NULL,
//	    cluster_count INT  NOT NULL,
//	    records       JSONB NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (date, channel, model, language, chunk_size, cluster_count)
//	);
type PostgresCache struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.SummaryCache = (*PostgresCache)(nil)

// NewPostgresCache wires a sql.DB implementation.
func NewPostgresCache(db *sql.DB) *PostgresCache {
	return &PostgresCache{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get loads a cached day run; no row is a miss, not an error.
func (c *PostgresCache) Get(ctx context.Context, key domain.CacheKey) ([]domain.SummaryRecord, bool, error) {
	query, args, err := c.buildGet(key)
	if err != nil {
		return nil, false, fmt.Errorf("build get query: %w", err)
	}

	var payload []byte
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache entry: %w", err)
	}

	var records []domain.SummaryRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return records, true, nil
}

// Put upserts the records for the key.
func (c *PostgresCache) Put(ctx context.Context, key domain.CacheKey, records []domain.SummaryRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	query, args, err := c.buildPut(key, payload)
	if err != nil {
		return fmt.Errorf("build put query: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}

func (c *PostgresCache) buildGet(key domain.CacheKey) (string, []any, error) {
	return c.builder.
		Select("records").
		From("day_summaries").
		Where(sq.Eq{
			"date":          key.Date,
			"channel":       key.Channel,
			"model":         key.Model,
			"language":      string(key.Language),
			"chunk_size":    key.ChunkSize,
			"cluster_count": key.ClusterCount,
		}).
		ToSql()
}

func (c *PostgresCache) buildPut(key domain.CacheKey, payload []byte) (string, []any, error) {
	return c.builder.
		Insert("day_summaries").
		Columns("date", "channel", "model", "language", "chunk_size", "cluster_count", "records").
		Values(key.Date, key.Channel, key.Model, string(key.Language), key.ChunkSize, key.ClusterCount, payload).
		Suffix("ON CONFLICT (date, channel, model, language, chunk_size, cluster_count) DO UPDATE SET records = EXCLUDED.records, updated_at = NOW()").
		ToSql()
}
