package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"NewsSummary/internal/domain"
	"NewsSummary/internal/ports"
)

// FileCache stores day summaries as pretty-printed JSON files, one per cache
// key, under a single directory.
type FileCache struct {
	dir string
}

var _ ports.SummaryCache = (*FileCache)(nil)

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// Get loads a cached day run; a missing file is a miss, not an error.
func (c *FileCache) Get(_ context.Context, key domain.CacheKey) ([]domain.SummaryRecord, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache file: %w", err)
	}

	var records []domain.SummaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("decode cache file: %w", err)
	}
	return records, true, nil
}

// Put writes the records, replacing any previous entry for the key.
func (c *FileCache) Put(_ context.Context, key domain.CacheKey, records []domain.SummaryRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

func (c *FileCache) path(key domain.CacheKey) string {
	return filepath.Join(c.dir, key.String()+".json")
}
