package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"NewsSummary/internal/domain"
)

func testKey() domain.CacheKey {
	return domain.CacheKey{
		Date:         "20220401",
		Channel:      "RUSSIA1",
		Model:        "OpenAI",
		Language:     domain.LanguageEnglish,
		ChunkSize:    30,
		ClusterCount: 20,
	}
}

func TestFileCacheRoundtrip(t *testing.T) {
	t.Parallel()

	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	ctx := context.Background()
	key := testKey()

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	records := []domain.SummaryRecord{
		{ID: "p1", Start: 0, End: 90, Title: "Story one", Category: "politics"},
		{ID: "p2", Start: 10, End: 50, Title: "Story two", Category: "economy"},
	}
	if err := c.Put(ctx, key, records); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(got) != 2 || got[0].Title != "Story one" || got[1].Category != "economy" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestFileCacheFileName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Put(context.Background(), testKey(), nil); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	want := filepath.Join(dir, "20220401-RUSSIA1-OpenAI-English-30-20.json")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected cache file %s: %v", want, err)
	}
}

func TestFileCachePrettyPrinted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	key := testKey()
	if err := c.Put(context.Background(), key, []domain.SummaryRecord{{ID: "p"}}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, key.String()+".json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Fatalf("expected indented JSON, got %q", string(data))
	}
}
