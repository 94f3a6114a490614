package cache

import (
	"strings"
	"testing"
)

func TestPostgresBuildGet(t *testing.T) {
	t.Parallel()

	c := NewPostgresCache(nil)
	query, args, err := c.buildGet(testKey())
	if err != nil {
		t.Fatalf("buildGet error: %v", err)
	}

	if !strings.HasPrefix(query, "SELECT records FROM day_summaries WHERE") {
		t.Fatalf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "$6") {
		t.Fatalf("expected dollar placeholders: %s", query)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d: %v", len(args), args)
	}
}

func TestPostgresBuildPut(t *testing.T) {
	t.Parallel()

	c := NewPostgresCache(nil)
	query, args, err := c.buildPut(testKey(), []byte(`[]`))
	if err != nil {
		t.Fatalf("buildPut error: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO day_summaries") {
		t.Fatalf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (date, channel, model, language, chunk_size, cluster_count)") {
		t.Fatalf("missing upsert clause: %s", query)
	}
	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d: %v", len(args), args)
	}
}
