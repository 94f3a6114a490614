package telegram

import (
	"strings"
	"testing"

	"NewsSummary/internal/domain"
)

func TestBuildDigest(t *testing.T) {
	t.Parallel()

	records := []domain.SummaryRecord{
		{Title: "Ceasefire talks", Category: "politics"},
		{Title: "Markets rally"},
	}

	digest := BuildDigest("RUSSIA1", "20220401", records)

	if !strings.HasPrefix(digest, "*RUSSIA1 20220401*") {
		t.Fatalf("unexpected header: %q", digest)
	}
	if !strings.Contains(digest, "- Ceasefire talks _(politics)_") {
		t.Fatalf("missing categorized entry: %q", digest)
	}
	if !strings.Contains(digest, "- Markets rally\n") {
		t.Fatalf("missing plain entry: %q", digest)
	}
}

func TestBuildDigestEmpty(t *testing.T) {
	t.Parallel()

	if digest := BuildDigest("NTV", "20220401", nil); digest != "" {
		t.Fatalf("expected empty digest, got %q", digest)
	}
}
