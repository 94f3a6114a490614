package segment

import (
	"strings"
	"testing"

	"NewsSummary/internal/domain"
)

func TestSplitWindows(t *testing.T) {
	t.Parallel()

	lines := []domain.TranscriptLine{
		{Text: "alpha", Start: 0, End: 10},
		{Text: "bravo", Start: 10, End: 40},
		{Text: "charlie", Start: 40, End: 65},
	}

	chunks := Split("NTV_20220401_180000_News", lines, 30)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	if chunks[0].Start != 0 || chunks[0].End != 30 {
		t.Fatalf("unexpected first window: [%v, %v]", chunks[0].Start, chunks[0].End)
	}
	if chunks[0].Text != "alpha bravo" {
		t.Fatalf("unexpected first text: %q", chunks[0].Text)
	}

	// The 10-40 line straddles the boundary and lands in both windows.
	if chunks[1].Text != "bravo charlie" {
		t.Fatalf("unexpected second text: %q", chunks[1].Text)
	}

	// Last window is clamped to the transcript end.
	if chunks[2].Start != 60 || chunks[2].End != 65 {
		t.Fatalf("unexpected last window: [%v, %v]", chunks[2].Start, chunks[2].End)
	}
	if chunks[2].Text != "charlie" {
		t.Fatalf("unexpected last text: %q", chunks[2].Text)
	}

	for _, c := range chunks {
		if c.ProgramID != "NTV_20220401_180000_News" {
			t.Fatalf("unexpected program id: %s", c.ProgramID)
		}
		if c.Start >= c.End {
			t.Fatalf("degenerate window: [%v, %v]", c.Start, c.End)
		}
	}
}

func TestSplitSingleChunk(t *testing.T) {
	t.Parallel()

	lines := []domain.TranscriptLine{
		{Text: "one", Start: 0, End: 5},
		{Text: "two", Start: 5, End: 12},
	}

	chunks := Split("p", lines, 600)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "one two" {
		t.Fatalf("unexpected text: %q", chunks[0].Text)
	}
	if chunks[0].Start != 0 || chunks[0].End != 12 {
		t.Fatalf("unexpected span: [%v, %v]", chunks[0].Start, chunks[0].End)
	}
}

func TestSplitAnchorsAtFirstLine(t *testing.T) {
	t.Parallel()

	lines := []domain.TranscriptLine{
		{Text: "late start", Start: 100, End: 110},
		{Text: "tail", Start: 110, End: 125},
	}

	chunks := Split("p", lines, 30)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Start != 100 || chunks[0].End != 125 {
		t.Fatalf("unexpected span: [%v, %v]", chunks[0].Start, chunks[0].End)
	}
}

func TestSplitEmpty(t *testing.T) {
	t.Parallel()

	if chunks := Split("p", nil, 30); chunks != nil {
		t.Fatalf("expected nil, got %v", chunks)
	}
	if chunks := Split("p", []domain.TranscriptLine{{Text: "x", Start: 0, End: 1}}, 0); chunks != nil {
		t.Fatalf("expected nil for zero chunk size, got %v", chunks)
	}
}

func TestSplitEveryLineCovered(t *testing.T) {
	t.Parallel()

	lines := []domain.TranscriptLine{
		{Text: "a", Start: 0, End: 3},
		{Text: "b", Start: 3, End: 31},
		{Text: "c", Start: 31, End: 59},
		{Text: "d", Start: 59, End: 61},
	}

	chunks := Split("p", lines, 30)

	covered := map[string]bool{}
	for _, c := range chunks {
		for _, word := range strings.Fields(c.Text) {
			covered[word] = true
		}
	}
	for _, word := range []string{"a", "b", "c", "d"} {
		if !covered[word] {
			t.Fatalf("line %q not covered by any chunk", word)
		}
	}
}
