package domain

import (
	"testing"
	"time"
)

func TestAirTime(t *testing.T) {
	t.Parallel()

	p := ProgramRecord{ID: "RUSSIA1_20220324_143000_Vesti"}
	got, err := p.AirTime(90)
	if err != nil {
		t.Fatalf("AirTime error: %v", err)
	}

	want := time.Date(2022, time.March, 24, 14, 31, 30, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAirTimeNoTimestamp(t *testing.T) {
	t.Parallel()

	p := ProgramRecord{ID: "no-timestamp-here"}
	if _, err := p.AirTime(0); err == nil {
		t.Fatal("expected error for id without capture timestamp")
	}
}

func TestCacheKeyString(t *testing.T) {
	t.Parallel()

	key := CacheKey{
		Date:         "20220401",
		Channel:      "NTV",
		Model:        "Gemini",
		Language:     LanguageOriginal,
		ChunkSize:    45,
		ClusterCount: 15,
	}
	want := "20220401-NTV-Gemini-Original-45-15"
	if got := key.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
