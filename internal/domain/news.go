package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Language selects between the translated and as-broadcast transcript tracks.
type Language string

const (
	LanguageEnglish  Language = "English"
	LanguageOriginal Language = "Original"
)

// captureExpr extracts the capture timestamp embedded in program identifiers,
// e.g. "RUSSIA1_20220324_143000_Vesti" -> "20220324_143000".
var captureExpr = regexp.MustCompile(`^.+_(\d{8}_\d{6})`)

// ProgramRecord describes one broadcast in a channel's day inventory.
// Immutable; produced by the inventory collaborator.
type ProgramRecord struct {
	ID    string
	Title string
	// Start/End bound the inventoried portion in seconds when the archive only
	// holds part of the program. Both zero means the whole program.
	Start float64
	End   float64
}

// AirTime resolves the wall-clock air time of a second offset into the program.
func (p ProgramRecord) AirTime(offset float64) (time.Time, error) {
	m := captureExpr.FindStringSubmatch(p.ID)
	if m == nil {
		return time.Time{}, fmt.Errorf("program id %q carries no capture timestamp", p.ID)
	}
	t, err := time.Parse("20060102_150405", m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse capture timestamp: %w", err)
	}
	return t.Add(time.Duration(offset * float64(time.Second))), nil
}

// TranscriptLine is one time-coded caption of a program transcript.
// Sequences are ordered ascending by Start; chunk boundaries depend on it.
type TranscriptLine struct {
	Text  string
	Start float64
	End   float64
}

// Chunk is a fixed-duration slice of one program's transcript. Derived, never
// mutated after creation. Start < End always holds; the last chunk of a program
// may be shorter than the configured chunk size.
type Chunk struct {
	ProgramID string
	Start     float64
	End       float64
	Text      string
}

// Vector is an embedding with fixed dimensionality within one pipeline run.
// Lifetime is tied to the run; vectors are never persisted.
type Vector []float64

// CandidateDocument is the merged text and time span of one cluster, the unit
// handed to the summarization oracle.
type CandidateDocument struct {
	ProgramID string
	Start     float64
	End       float64
	Text      string
}

// SummaryRecord is the oracle's structured summary of one candidate document.
// Immutable once produced; persisted verbatim to the result cache.
type SummaryRecord struct {
	ID          string  `json:"id"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Transcript  string  `json:"transcript"`
}

// CacheKey addresses one day run in the result cache. Two runs with any field
// differing are distinct cache entries.
type CacheKey struct {
	Date         string // YYYYMMDD
	Channel      string
	Model        string
	Language     Language
	ChunkSize    int
	ClusterCount int
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s-%s-%s-%s-%d-%d",
		k.Date, k.Channel, k.Model, k.Language, k.ChunkSize, k.ClusterCount)
}
