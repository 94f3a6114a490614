package srt

import (
	"fmt"
	"strconv"
	"strings"

	"NewsSummary/internal/domain"
)

// Parse converts SRT subtitle text into time-coded transcript lines.
// Each cue becomes one line; multi-line cue text is joined with spaces.
// Cues with malformed timestamps are skipped.
func Parse(text string) []domain.TranscriptLine {
	if text == "" {
		return nil
	}

	var (
		out     []domain.TranscriptLine
		current *domain.TranscriptLine
	)

	flush := func() {
		if current != nil && current.Text != "" {
			out = append(out, *current)
		}
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if line == "" {
			flush()
			continue
		}

		// Sequence numbers separate cues.
		if isDigitOnly(line) {
			flush()
			continue
		}

		if strings.Contains(line, "-->") {
			flush()
			parts := strings.Split(line, "-->")
			if len(parts) != 2 {
				continue
			}
			start, sErr := parseTimestamp(strings.TrimSpace(parts[0]))
			end, eErr := parseTimestamp(strings.TrimSpace(parts[1]))
			if sErr != nil || eErr != nil {
				continue
			}
			current = &domain.TranscriptLine{Start: start, End: end}
			continue
		}

		if current == nil {
			continue
		}
		if current.Text != "" {
			current.Text += " "
		}
		current.Text += line
	}
	flush()

	return out
}

// parseTimestamp converts "HH:MM:SS,mmm" (or "HH:MM:SS.mmm") to seconds.
func parseTimestamp(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
