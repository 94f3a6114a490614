package segment

import (
	"strings"

	"NewsSummary/internal/domain"
)

// Split partitions a program transcript into fixed-duration chunks. Windows are
// anchored at the first line's start; a line belongs to every window it
// overlaps, and the final chunk is clamped to the transcript end. Lines keep
// their original order inside each chunk.
func Split(programID string, lines []domain.TranscriptLine, chunkSize float64) []domain.Chunk {
	if len(lines) == 0 || chunkSize <= 0 {
		return nil
	}

	anchor := lines[0].Start
	transcriptEnd := anchor
	for _, line := range lines {
		if line.End > transcriptEnd {
			transcriptEnd = line.End
		}
	}

	var chunks []domain.Chunk
	for winStart := anchor; winStart < transcriptEnd; winStart += chunkSize {
		winEnd := winStart + chunkSize

		var parts []string
		for _, line := range lines {
			if line.Start < winEnd && line.End > winStart {
				parts = append(parts, line.Text)
			}
		}
		if len(parts) == 0 {
			continue
		}

		end := winEnd
		if end > transcriptEnd {
			end = transcriptEnd
		}

		chunks = append(chunks, domain.Chunk{
			ProgramID: programID,
			Start:     winStart,
			End:       end,
			Text:      strings.Join(parts, " "),
		})
	}

	return chunks
}
