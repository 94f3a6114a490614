package docselect

import (
	"sort"
	"strings"

	"NewsSummary/internal/domain"
)

// Merge joins the chunks of each cluster into one candidate document.
// Documents come back ordered by ascending cluster id; empty clusters are
// dropped. Members inside a document are ordered by program id, then start,
// so cross-program clusters read chronologically (program ids embed the
// capture timestamp). Returns nil when the assignment does not match.
func Merge(chunks []domain.Chunk, assignment []int) []domain.CandidateDocument {
	if len(chunks) != len(assignment) {
		return nil
	}
	if len(chunks) == 0 {
		return nil
	}

	groups := map[int][]domain.Chunk{}
	for i, c := range chunks {
		groups[assignment[i]] = append(groups[assignment[i]], c)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	docs := make([]domain.CandidateDocument, 0, len(ids))
	for _, id := range ids {
		members := groups[id]
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].ProgramID != members[j].ProgramID {
				return members[i].ProgramID < members[j].ProgramID
			}
			return members[i].Start < members[j].Start
		})

		doc := domain.CandidateDocument{
			ProgramID: members[0].ProgramID,
			Start:     members[0].Start,
			End:       members[0].End,
		}
		texts := make([]string, 0, len(members))
		for _, m := range members {
			if m.Start < doc.Start {
				doc.Start = m.Start
			}
			if m.End > doc.End {
				doc.End = m.End
			}
			texts = append(texts, m.Text)
		}
		doc.Text = strings.Join(texts, "\n\n")
		docs = append(docs, doc)
	}

	return docs
}
