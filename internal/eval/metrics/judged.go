package metrics

import "github.com/DjordjeVuckovic/ir-eval/internal/domain"

// Judged holds the resolved judgments of one query: a single relevance
// grade per document. When a document was judged more than once the highest
// grade wins.
type Judged struct {
	grades     map[string]int
	relevant   int
	duplicates int
}

func NewJudged(judgments []domain.Judgment) Judged {
	j := Judged{grades: make(map[string]int, len(judgments))}

	for _, row := range judgments {
		prev, seen := j.grades[row.DocID]
		if seen {
			j.duplicates++
			if row.Relevance <= prev {
				continue
			}
		}
		j.grades[row.DocID] = row.Relevance
	}

	for _, g := range j.grades {
		if g > 0 {
			j.relevant++
		}
	}

	return j
}

// Grade returns the judged relevance of docID, 0 for unjudged documents.
func (j Judged) Grade(docID string) int {
	return j.grades[docID]
}

func (j Judged) IsRelevant(docID string) bool {
	return j.grades[docID] > 0
}

// RelevantCount is the number of distinct documents with relevance > 0.
func (j Judged) RelevantCount() int {
	return j.relevant
}

// Duplicates is the number of judgment rows that repeated an already judged document.
func (j Judged) Duplicates() int {
	return j.duplicates
}
