package group

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
)

// Group is the ranked prediction list of one query with its judgments.
type Group struct {
	QueryID   string
	DocIDs    []string
	Judgments []domain.Judgment
}

// ByQuery partitions predictions by query id. Rows inside a group keep their
// input order, which is the ranking. Groups are returned in ascending query id
// order; ids that both parse as integers compare numerically.
func ByQuery(predictions []domain.PredictionRow, judgments []domain.Judgment) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, p := range predictions {
		i, ok := index[p.QueryID]
		if !ok {
			i = len(groups)
			index[p.QueryID] = i
			groups = append(groups, Group{QueryID: p.QueryID})
		}
		groups[i].DocIDs = append(groups[i].DocIDs, p.DocID)
	}

	for _, j := range judgments {
		if i, ok := index[j.QueryID]; ok {
			groups[i].Judgments = append(groups[i].Judgments, j)
		}
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return CompareIDs(a.QueryID, b.QueryID)
	})

	return groups
}

// CompareIDs orders query ids numerically when both are integers and
// lexically otherwise. Integers sort before non-integers.
func CompareIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(ai, bi)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
