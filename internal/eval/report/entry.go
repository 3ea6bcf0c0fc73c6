package report

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/metrics"
)

type Kind int

const (
	KindAdvisory Kind = iota + 1
	KindQuery
	KindSummary
)

func (k Kind) String() string {
	switch k {
	case KindAdvisory:
		return "advisory"
	case KindQuery:
		return "query"
	case KindSummary:
		return "summary"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is one element of the evaluation output. Exactly one payload is set,
// the one matching Kind.
type Entry struct {
	Kind     Kind
	Advisory []string // excluded query ids
	Query    *metrics.QueryMetrics
	Summary  *SummaryMetrics
}

func AdvisoryEntry(excluded []string) Entry {
	return Entry{Kind: KindAdvisory, Advisory: excluded}
}

func QueryEntry(m metrics.QueryMetrics) Entry {
	return Entry{Kind: KindQuery, Query: &m}
}

func SummaryEntry(s SummaryMetrics) Entry {
	return Entry{Kind: KindSummary, Summary: &s}
}

// AdvisoryText is the human readable notice naming excluded queries. Integer
// ids are listed bare, other ids quoted, e.g. [2, 'Q7'].
func AdvisoryText(excluded []string) string {
	ids := make([]string, len(excluded))
	for i, id := range excluded {
		if _, ok := integerID(id); ok {
			ids[i] = id
			continue
		}
		ids[i] = quoteID(id)
	}
	return fmt.Sprintf("query id: [%s] don't evaluate", strings.Join(ids, ", "))
}

func quoteID(id string) string {
	if strings.Contains(id, "'") && !strings.Contains(id, `"`) {
		return `"` + strings.ReplaceAll(id, `\`, `\\`) + `"`
	}
	escaped := strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(id)
	return "'" + escaped + "'"
}

// Assemble orders the output: an advisory first when queries were excluded,
// then one entry per evaluated query, then the summary.
func Assemble(queries []metrics.QueryMetrics, summary SummaryMetrics, excluded []string) []Entry {
	entries := make([]Entry, 0, len(queries)+2)

	if len(excluded) > 0 {
		entries = append(entries, AdvisoryEntry(excluded))
	}
	for _, q := range queries {
		entries = append(entries, QueryEntry(q))
	}
	entries = append(entries, SummaryEntry(summary))

	return entries
}
