package report

import (
	"time"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/metrics"
	"github.com/google/uuid"
)

// SummaryMetrics aggregates the evaluated queries of one run. Counts are
// summed, every rate is an arithmetic mean over QueryCount queries.
type SummaryMetrics struct {
	QueryCount    int
	NumPoints     int
	MaxGoodPoints int
	NumGoodPoints int
	Recall        float64
	MRR           float64
	MAP           float64
	NDCG10        float64
	NDCG20        float64
	NDCG          float64
	Precision     [metrics.MaxPrecisionK]float64
}

func (s SummaryMetrics) PrecisionAt(k int) float64 {
	if k < 1 || k > metrics.MaxPrecisionK {
		return 0
	}
	return s.Precision[k-1]
}

// Report is the outcome of evaluating one run.
type Report struct {
	RunID     uuid.UUID
	RunName   string
	CreatedAt time.Time
	Entries   []Entry
}

func (r *Report) Queries() []metrics.QueryMetrics {
	var out []metrics.QueryMetrics
	for _, e := range r.Entries {
		if e.Kind == KindQuery {
			out = append(out, *e.Query)
		}
	}
	return out
}

func (r *Report) Summary() SummaryMetrics {
	for _, e := range r.Entries {
		if e.Kind == KindSummary {
			return *e.Summary
		}
	}
	return SummaryMetrics{}
}

func (r *Report) Excluded() []string {
	for _, e := range r.Entries {
		if e.Kind == KindAdvisory {
			return e.Advisory
		}
	}
	return nil
}
