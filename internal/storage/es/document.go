package es

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const (
	kindQuery   = "query"
	kindSummary = "summary"
)

// MetricDocument is the indexed form of one query result or of a run summary.
// Dashboards filter on run_name and kind.
type MetricDocument struct {
	ID            string    `json:"id"`
	RunID         string    `json:"run_id"`
	RunName       string    `json:"run_name"`
	Kind          string    `json:"kind"`
	QueryID       string    `json:"query_id,omitempty"`
	QueryCount    int       `json:"query_count,omitempty"`
	NumPoints     int       `json:"num_points"`
	MaxGoodPoints int       `json:"max_good_points"`
	NumGoodPoints int       `json:"num_good_points"`
	Recall        float64   `json:"recall"`
	MRR           float64   `json:"mrr"`
	AP            float64   `json:"ap"`
	NDCG10        float64   `json:"ndcg_10"`
	NDCG20        float64   `json:"ndcg_20"`
	NDCG          float64   `json:"ndcg"`
	P1            float64   `json:"p_1"`
	P5            float64   `json:"p_5"`
	P10           float64   `json:"p_10"`
	P20           float64   `json:"p_20"`
	P100          float64   `json:"p_100"`
	CreatedAt     time.Time `json:"created_at"`
	IndexedAt     time.Time `json:"indexed_at"`
}

func queryDocument(r *report.Report, m metrics.QueryMetrics, now time.Time) MetricDocument {
	return MetricDocument{
		ID:            fmt.Sprintf("%s-q-%s", r.RunID, m.QueryID),
		RunID:         r.RunID.String(),
		RunName:       r.RunName,
		Kind:          kindQuery,
		QueryID:       m.QueryID,
		NumPoints:     m.NumPoints,
		MaxGoodPoints: m.MaxGoodPoints,
		NumGoodPoints: m.NumGoodPoints,
		Recall:        m.Recall,
		MRR:           m.MRR,
		AP:            m.AP,
		NDCG10:        m.NDCG10,
		NDCG20:        m.NDCG20,
		NDCG:          m.NDCG,
		P1:            m.PrecisionAt(1),
		P5:            m.PrecisionAt(5),
		P10:           m.PrecisionAt(10),
		P20:           m.PrecisionAt(20),
		P100:          m.PrecisionAt(100),
		CreatedAt:     r.CreatedAt,
		IndexedAt:     now,
	}
}

func summaryDocument(r *report.Report, s report.SummaryMetrics, now time.Time) MetricDocument {
	return MetricDocument{
		ID:            fmt.Sprintf("%s-summary", r.RunID),
		RunID:         r.RunID.String(),
		RunName:       r.RunName,
		Kind:          kindSummary,
		QueryCount:    s.QueryCount,
		NumPoints:     s.NumPoints,
		MaxGoodPoints: s.MaxGoodPoints,
		NumGoodPoints: s.NumGoodPoints,
		Recall:        s.Recall,
		MRR:           s.MRR,
		AP:            s.MAP,
		NDCG10:        s.NDCG10,
		NDCG20:        s.NDCG20,
		NDCG:          s.NDCG,
		P1:            s.PrecisionAt(1),
		P5:            s.PrecisionAt(5),
		P10:           s.PrecisionAt(10),
		P20:           s.PrecisionAt(20),
		P100:          s.PrecisionAt(100),
		CreatedAt:     r.CreatedAt,
		IndexedAt:     now,
	}
}

func buildMapping() types.TypeMapping {
	props := map[string]types.Property{
		"id":              types.NewKeywordProperty(),
		"run_id":          types.NewKeywordProperty(),
		"run_name":        types.NewKeywordProperty(),
		"kind":            types.NewKeywordProperty(),
		"query_id":        types.NewKeywordProperty(),
		"query_count":     types.NewIntegerNumberProperty(),
		"num_points":      types.NewIntegerNumberProperty(),
		"max_good_points": types.NewIntegerNumberProperty(),
		"num_good_points": types.NewIntegerNumberProperty(),
		"created_at":      types.NewDateProperty(),
		"indexed_at":      types.NewDateProperty(),
	}
	for _, name := range []string{"recall", "mrr", "ap", "ndcg_10", "ndcg_20", "ndcg", "p_1", "p_5", "p_10", "p_20", "p_100"} {
		props[name] = types.NewDoubleNumberProperty()
	}
	return types.TypeMapping{Properties: props}
}
