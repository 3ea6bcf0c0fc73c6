package report

import (
	"errors"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/metrics"
)

// ErrNoEvaluatedQueries is returned when every query was excluded and no
// mean can be taken.
var ErrNoEvaluatedQueries = errors.New("no evaluated queries: every query lacks relevant judgments")

func Summarize(queries []metrics.QueryMetrics) (SummaryMetrics, error) {
	if len(queries) == 0 {
		return SummaryMetrics{}, ErrNoEvaluatedQueries
	}

	agg := SummaryMetrics{QueryCount: len(queries)}

	for _, q := range queries {
		agg.NumPoints += q.NumPoints
		agg.MaxGoodPoints += q.MaxGoodPoints
		agg.NumGoodPoints += q.NumGoodPoints
		agg.MRR += q.MRR
		agg.Recall += q.Recall
		agg.MAP += q.AP
		agg.NDCG10 += q.NDCG10
		agg.NDCG20 += q.NDCG20
		agg.NDCG += q.NDCG

		for k := range agg.Precision {
			agg.Precision[k] += q.Precision[k]
		}
	}

	n := float64(len(queries))
	agg.MRR /= n
	agg.Recall /= n
	agg.MAP /= n
	agg.NDCG10 /= n
	agg.NDCG20 /= n
	agg.NDCG /= n

	for k := range agg.Precision {
		agg.Precision[k] /= n
	}

	return agg, nil
}
