package metrics

import "errors"

const (
	MaxPrecisionK = 100
	NDCGCutoff10  = 10
	NDCGCutoff20  = 20
)

// ErrNoRelevant marks a query that cannot be scored because none of its
// judgments is relevant. Such queries are excluded, not failed.
var ErrNoRelevant = errors.New("query has no relevant judgments")

type QueryMetrics struct {
	QueryID       string
	NumPoints     int // length of the ranking
	MaxGoodPoints int // relevant documents judged
	NumGoodPoints int // ranked positions holding a relevant document
	Recall        float64
	MRR           float64
	AP            float64
	NDCG10        float64
	NDCG20        float64
	NDCG          float64
	Precision     [MaxPrecisionK]float64 // Precision[k-1] = P@k
}

// PrecisionAt returns P@k for k in 1..MaxPrecisionK, 0 otherwise.
func (m QueryMetrics) PrecisionAt(k int) float64 {
	if k < 1 || k > MaxPrecisionK {
		return 0
	}
	return m.Precision[k-1]
}

func Compute(queryID string, ranked []string, judged Judged) (QueryMetrics, error) {
	if judged.RelevantCount() == 0 {
		return QueryMetrics{}, ErrNoRelevant
	}

	gains := newGainCurve(ranked, judged)

	m := QueryMetrics{
		QueryID:       queryID,
		NumPoints:     len(ranked),
		MaxGoodPoints: judged.RelevantCount(),
		NumGoodPoints: NumGoodPoints(ranked, judged),
		Recall:        Recall(ranked, judged),
		MRR:           ReciprocalRank(ranked, judged),
		AP:            AveragePrecision(ranked, judged),
		NDCG10:        gains.ndcgAt(NDCGCutoff10),
		NDCG20:        gains.ndcgAt(NDCGCutoff20),
		NDCG:          gains.ndcgAt(0),
	}
	copy(m.Precision[:], PrecisionCurve(ranked, judged, MaxPrecisionK))

	return m, nil
}
