package report

import (
	"testing"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryMetrics(id string, numPoints, maxGood, numGood int, score float64) metrics.QueryMetrics {
	m := metrics.QueryMetrics{
		QueryID:       id,
		NumPoints:     numPoints,
		MaxGoodPoints: maxGood,
		NumGoodPoints: numGood,
		Recall:        score,
		MRR:           score,
		AP:            score,
		NDCG10:        score,
		NDCG20:        score,
		NDCG:          score,
	}
	for k := range m.Precision {
		m.Precision[k] = score / float64(k+1)
	}
	return m
}

func TestSummarize(t *testing.T) {
	t.Run("sums counts and averages scores", func(t *testing.T) {
		queries := []metrics.QueryMetrics{
			queryMetrics("1", 10, 2, 1, 0.2),
			queryMetrics("2", 5, 3, 4, 0.6),
		}

		s, err := Summarize(queries)
		require.NoError(t, err)

		assert.Equal(t, 2, s.QueryCount)
		assert.Equal(t, 15, s.NumPoints)
		assert.Equal(t, 5, s.MaxGoodPoints)
		assert.Equal(t, 5, s.NumGoodPoints)
		assert.InDelta(t, 0.4, s.Recall, 1e-9)
		assert.InDelta(t, 0.4, s.MRR, 1e-9)
		assert.InDelta(t, 0.4, s.MAP, 1e-9)
		assert.InDelta(t, 0.4, s.NDCG10, 1e-9)
		assert.InDelta(t, 0.4, s.NDCG20, 1e-9)
		assert.InDelta(t, 0.4, s.NDCG, 1e-9)
		assert.InDelta(t, 0.4, s.PrecisionAt(1), 1e-9)
		assert.InDelta(t, 0.004, s.PrecisionAt(100), 1e-9)
	})

	t.Run("single query summary equals the query", func(t *testing.T) {
		q := queryMetrics("7", 3, 1, 1, 0.5)
		s, err := Summarize([]metrics.QueryMetrics{q})
		require.NoError(t, err)
		assert.Equal(t, q.Precision, s.Precision)
		assert.InDelta(t, q.AP, s.MAP, 1e-12)
	})

	t.Run("no evaluated queries is an error", func(t *testing.T) {
		_, err := Summarize(nil)
		assert.ErrorIs(t, err, ErrNoEvaluatedQueries)
	})
}

func TestAssemble(t *testing.T) {
	queries := []metrics.QueryMetrics{queryMetrics("1", 3, 1, 1, 1), queryMetrics("3", 3, 1, 1, 1)}
	summary, err := Summarize(queries)
	require.NoError(t, err)

	t.Run("advisory first and summary last", func(t *testing.T) {
		entries := Assemble(queries, summary, []string{"2"})
		require.Len(t, entries, 4)
		assert.Equal(t, KindAdvisory, entries[0].Kind)
		assert.Equal(t, []string{"2"}, entries[0].Advisory)
		assert.Equal(t, KindQuery, entries[1].Kind)
		assert.Equal(t, "1", entries[1].Query.QueryID)
		assert.Equal(t, KindQuery, entries[2].Kind)
		assert.Equal(t, KindSummary, entries[3].Kind)
	})

	t.Run("no advisory without exclusions", func(t *testing.T) {
		entries := Assemble(queries, summary, nil)
		require.Len(t, entries, 3)
		assert.Equal(t, KindQuery, entries[0].Kind)
	})

	t.Run("report accessors", func(t *testing.T) {
		r := &Report{Entries: Assemble(queries, summary, []string{"2", "5"})}
		assert.Len(t, r.Queries(), 2)
		assert.Equal(t, []string{"2", "5"}, r.Excluded())
		assert.Equal(t, 2, r.Summary().QueryCount)
	})
}
