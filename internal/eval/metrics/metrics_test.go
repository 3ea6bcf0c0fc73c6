package metrics

import (
	"fmt"
	"math"
	"testing"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func judge(grades map[string]int) Judged {
	rows := make([]domain.Judgment, 0, len(grades))
	for docID, rel := range grades {
		rows = append(rows, domain.Judgment{QueryID: "q", DocID: docID, Relevance: rel})
	}
	return NewJudged(rows)
}

func docs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("d%d", i+1)
	}
	return ids
}

func TestNewJudged(t *testing.T) {
	t.Run("duplicate judgments keep the highest grade", func(t *testing.T) {
		j := NewJudged([]domain.Judgment{
			{DocID: "a", Relevance: 1},
			{DocID: "a", Relevance: 3},
			{DocID: "a", Relevance: 0},
			{DocID: "b", Relevance: 0},
		})

		assert.Equal(t, 3, j.Grade("a"))
		assert.Equal(t, 1, j.RelevantCount())
		assert.Equal(t, 2, j.Duplicates())
		assert.False(t, j.IsRelevant("b"))
		assert.Zero(t, j.Grade("unjudged"))
	})

	t.Run("empty", func(t *testing.T) {
		j := NewJudged(nil)
		assert.Zero(t, j.RelevantCount())
	})
}

func TestPrecisionAtK(t *testing.T) {
	ids := docs(5)

	tests := []struct {
		name   string
		ranked []string
		grades map[string]int
		k      int
		want   float64
	}{
		{
			name:   "empty",
			ranked: nil,
			grades: map[string]int{},
			k:      5,
			want:   0,
		},
		{
			name:   "all relevant",
			ranked: ids[:3],
			grades: map[string]int{ids[0]: 2, ids[1]: 1, ids[2]: 3},
			k:      3,
			want:   1.0,
		},
		{
			name:   "half relevant",
			ranked: ids[:4],
			grades: map[string]int{ids[0]: 2, ids[2]: 1},
			k:      4,
			want:   0.5,
		},
		{
			name:   "zero grade is not relevant",
			ranked: ids[:3],
			grades: map[string]int{ids[0]: 0},
			k:      3,
			want:   0,
		},
		{
			name:   "k larger than ranked list",
			ranked: ids[:2],
			grades: map[string]int{ids[0]: 2, ids[1]: 2},
			k:      5,
			want:   0.4, // 2/5
		},
		{
			name:   "k=0",
			ranked: ids[:2],
			grades: map[string]int{ids[0]: 1},
			k:      0,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrecisionAtK(tt.ranked, judge(tt.grades), tt.k)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPrecisionCurve(t *testing.T) {
	ranked := []string{"d1", "d2", "d3"}
	j := judge(map[string]int{"d2": 1})

	curve := PrecisionCurve(ranked, j, MaxPrecisionK)
	require.Len(t, curve, MaxPrecisionK)

	assert.InDelta(t, 0.0, curve[0], 1e-9)
	assert.InDelta(t, 0.5, curve[1], 1e-9)
	assert.InDelta(t, 1.0/3.0, curve[2], 1e-9)
	assert.InDelta(t, 0.01, curve[99], 1e-9)

	for k := 1; k <= MaxPrecisionK; k++ {
		assert.InDelta(t, PrecisionAtK(ranked, j, k), curve[k-1], 1e-12, "P@%d", k)
	}
	for i := 3; i < MaxPrecisionK; i++ {
		assert.Less(t, curve[i], curve[i-1], "tail past the ranking must keep decreasing")
	}
}

func TestRecall(t *testing.T) {
	tests := []struct {
		name   string
		ranked []string
		grades map[string]int
		want   float64
	}{
		{
			name:   "no relevant in judgments",
			ranked: docs(3),
			grades: map[string]int{"d1": 0},
			want:   0,
		},
		{
			name:   "every relevant retrieved once",
			ranked: docs(3),
			grades: map[string]int{"d1": 2, "d3": 1},
			want:   1.0,
		},
		{
			name:   "partial recall",
			ranked: docs(2),
			grades: map[string]int{"d1": 2, "d2": 1, "d9": 3},
			want:   2.0 / 3.0,
		},
		{
			name:   "duplicates in the ranking exceed one",
			ranked: []string{"d1", "d1", "d2"},
			grades: map[string]int{"d1": 1},
			want:   2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recall(tt.ranked, judge(tt.grades))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAveragePrecision(t *testing.T) {
	ids := docs(5)

	tests := []struct {
		name   string
		ranked []string
		grades map[string]int
		want   float64
	}{
		{
			name:   "empty",
			ranked: nil,
			grades: map[string]int{},
			want:   0,
		},
		{
			name:   "perfect ranking",
			ranked: ids[:3],
			grades: map[string]int{ids[0]: 2, ids[1]: 1, ids[2]: 1},
			// Precision at each relevant rank: 1/1, 2/2, 3/3 = 1.0
			want: 1.0,
		},
		{
			name:   "relevant at positions 1 and 3",
			ranked: []string{ids[0], ids[2], ids[1]},
			grades: map[string]int{ids[0]: 2, ids[1]: 1},
			want:   (1.0 + 2.0/3.0) / 2.0,
		},
		{
			name:   "divides by relevant retrieved, not relevant judged",
			ranked: []string{ids[0], ids[1]},
			grades: map[string]int{ids[1]: 1, ids[3]: 1, ids[4]: 1},
			want:   0.5,
		},
		{
			name:   "no hits",
			ranked: ids[:2],
			grades: map[string]int{ids[4]: 1},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AveragePrecision(tt.ranked, judge(tt.grades))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestReciprocalRank(t *testing.T) {
	ids := docs(5)

	tests := []struct {
		name   string
		ranked []string
		grades map[string]int
		want   float64
	}{
		{
			name:   "no relevant docs",
			ranked: ids[:3],
			grades: map[string]int{},
			want:   0,
		},
		{
			name:   "first is relevant",
			ranked: ids[:3],
			grades: map[string]int{ids[0]: 2},
			want:   1.0,
		},
		{
			name:   "third is first relevant",
			ranked: ids[:5],
			grades: map[string]int{ids[2]: 1, ids[4]: 2},
			want:   1.0 / 3.0,
		},
		{
			name:   "judged but not relevant is skipped",
			ranked: ids[:3],
			grades: map[string]int{ids[0]: 0, ids[1]: 1},
			want:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReciprocalRank(tt.ranked, judge(tt.grades))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestNDCGAtK(t *testing.T) {
	ids := docs(5)

	tests := []struct {
		name   string
		ranked []string
		grades map[string]int
		k      int
		want   float64
	}{
		{
			name:   "empty ranked list",
			ranked: nil,
			grades: map[string]int{ids[0]: 3},
			k:      5,
			want:   0,
		},
		{
			name:   "empty judgments",
			ranked: ids[:3],
			grades: map[string]int{},
			k:      5,
			want:   0,
		},
		{
			name:   "perfect ranking",
			ranked: ids[:3],
			grades: map[string]int{ids[0]: 3, ids[1]: 2, ids[2]: 1},
			k:      3,
			want:   1.0,
		},
		{
			name:   "single highly relevant at top",
			ranked: ids[:3],
			grades: map[string]int{ids[0]: 3},
			k:      3,
			want:   1.0,
		},
		{
			name:   "cutoff beyond list length is truncated",
			ranked: ids[:3],
			grades: map[string]int{ids[1]: 1},
			k:      10,
			want:   1 / math.Log2(3),
		},
		{
			name:   "k=0 covers the whole ranking",
			ranked: ids[:3],
			grades: map[string]int{ids[2]: 1},
			k:      0,
			want:   0.5,
		},
		{
			name:   "ideal uses grades of ranked documents only",
			ranked: ids[:2],
			grades: map[string]int{ids[0]: 1, ids[4]: 3},
			k:      2,
			want:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NDCGAtK(tt.ranked, judge(tt.grades), tt.k)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("inverse ranking", func(t *testing.T) {
		got := NDCGAtK([]string{ids[2], ids[1], ids[0]}, judge(map[string]int{ids[0]: 3, ids[1]: 2, ids[2]: 1}), 3)
		assert.Less(t, got, 1.0)
		assert.Greater(t, got, 0.0)
	})
}

func TestCompute(t *testing.T) {
	t.Run("single relevant document at rank two", func(t *testing.T) {
		m, err := Compute("Q1", []string{"d1", "d2", "d3"}, judge(map[string]int{"d2": 1}))
		require.NoError(t, err)

		assert.Equal(t, "Q1", m.QueryID)
		assert.Equal(t, 3, m.NumPoints)
		assert.Equal(t, 1, m.MaxGoodPoints)
		assert.Equal(t, 1, m.NumGoodPoints)
		assert.InDelta(t, 1.0, m.Recall, 1e-9)
		assert.InDelta(t, 0.5, m.MRR, 1e-9)
		assert.InDelta(t, 0.5, m.AP, 1e-9)
		assert.InDelta(t, 0.0, m.PrecisionAt(1), 1e-9)
		assert.InDelta(t, 0.5, m.PrecisionAt(2), 1e-9)
		assert.InDelta(t, 1.0/3.0, m.PrecisionAt(3), 1e-9)
		assert.InDelta(t, 0.01, m.PrecisionAt(100), 1e-9)
		assert.InDelta(t, 1/math.Log2(3), m.NDCG10, 1e-9)
		assert.InDelta(t, m.NDCG10, m.NDCG20, 1e-12)
		assert.InDelta(t, m.NDCG10, m.NDCG, 1e-12)
	})

	t.Run("descending graded ranking of 25 documents", func(t *testing.T) {
		ranked := docs(25)
		grades := make(map[string]int, len(ranked))
		for i, id := range ranked {
			switch {
			case i < 5:
				grades[id] = 3
			case i < 12:
				grades[id] = 2
			case i < 20:
				grades[id] = 1
			}
		}

		m, err := Compute("Q3", ranked, judge(grades))
		require.NoError(t, err)

		assert.InDelta(t, 1.0, m.NDCG10, 1e-9)
		assert.InDelta(t, 1.0, m.NDCG20, 1e-9)
		assert.InDelta(t, 1.0, m.NDCG, 1e-9)
		assert.Equal(t, 20, m.MaxGoodPoints)
		assert.InDelta(t, 1.0, m.AP, 1e-9)
	})

	t.Run("every predicted document relevant", func(t *testing.T) {
		ranked := docs(4)
		m, err := Compute("q", ranked, judge(map[string]int{"d1": 1, "d2": 1, "d3": 1, "d4": 1}))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, m.AP, 1e-9)
		assert.InDelta(t, 1.0, m.MRR, 1e-9)
	})

	t.Run("no relevant judgments", func(t *testing.T) {
		_, err := Compute("Q2", docs(3), judge(map[string]int{"d1": 0}))
		assert.ErrorIs(t, err, ErrNoRelevant)
	})

	t.Run("nothing relevant retrieved", func(t *testing.T) {
		m, err := Compute("q", docs(3), judge(map[string]int{"x": 2}))
		require.NoError(t, err)
		assert.Zero(t, m.MRR)
		assert.Zero(t, m.AP)
		assert.Zero(t, m.NDCG)
		assert.Zero(t, m.Recall)
	})
}

func TestQueryMetrics_PrecisionAtOutOfRange(t *testing.T) {
	var m QueryMetrics
	m.Precision[0] = 1
	assert.Equal(t, 1.0, m.PrecisionAt(1))
	assert.Zero(t, m.PrecisionAt(0))
	assert.Zero(t, m.PrecisionAt(101))
}
