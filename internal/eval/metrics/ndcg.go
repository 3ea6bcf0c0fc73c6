package metrics

import (
	"math"
	"slices"
)

// NDCGAtK computes Normalized Discounted Cumulative Gain at rank K.
// Uses graded relevance: DCG = sum((2^rel - 1) / log2(i+2)) for i in 0..K-1.
// The ideal ordering is the ranked list's own grades sorted descending.
// K larger than the ranking is truncated to its length; K <= 0 means the
// whole ranking.
func NDCGAtK(ranked []string, judged Judged, k int) float64 {
	return newGainCurve(ranked, judged).ndcgAt(k)
}

type gainCurve struct {
	dcg  []float64
	idcg []float64
}

func newGainCurve(ranked []string, judged Judged) gainCurve {
	grades := make([]int, len(ranked))
	for i, docID := range ranked {
		grades[i] = judged.Grade(docID)
	}

	ideal := slices.Clone(grades)
	slices.SortFunc(ideal, func(a, b int) int { return b - a })

	return gainCurve{
		dcg:  cumulativeDCG(grades),
		idcg: cumulativeDCG(ideal),
	}
}

func (c gainCurve) ndcgAt(k int) float64 {
	n := len(c.dcg)
	if n == 0 {
		return 0
	}
	if k <= 0 || k > n {
		k = n
	}

	idcg := c.idcg[k-1]
	if idcg == 0 {
		return 0
	}

	return c.dcg[k-1] / idcg
}

func cumulativeDCG(grades []int) []float64 {
	res := make([]float64, len(grades))
	var dcg float64

	for i, rel := range grades {
		dcg += (math.Exp2(float64(rel)) - 1) / math.Log2(float64(i+2))
		res[i] = dcg
	}

	return res
}
