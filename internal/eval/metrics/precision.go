package metrics

// NumGoodPoints counts ranked positions holding a relevant document.
// A relevant document retrieved twice is counted twice.
func NumGoodPoints(ranked []string, judged Judged) int {
	var hits int
	for _, docID := range ranked {
		if judged.IsRelevant(docID) {
			hits++
		}
	}
	return hits
}

// Recall is NumGoodPoints over the number of relevant documents. It is not
// clamped, duplicates in the ranking can push it above 1.
func Recall(ranked []string, judged Judged) float64 {
	total := judged.RelevantCount()
	if total == 0 {
		return 0
	}
	return float64(NumGoodPoints(ranked, judged)) / float64(total)
}

// PrecisionAtK computes the fraction of the top K positions holding a
// relevant document. Positions past the end of the ranking count as misses,
// so the value keeps dropping for K > len(ranked).
func PrecisionAtK(ranked []string, judged Judged, k int) float64 {
	if k <= 0 {
		return 0
	}

	n := min(k, len(ranked))
	var relevant int

	for i := 0; i < n; i++ {
		if judged.IsRelevant(ranked[i]) {
			relevant++
		}
	}

	return float64(relevant) / float64(k)
}

// PrecisionCurve returns P@1..P@maxK in one pass over the ranking.
func PrecisionCurve(ranked []string, judged Judged, maxK int) []float64 {
	curve := make([]float64, maxK)
	var relevant int

	for i := 0; i < maxK; i++ {
		if i < len(ranked) && judged.IsRelevant(ranked[i]) {
			relevant++
		}
		curve[i] = float64(relevant) / float64(i+1)
	}

	return curve
}
