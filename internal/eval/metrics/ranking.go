package metrics

// AveragePrecision averages the precision at every rank holding a relevant
// document. The denominator is the number of relevant documents actually
// retrieved, not the number judged relevant; historical results depend on it.
func AveragePrecision(ranked []string, judged Judged) float64 {
	var sumPrecision float64
	var relevantSeen int

	for i, docID := range ranked {
		if judged.IsRelevant(docID) {
			relevantSeen++
			sumPrecision += float64(relevantSeen) / float64(i+1)
		}
	}

	if relevantSeen == 0 {
		return 0
	}

	return sumPrecision / float64(relevantSeen)
}

// ReciprocalRank returns 1/rank of the first relevant document.
func ReciprocalRank(ranked []string, judged Judged) float64 {
	for i, docID := range ranked {
		if judged.IsRelevant(docID) {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}
