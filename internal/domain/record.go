package domain

// Judgment is a single human relevance assessment of a document for a query.
// Relevance 0 means not relevant, higher values are graded gains.
type Judgment struct {
	QueryID   string `json:"query_id" yaml:"query_id"`
	DocID     string `json:"doc_id" yaml:"doc_id"`
	Relevance int    `json:"relevance" yaml:"relevance"`
}

// PredictionRow is one ranked result of a run. The rank is implicit:
// rows of the same query keep the order in which the system returned them.
type PredictionRow struct {
	QueryID string `json:"query_id"`
	DocID   string `json:"doc_id"`
}
