package judgment

// UngradedGrade marks a document that was pooled for assessment but not judged yet.
const UngradedGrade = -1

type GradedDoc struct {
	DocID string `yaml:"doc_id"`
	Grade int    `yaml:"grade"`
}

type JudgmentFile struct {
	Strategy string          `yaml:"strategy"`
	Queries  []JudgmentEntry `yaml:"queries"`
}

type JudgmentEntry struct {
	QueryID string      `yaml:"query_id"`
	Docs    []GradedDoc `yaml:"docs"`
}
