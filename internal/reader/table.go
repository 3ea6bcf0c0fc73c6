package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ir-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
)

const (
	ColumnQueryID   = "query_ids"
	ColumnDocID     = "doc_ids"
	ColumnRelevance = "relevance"
)

// ParsePredictions maps rows to predictions, keeping row order.
func ParsePredictions(t *Table) ([]domain.PredictionRow, error) {
	if err := requireColumns(t, ColumnQueryID, ColumnDocID); err != nil {
		return nil, err
	}

	preds := make([]domain.PredictionRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		queryID, docID, err := ids(row)
		if err != nil {
			return nil, err
		}
		preds = append(preds, domain.PredictionRow{QueryID: queryID, DocID: docID})
	}

	return preds, nil
}

func ParseJudgments(t *Table) ([]domain.Judgment, error) {
	if err := requireColumns(t, ColumnQueryID, ColumnDocID, ColumnRelevance); err != nil {
		return nil, err
	}

	judgments := make([]domain.Judgment, 0, len(t.Rows))
	for _, row := range t.Rows {
		queryID, docID, err := ids(row)
		if err != nil {
			return nil, err
		}

		raw := strings.TrimSpace(row.Values[ColumnRelevance])
		rel, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.NewValidationf("line %d: relevance %q is not an integer", row.Line, raw)
		}
		if rel < 0 {
			return nil, apperr.NewValidationf("line %d: relevance %d is negative", row.Line, rel)
		}

		judgments = append(judgments, domain.Judgment{QueryID: queryID, DocID: docID, Relevance: rel})
	}

	return judgments, nil
}

func ids(row Row) (string, string, error) {
	queryID := strings.TrimSpace(row.Values[ColumnQueryID])
	docID := strings.TrimSpace(row.Values[ColumnDocID])

	if queryID == "" {
		return "", "", apperr.NewValidationf("line %d: empty %s", row.Line, ColumnQueryID)
	}
	if docID == "" {
		return "", "", apperr.NewValidationf("line %d: empty %s", row.Line, ColumnDocID)
	}
	return queryID, docID, nil
}

func requireColumns(t *Table, columns ...string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return apperr.NewValidation(fmt.Sprintf("missing required column %q", c))
		}
	}
	return nil
}
