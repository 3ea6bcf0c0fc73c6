package storage

import (
	"context"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
)

// Source supplies the two tables of an evaluation. Predictions must come back
// in rank order within each query.
type Source interface {
	Predictions(ctx context.Context) ([]domain.PredictionRow, error)
	Judgments(ctx context.Context) ([]domain.Judgment, error)
}
