package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Importer bulk loads runs and judgments so they can be evaluated later
// through Source.
type Importer struct {
	db *pgxpool.Pool
}

func NewImporter(pool *ConnectionPool) *Importer {
	return &Importer{db: pool.conn}
}

// ImportPredictions replaces the stored rows of runName. Rank is the row's
// position within its query, starting at 1.
func (im *Importer) ImportPredictions(ctx context.Context, runName string, preds []domain.PredictionRow) (int64, error) {
	ranks := make(map[string]int)
	rows := make([][]any, len(preds))
	for i, p := range preds {
		ranks[p.QueryID]++
		rows[i] = []any{runName, p.QueryID, p.DocID, ranks[p.QueryID]}
	}

	var copied int64
	err := pgx.BeginFunc(ctx, im.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM predictions WHERE run_name = $1`, runName); err != nil {
			return fmt.Errorf("failed to clear run: %w", err)
		}

		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"predictions"},
			[]string{"run_name", "query_id", "doc_id", "rank"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to bulk insert predictions: %w", err)
		}
		copied = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Imported predictions", "run", runName, "rows", copied)
	return copied, nil
}

// ImportJudgments replaces the judgments table.
func (im *Importer) ImportJudgments(ctx context.Context, judgments []domain.Judgment) (int64, error) {
	rows := make([][]any, len(judgments))
	for i, j := range judgments {
		rows[i] = []any{j.QueryID, j.DocID, j.Relevance}
	}

	var copied int64
	err := pgx.BeginFunc(ctx, im.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM judgments`); err != nil {
			return fmt.Errorf("failed to clear judgments: %w", err)
		}

		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"judgments"},
			[]string{"query_id", "doc_id", "relevance"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to bulk insert judgments: %w", err)
		}
		copied = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Imported judgments", "rows", copied)
	return copied, nil
}
