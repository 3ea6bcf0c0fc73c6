package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Source reads one stored run and the shared judgments table.
type Source struct {
	db      *pgxpool.Pool
	runName string
}

func NewSource(pool *ConnectionPool, runName string) *Source {
	return &Source{db: pool.conn, runName: runName}
}

func (s *Source) Predictions(ctx context.Context) ([]domain.PredictionRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT query_id, doc_id
		FROM predictions
		WHERE run_name = $1
		ORDER BY query_id, rank
	`, s.runName)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}

	preds, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.PredictionRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan predictions: %w", err)
	}

	slog.Debug("Loaded predictions from postgres", "run", s.runName, "rows", len(preds))
	return preds, nil
}

func (s *Source) Judgments(ctx context.Context) ([]domain.Judgment, error) {
	rows, err := s.db.Query(ctx, `SELECT query_id, doc_id, relevance FROM judgments`)
	if err != nil {
		return nil, fmt.Errorf("failed to query judgments: %w", err)
	}

	judgments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Judgment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan judgments: %w", err)
	}

	return judgments, nil
}
