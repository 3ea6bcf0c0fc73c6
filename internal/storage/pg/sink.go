package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sink saves evaluation runs: one evaluation_runs row holding the summary
// and one query_metrics row per evaluated query. Metrics are stored as the
// same JSON objects the result file contains.
type Sink struct {
	db *pgxpool.Pool
}

func NewSink(pool *ConnectionPool) *Sink {
	return &Sink{db: pool.conn}
}

func (s *Sink) Save(ctx context.Context, r *report.Report) error {
	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	summaryJSON, err := json.Marshal(report.SummaryEntry(r.Summary()))
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	queries := r.Queries()
	rows := make([][]any, len(queries))
	for i, q := range queries {
		metricsJSON, err := json.Marshal(report.QueryEntry(q))
		if err != nil {
			return fmt.Errorf("failed to marshal metrics of query %s: %w", q.QueryID, err)
		}
		rows[i] = []any{r.RunID, q.QueryID, metricsJSON}
	}

	excluded := r.Excluded()
	if excluded == nil {
		excluded = []string{}
	}

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO evaluation_runs (id, run_name, created_at, summary, excluded)
			VALUES ($1, $2, $3, $4, $5)
		`, r.RunID, r.RunName, r.CreatedAt, summaryJSON, excluded)
		if err != nil {
			return fmt.Errorf("failed to insert evaluation run: %w", err)
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"query_metrics"},
			[]string{"run_id", "query_id", "metrics"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to bulk insert query metrics: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Evaluation stored in postgres", "run", r.RunName, "id", r.RunID, "queries", len(queries))
	return nil
}

// LoadSummary returns the stored summary object of a run.
func (s *Sink) LoadSummary(ctx context.Context, runID uuid.UUID) (map[string]any, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT summary FROM evaluation_runs WHERE id = $1`, runID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}

	var summary map[string]any
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return summary, nil
}

func (s *Sink) Healthy(ctx context.Context) bool {
	return s.db.Ping(ctx) == nil
}
