package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/group"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	return &Runner{config: cfg.normalize()}
}

// outcome is the result of one group. Every worker writes only its own
// slot, so the slice needs no locking.
type outcome struct {
	metrics    metrics.QueryMetrics
	evaluated  bool
	duplicates int
}

// Evaluate scores every query of a run and assembles the report. Queries
// without relevant judgments are excluded and listed in the advisory entry.
// When no query can be scored report.ErrNoEvaluatedQueries is returned.
func (r *Runner) Evaluate(
	ctx context.Context,
	name string,
	predictions []domain.PredictionRow,
	judgments []domain.Judgment,
) (*report.Report, error) {
	start := time.Now()
	groups := group.ByQuery(predictions, judgments)
	outcomes := make([]outcome, len(groups))

	bar := r.newProgressBar(name, len(groups))
	defer bar.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i := range groups {
		if gctx.Err() != nil {
			break
		}
		grp := groups[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			judged := metrics.NewJudged(grp.Judgments)
			m, err := metrics.Compute(grp.QueryID, grp.DocIDs, judged)
			switch {
			case errors.Is(err, metrics.ErrNoRelevant):
			case err != nil:
				return fmt.Errorf("query %s: %w", grp.QueryID, err)
			default:
				outcomes[i].metrics = m
				outcomes[i].evaluated = true
			}
			outcomes[i].duplicates = judged.Duplicates()

			_ = bar.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", name, err)
	}

	var (
		queries    = make([]metrics.QueryMetrics, 0, len(groups))
		excluded   []string
		duplicates int
	)
	for i, o := range outcomes {
		duplicates += o.duplicates
		if !o.evaluated {
			excluded = append(excluded, groups[i].QueryID)
			continue
		}
		queries = append(queries, o.metrics)
	}

	if duplicates > 0 {
		slog.Warn("Duplicate judgments collapsed to their highest relevance", "run", name, "duplicates", duplicates)
	}
	if len(excluded) > 0 {
		slog.Warn("Queries without relevant judgments were not evaluated", "run", name, "queries", excluded)
	}

	summary, err := report.Summarize(queries)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", name, err)
	}

	rep := &report.Report{
		RunID:     uuid.New(),
		RunName:   name,
		CreatedAt: time.Now(),
		Entries:   report.Assemble(queries, summary, excluded),
	}

	slog.Info("Evaluation finished",
		"run", name,
		"queries", len(queries),
		"excluded", len(excluded),
		"map", summary.MAP,
		"took", time.Since(start))

	return rep, nil
}

// EvaluateSource loads both tables from src and evaluates them.
func (r *Runner) EvaluateSource(ctx context.Context, name string, src storage.Source) (*report.Report, error) {
	predictions, err := src.Predictions(ctx)
	if err != nil {
		return nil, err
	}
	judgments, err := src.Judgments(ctx)
	if err != nil {
		return nil, err
	}
	return r.Evaluate(ctx, name, predictions, judgments)
}

func (r *Runner) newProgressBar(name string, total int) *progressbar.ProgressBar {
	if !r.config.Progress {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.config.ProgressOut),
		progressbar.OptionSetDescription("Evaluating "+name),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
