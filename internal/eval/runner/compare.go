package runner

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/spec"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/file"
)

// SourceFactory opens the tables of one run of a comparison.
type SourceFactory func(s *spec.CompareSpec, run spec.Run) storage.Source

// FileSources reads every run from its predictions file and the shared
// judgments file.
func FileSources(s *spec.CompareSpec, run spec.Run) storage.Source {
	return file.NewSource(run.Predictions, s.Judgments, s.Sep())
}

// Compare evaluates the runs of s one after another. Reports come back in
// the order the runs are listed. The first failing run aborts the comparison.
func (r *Runner) Compare(ctx context.Context, s *spec.CompareSpec, open SourceFactory) ([]*report.Report, error) {
	if open == nil {
		open = FileSources
	}

	reports := make([]*report.Report, 0, len(s.Runs))
	for _, run := range s.Runs {
		rep, err := r.EvaluateSource(ctx, run.Name, open(s, run))
		if err != nil {
			return nil, fmt.Errorf("run %q: %w", run.Name, err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
