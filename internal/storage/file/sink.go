package file

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
)

// JSONSink writes the report as the JSON result array to a fixed path.
type JSONSink struct {
	path string
}

func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

func (s *JSONSink) Path() string {
	return s.path
}

func (s *JSONSink) Save(ctx context.Context, r *report.Report) error {
	if err := report.WriteJSONFile(r, s.path); err != nil {
		return err
	}
	slog.Info("Evaluation result written", "run", r.RunName, "path", s.path)
	return nil
}
