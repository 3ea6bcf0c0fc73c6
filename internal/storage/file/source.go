package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/DjordjeVuckovic/ir-eval/internal/judgment"
	"github.com/DjordjeVuckovic/ir-eval/internal/reader"
)

// Source reads predictions and judgments from delimited files. Judgments
// may also be a YAML judgment file.
type Source struct {
	PredictionsPath string
	JudgmentsPath   string
	Separator       rune
}

func NewSource(predictionsPath, judgmentsPath string, sep rune) *Source {
	return &Source{
		PredictionsPath: predictionsPath,
		JudgmentsPath:   judgmentsPath,
		Separator:       sep,
	}
}

func (s *Source) Predictions(ctx context.Context) ([]domain.PredictionRow, error) {
	table, err := s.readTable(s.PredictionsPath)
	if err != nil {
		return nil, fmt.Errorf("load predictions: %w", err)
	}

	preds, err := reader.ParsePredictions(table)
	if err != nil {
		return nil, fmt.Errorf("load predictions %s: %w", s.PredictionsPath, err)
	}

	slog.Debug("Loaded predictions", "path", s.PredictionsPath, "rows", len(preds))
	return preds, nil
}

func (s *Source) Judgments(ctx context.Context) ([]domain.Judgment, error) {
	if judgment.IsYAMLPath(s.JudgmentsPath) {
		jf, err := judgment.ReadFile(s.JudgmentsPath)
		if err != nil {
			return nil, fmt.Errorf("load judgments: %w", err)
		}
		judgments, err := jf.Judgments()
		if err != nil {
			return nil, fmt.Errorf("load judgments %s: %w", s.JudgmentsPath, err)
		}
		return judgments, nil
	}

	table, err := s.readTable(s.JudgmentsPath)
	if err != nil {
		return nil, fmt.Errorf("load judgments: %w", err)
	}

	judgments, err := reader.ParseJudgments(table)
	if err != nil {
		return nil, fmt.Errorf("load judgments %s: %w", s.JudgmentsPath, err)
	}

	slog.Debug("Loaded judgments", "path", s.JudgmentsPath, "rows", len(judgments))
	return judgments, nil
}

func (s *Source) readTable(path string) (*reader.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sep := s.Separator
	if sep == 0 {
		sep = reader.DefaultSeparator
	}

	table, err := reader.NewDelimitedReader(f, sep).Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
