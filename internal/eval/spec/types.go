package spec

import (
	"path/filepath"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
)

// CompareSpec describes several runs scored against one judgments file.
type CompareSpec struct {
	Judgments string `yaml:"judgments"`
	Separator string `yaml:"separator"`
	OutputDir string `yaml:"output_dir,omitempty"`
	Runs      []Run  `yaml:"runs"`

	sep rune
}

type Run struct {
	Name        string `yaml:"name"`
	Predictions string `yaml:"predictions"`
	Output      string `yaml:"output,omitempty"`
}

// Sep is the parsed column separator. Valid after Parse.
func (s *CompareSpec) Sep() rune {
	if s.sep == 0 {
		return ' '
	}
	return s.sep
}

// OutputPath picks the result file of a run: its own output, then
// output_dir/<name>, then the path derived from its predictions file.
func (s *CompareSpec) OutputPath(r Run) string {
	switch {
	case r.Output != "":
		return r.Output
	case s.OutputDir != "":
		return filepath.Join(s.OutputDir, r.Name+report.OutputSuffix)
	default:
		return report.DefaultOutputPath(r.Predictions)
	}
}
