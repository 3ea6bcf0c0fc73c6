package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/ir-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ir-eval/internal/reader"
	"gopkg.in/yaml.v3"
)

// LoadFromFile parses a comparison spec. Relative paths inside it are taken
// relative to the directory holding the spec file.
func LoadFromFile(path string) (*CompareSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.resolve(filepath.Dir(path))
	return s, nil
}

func Parse(data []byte) (*CompareSpec, error) {
	var s CompareSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse spec YAML", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *CompareSpec) error {
	if s.Judgments == "" {
		return apperr.NewValidation("spec has no judgments file")
	}
	if len(s.Runs) == 0 {
		return apperr.NewValidation("spec has no runs")
	}

	seen := make(map[string]bool, len(s.Runs))
	for i, r := range s.Runs {
		if r.Name == "" {
			return apperr.NewValidationf("run at index %d has no name", i)
		}
		if seen[r.Name] {
			return apperr.NewValidationf("duplicate run name %q", r.Name)
		}
		seen[r.Name] = true
		if r.Predictions == "" {
			return apperr.NewValidationf("run %q has no predictions file", r.Name)
		}
	}

	sep, err := reader.ParseSeparator(s.Separator)
	if err != nil {
		return apperr.NewValidationWrap("spec separator", err)
	}
	s.sep = sep
	return nil
}

func (s *CompareSpec) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	s.Judgments = abs(s.Judgments)
	s.OutputDir = abs(s.OutputDir)
	for i := range s.Runs {
		s.Runs[i].Predictions = abs(s.Runs[i].Predictions)
		s.Runs[i].Output = abs(s.Runs[i].Output)
	}
}
