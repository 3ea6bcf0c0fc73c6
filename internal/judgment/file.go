package judgment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/ir-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"gopkg.in/yaml.v3"
)

// IsYAMLPath reports whether path names a YAML judgment file.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func ReadFile(path string) (*JudgmentFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read judgment file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (*JudgmentFile, error) {
	var jf JudgmentFile
	if err := yaml.NewDecoder(r).Decode(&jf); err != nil {
		if err == io.EOF {
			return &jf, nil
		}
		return nil, apperr.NewValidationWrap("parse judgment file", err)
	}
	return &jf, nil
}

// Judgments flattens the file into judgment rows. Ungraded documents are
// skipped; any other negative grade is rejected.
func (jf *JudgmentFile) Judgments() ([]domain.Judgment, error) {
	var out []domain.Judgment

	for _, entry := range jf.Queries {
		if strings.TrimSpace(entry.QueryID) == "" {
			return nil, apperr.NewValidation("judgment entry without query_id")
		}
		for _, d := range entry.Docs {
			if d.Grade == UngradedGrade {
				continue
			}
			if d.Grade < 0 {
				return nil, apperr.NewValidationf("query %s doc %s: grade %d is negative", entry.QueryID, d.DocID, d.Grade)
			}
			if strings.TrimSpace(d.DocID) == "" {
				return nil, apperr.NewValidationf("query %s: judged doc without doc_id", entry.QueryID)
			}
			out = append(out, domain.Judgment{
				QueryID:   entry.QueryID,
				DocID:     d.DocID,
				Relevance: d.Grade,
			})
		}
	}

	return out, nil
}
