package judgment

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/ir-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
strategy: manual
queries:
  - query_id: "1"
    docs:
      - doc_id: d1
        grade: 2
      - doc_id: d2
        grade: -1
      - doc_id: d3
        grade: 0
  - query_id: "2"
    docs:
      - doc_id: d9
        grade: 1
`

func TestDecode(t *testing.T) {
	jf, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "manual", jf.Strategy)
	require.Len(t, jf.Queries, 2)

	judgments, err := jf.Judgments()
	require.NoError(t, err)
	assert.Equal(t, []domain.Judgment{
		{QueryID: "1", DocID: "d1", Relevance: 2},
		{QueryID: "1", DocID: "d3", Relevance: 0},
		{QueryID: "2", DocID: "d9", Relevance: 1},
	}, judgments)
}

func TestDecode_Invalid(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Decode(strings.NewReader("queries: [::"))
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("grade below ungraded marker", func(t *testing.T) {
		jf := &JudgmentFile{Queries: []JudgmentEntry{{QueryID: "1", Docs: []GradedDoc{{DocID: "a", Grade: -3}}}}}
		_, err := jf.Judgments()
		assert.ErrorContains(t, err, "negative")
	})

	t.Run("missing query id", func(t *testing.T) {
		jf := &JudgmentFile{Queries: []JudgmentEntry{{Docs: []GradedDoc{{DocID: "a", Grade: 1}}}}}
		_, err := jf.Judgments()
		assert.ErrorContains(t, err, "without query_id")
	})

	t.Run("empty document", func(t *testing.T) {
		jf, err := Decode(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, jf.Queries)
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	jf, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, jf.Queries, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIsYAMLPath(t *testing.T) {
	assert.True(t, IsYAMLPath("truth.yaml"))
	assert.True(t, IsYAMLPath("truth.YML"))
	assert.False(t, IsYAMLPath("truth"))
	assert.False(t, IsYAMLPath("truth.tsv"))
}
