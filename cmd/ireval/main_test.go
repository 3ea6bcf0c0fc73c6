package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "ireval", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.PersistentFlags().String("env", ".env", "")
	root.AddCommand(evaluateCmd(), compareCmd(), importCmd())
	return root
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEvaluateCommand(t *testing.T) {
	t.Setenv("RESULT_SINKS", "")
	t.Setenv("ENV_PATH", "")
	dir := t.TempDir()

	preds := writeFile(t, dir, "bm25.txt", "query_ids doc_ids\n1 d1\n1 d2\n1 d3\n2 d4\n")
	truth := writeFile(t, dir, "truth", "query_ids doc_ids relevance\n1 d2 1\n")

	root := newRoot()
	root.SetArgs([]string{"evaluate", "-p", preds, "-j", truth, "--no-progress", "--env", filepath.Join(dir, "none.env")})
	require.NoError(t, root.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "bm25-evaluation_result.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "[\n    \"query id: [2] don't evaluate\""), string(out))
	assert.Contains(t, string(out), `"query ids": "SUMMARY"`)
}

func TestEvaluateCommand_Errors(t *testing.T) {
	t.Setenv("RESULT_SINKS", "")
	dir := t.TempDir()
	preds := writeFile(t, dir, "run", "query_ids doc_ids\n1 a\n")
	truth := writeFile(t, dir, "truth", "query_ids doc_ids relevance\n1 a 0\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing inputs", []string{"evaluate"}, "--predictions and --judgments"},
		{"bad separator", []string{"evaluate", "-p", preds, "-j", truth, "--sep", "ab"}, "separator"},
		{"nothing evaluated", []string{"evaluate", "-p", preds, "-j", truth, "--no-progress"}, "no evaluated queries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRoot()
			root.SetArgs(tt.args)
			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "run-evaluation_result.json"))
	assert.True(t, os.IsNotExist(err), "failed evaluation must not write a result file")
}

func TestCompareCommand(t *testing.T) {
	t.Setenv("RESULT_SINKS", "")
	dir := t.TempDir()
	writeFile(t, dir, "truth", "query_ids doc_ids relevance\n1 a 1\n")
	writeFile(t, dir, "good", "query_ids doc_ids\n1 a\n")
	writeFile(t, dir, "bad", "query_ids doc_ids\n1 b\n1 a\n")
	specPath := writeFile(t, dir, "compare.yaml", `
judgments: truth
output_dir: results
runs:
  - name: good
    predictions: good
  - name: bad
    predictions: bad
`)

	root := newRoot()
	root.SetArgs([]string{"compare", "--spec", specPath, "--no-progress"})
	require.NoError(t, root.Execute())

	for _, name := range []string{"good", "bad"} {
		_, err := os.Stat(filepath.Join(dir, "results", name+"-evaluation_result.json"))
		assert.NoError(t, err, name)
	}
}

func TestImportCommand_Validation(t *testing.T) {
	root := newRoot()
	root.SetArgs([]string{"import"})
	assert.ErrorContains(t, root.Execute(), "nothing to import")

	root = newRoot()
	root.SetArgs([]string{"import", "-p", "preds"})
	assert.ErrorContains(t, root.Execute(), "--run is required")
}

type failingSink struct{ calls int }

func (s *failingSink) Save(context.Context, *report.Report) error {
	s.calls++
	return errors.New("elasticsearch unavailable")
}

func TestPersist(t *testing.T) {
	dir := t.TempDir()
	reports := []*report.Report{{RunName: "a"}, {RunName: "b"}}
	outputs := []string{filepath.Join(dir, "out", "a.json"), filepath.Join(dir, "out", "b.json")}

	t.Run("external sink failure leaves no result file", func(t *testing.T) {
		sink := &failingSink{}
		err := persist(context.Background(), reports, outputs, sink)
		assert.ErrorContains(t, err, "elasticsearch unavailable")
		assert.Equal(t, 1, sink.calls)

		for _, out := range outputs {
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), out)
		}
	})

	t.Run("files written without external sinks", func(t *testing.T) {
		require.NoError(t, persist(context.Background(), reports, outputs, nil))
		for _, out := range outputs {
			_, statErr := os.Stat(out)
			assert.NoError(t, statErr, out)
		}
	})
}
