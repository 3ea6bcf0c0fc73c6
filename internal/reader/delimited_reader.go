package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/ir-eval/internal/apperr"
)

// DefaultSeparator matches the single-space tables the evaluation files have
// always used.
const DefaultSeparator = ' '

type DelimitedReader struct {
	reader io.Reader
	sep    rune
}

func NewDelimitedReader(reader io.Reader, sep rune) *DelimitedReader {
	return &DelimitedReader{
		reader: reader,
		sep:    sep,
	}
}

// Read returns the header and every data row. Every line must have as many
// fields as the header.
func (dr *DelimitedReader) Read() (*Table, error) {
	csvReader := csv.NewReader(dr.reader)
	csvReader.Comma = dr.sep

	headers, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.NewValidation("table is empty: missing header")
	}
	if err != nil {
		return nil, apperr.NewValidationWrap("read header", err)
	}

	table := &Table{Header: headers}
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.NewValidationWrap("read row", err)
		}

		line, _ := csvReader.FieldPos(0)
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			values[h] = record[i]
		}
		table.Rows = append(table.Rows, Row{Line: line, Values: values})
	}

	return table, nil
}

// ParseSeparator accepts a single character or the names "tab", "space" and
// the escape "\t".
func ParseSeparator(s string) (rune, error) {
	switch s {
	case "", "space", " ":
		return ' ', nil
	case "tab", `\t`, "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid separator %q", s)
	}
	return r, nil
}
