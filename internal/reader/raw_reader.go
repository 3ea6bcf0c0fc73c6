package reader

import "slices"

// Row is one data line of a delimited table, keyed by header name.
type Row struct {
	Line   int
	Values map[string]string
}

type Table struct {
	Header []string
	Rows   []Row
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Header, name)
}

type Reader interface {
	Read() (*Table, error)
}
