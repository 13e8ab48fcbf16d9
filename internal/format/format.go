package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter abstracts CLI output formatting.
type Formatter interface {
	Write(w io.Writer, payload any) error
}

// JSONFormatter writes the payload as a single JSON document.
type JSONFormatter struct{}

func (f JSONFormatter) Write(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(payload)
}

// Table is a tab-separated listing with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// AddRow appends one row. Short rows are padded to the header width.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.Header) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
}

// TableFormatter writes Table payloads as tab-separated text. Any other
// payload falls back to its default formatting.
type TableFormatter struct{}

func (f TableFormatter) Write(w io.Writer, payload any) error {
	table, ok := payload.(*Table)
	if !ok {
		_, err := fmt.Fprintln(w, payload)
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(table.Header, "\t")); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
