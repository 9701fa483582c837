package dataset

import (
	"fmt"
	"strings"
)

// Table is the raw tabular content of an uploaded file before profiling.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Reader parses a supported file format into a Table.
type Reader interface {
	CanRead(filename string) bool
	Read(path string) (*Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile selects a reader based on filename and parses the file.
// A file no reader claims is an unsupported format.
func ReadFile(path string) (*Table, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// uniqueColumns de-duplicates header names the way spreadsheet tools do,
// suffixing repeats so the schema's column set stays unique.
func uniqueColumns(header []string) []string {
	out := make([]string, len(header))
	seen := map[string]bool{}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if seen[name] {
			// Bump the suffix until it clears names already taken,
			// including literal headers like "a_2".
			base := name
			for n := 2; ; n++ {
				cand := fmt.Sprintf("%s_%d", base, n)
				if !seen[cand] {
					name = cand
					break
				}
			}
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}
