package dataset

import "fmt"

// Kind is the inferred classification of a column.
type Kind string

const (
	KindNumeric      Kind = "numeric"
	KindCategorical  Kind = "categorical"
	KindUnclassified Kind = "unclassified"
)

// Schema is the immutable column/type profile of an uploaded table.
// Numeric and Categorical are disjoint subsets of Columns; a column in
// neither is unclassified. A new upload produces a new Schema, it never
// mutates an existing one.
type Schema struct {
	DatasetID   string     `json:"dataset_id"`
	RowCount    int        `json:"row_count"`
	Columns     []string   `json:"columns"`
	Numeric     []string   `json:"numeric_columns"`
	Categorical []string   `json:"categorical_columns"`
	Preview     [][]string `json:"preview,omitempty"`
}

// NewSchema validates the partition invariant and returns the schema.
func NewSchema(datasetID string, rowCount int, columns, numeric, categorical []string, preview [][]string) (*Schema, error) {
	if rowCount < 0 {
		return nil, fmt.Errorf("row count must be non-negative, got %d", rowCount)
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	numSet := make(map[string]bool, len(numeric))
	for _, c := range numeric {
		if !seen[c] {
			return nil, fmt.Errorf("numeric column %q not in columns", c)
		}
		numSet[c] = true
	}
	for _, c := range categorical {
		if !seen[c] {
			return nil, fmt.Errorf("categorical column %q not in columns", c)
		}
		if numSet[c] {
			return nil, fmt.Errorf("column %q is both numeric and categorical", c)
		}
	}
	return &Schema{
		DatasetID:   datasetID,
		RowCount:    rowCount,
		Columns:     columns,
		Numeric:     numeric,
		Categorical: categorical,
		Preview:     preview,
	}, nil
}

// HasColumn reports whether name is one of the schema's columns.
func (s *Schema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether name is a numeric column.
func (s *Schema) IsNumeric(name string) bool {
	for _, c := range s.Numeric {
		if c == name {
			return true
		}
	}
	return false
}

// IsCategorical reports whether name is a categorical column.
func (s *Schema) IsCategorical(name string) bool {
	for _, c := range s.Categorical {
		if c == name {
			return true
		}
	}
	return false
}

// Matches reports whether other describes the same column layout. Used to
// detect a stale snapshot when resuming a project whose file has changed.
func (s *Schema) Matches(other *Schema) bool {
	if other == nil || len(s.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range s.Columns {
		if other.Columns[i] != c {
			return false
		}
	}
	return true
}
