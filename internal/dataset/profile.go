package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Policy classifies a column from its non-missing values. Implementations
// must be total and deterministic for a fixed input.
type Policy interface {
	Classify(values []string) Kind
}

// strictNumericPolicy is the default: a column is numeric iff every
// non-missing value parses as a number; otherwise categorical, unless the
// column is empty or looks like free text (every value distinct past a
// cardinality cutoff), which leaves it unclassified.
type strictNumericPolicy struct{}

const freeTextCutoff = 100

func (strictNumericPolicy) Classify(values []string) Kind {
	if len(values) == 0 {
		return KindUnclassified
	}
	numeric := true
	for _, v := range values {
		if _, ok := parseNumeric(v); !ok {
			numeric = false
			break
		}
	}
	if numeric {
		return KindNumeric
	}
	distinct := make(map[string]bool, len(values))
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) > freeTextCutoff && len(distinct) == len(values) {
		return KindUnclassified
	}
	return KindCategorical
}

// DefaultPolicy returns the strict numeric inference policy.
func DefaultPolicy() Policy { return strictNumericPolicy{} }

// Profiler turns a raw uploaded file into a Schema.
type Profiler struct {
	Policy      Policy
	MaxRows     int // 0 means unlimited
	PreviewRows int // 0 means default (5)
}

// NewProfiler returns a profiler with the default inference policy.
func NewProfiler(maxRows, previewRows int) *Profiler {
	return &Profiler{Policy: DefaultPolicy(), MaxRows: maxRows, PreviewRows: previewRows}
}

// ProfileFile reads the file at path and profiles it. The returned schema
// carries a fresh dataset id; registering it as the active session is the
// caller's step so a profiling failure never replaces a prior session.
func (p *Profiler) ProfileFile(path string) (*Schema, error) {
	t, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Profile(t)
}

// Profile classifies every column of the table into exactly one of
// numeric, categorical, or unclassified.
func (p *Profiler) Profile(t *Table) (*Schema, error) {
	if t == nil || len(t.Columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrUnsupportedFormat)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, t.Name)
	}
	policy := p.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}
	rows := t.Rows
	if p.MaxRows > 0 && len(rows) > p.MaxRows {
		rows = rows[:p.MaxRows]
	}
	previewRows := p.PreviewRows
	if previewRows <= 0 {
		previewRows = 5
	}

	var numeric, categorical []string
	for j, name := range t.Columns {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if j >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[j])
			if v == "" {
				continue
			}
			values = append(values, v)
		}
		switch policy.Classify(values) {
		case KindNumeric:
			numeric = append(numeric, name)
		case KindCategorical:
			categorical = append(categorical, name)
		}
	}

	n := previewRows
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	preview := make([][]string, n)
	for i := 0; i < n; i++ {
		cp := make([]string, len(t.Rows[i]))
		copy(cp, t.Rows[i])
		preview[i] = cp
	}

	return NewSchema(uuid.NewString(), len(t.Rows), t.Columns, numeric, categorical, preview)
}

// parseNumeric accepts plain and percent-suffixed decimals, with either
// '.' or ',' as the decimal separator when only one appears.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
