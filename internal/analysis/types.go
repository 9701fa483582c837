package analysis

import (
	"encoding/json"
	"fmt"
)

// Type enumerates the supported analysis types.
type Type string

const (
	TypeCrosstab    Type = "crosstab"
	TypeCorrelation Type = "correlation"
	TypeRegression  Type = "regression"
	TypeHypothesis  Type = "hypothesis"
	TypeHistogram   Type = "histogram"
	TypeScatter     Type = "scatter"
	TypeBoxplot     Type = "boxplot"
	TypeHeatmap     Type = "heatmap"
	TypeVisual      Type = "visual"
	TypeDescriptive Type = "descriptive"
	TypeFrequencies Type = "frequencies"
	TypeSampleSize  Type = "samplesize"
)

var allTypes = []Type{
	TypeCrosstab, TypeCorrelation, TypeRegression, TypeHypothesis,
	TypeHistogram, TypeScatter, TypeBoxplot, TypeHeatmap, TypeVisual,
	TypeDescriptive, TypeFrequencies, TypeSampleSize,
}

// ParseType validates a user-supplied analysis type string.
func ParseType(s string) (Type, error) {
	for _, t := range allTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown analysis type %q", s)
}

// ChartTypes is the fixed set accepted for the visual analysis
// options.chart_type key.
var ChartTypes = map[string]bool{
	"bar":       true,
	"line":      true,
	"pie":       true,
	"histogram": true,
	"scatter":   true,
	"boxplot":   true,
	"heatmap":   true,
}

// Request is a validated unit of work against the active session's dataset.
// Variables may be empty only for analysis types that need none.
type Request struct {
	Type      Type           `json:"analysis_type"`
	Variables []string       `json:"variables,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// ResultKind discriminates the ResultEnvelope union.
type ResultKind string

const (
	ResultImage ResultKind = "image"
	ResultTable ResultKind = "table"
	ResultText  ResultKind = "text"
	ResultRaw   ResultKind = "raw"
)

// TableData is a cross-tabulation style count grid. RowKeys and ColKeys
// preserve first-seen order; Counts may be sparse and is densified with
// zeroes at render time.
type TableData struct {
	RowVariable    string                        `json:"row_variable"`
	ColumnVariable string                        `json:"column_variable"`
	RowKeys        []string                      `json:"row_keys"`
	ColKeys        []string                      `json:"col_keys"`
	Counts         map[string]map[string]float64 `json:"counts"`
	Observations   int                           `json:"observation_count"`
}

// ResultEnvelope holds exactly one result shape. It is immutable once
// produced and is not persisted unless the caller archives it.
type ResultEnvelope struct {
	Kind     ResultKind      `json:"kind"`
	ImageRef string          `json:"image_ref,omitempty"`
	Table    *TableData      `json:"table,omitempty"`
	Text     string          `json:"text,omitempty"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

// ComputeResult is the shape the external compute collaborator returns
// before the dispatcher normalizes it into an envelope.
type ComputeResult struct {
	ImagePath string          `json:"image_path,omitempty"`
	Table     *TableData      `json:"table,omitempty"`
	Text      string          `json:"text,omitempty"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}
