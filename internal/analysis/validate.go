package analysis

import (
	"github.com/statloom/statloom-cli/internal/dataset"
)

// Validate accepts or rejects a candidate variable selection for the given
// analysis type against the schema. A nil return means accepted; otherwise
// the error is a *ValidationError carrying the rejection reason.
//
// Every analysis except the descriptive summary (and the variable-free
// sample-size calculation) must carry at least two selected variables; the
// floor is checked before any per-type rule.
func Validate(req Request, sch *dataset.Schema) error {
	vars := req.Variables

	if req.Type != TypeDescriptive && req.Type != TypeSampleSize {
		// Duplicate crosstab roles outrank the count floor: selecting the
		// same column for row and column is a role conflict even when the
		// count happens to satisfy the minimum.
		if req.Type == TypeCrosstab && len(vars) == 2 && vars[0] == vars[1] {
			return rejected(ReasonDuplicateRole, "row and column variable must differ, got %q twice", vars[0])
		}
		if len(vars) < 2 {
			return rejected(ReasonInsufficientVariables, "%s requires at least 2 variables, got %d", req.Type, len(vars))
		}
	}

	switch req.Type {
	case TypeCrosstab:
		if len(vars) != 2 {
			return rejected(ReasonInsufficientVariables, "crosstab requires exactly 2 variables, got %d", len(vars))
		}
		if vars[0] == vars[1] {
			return rejected(ReasonDuplicateRole, "row and column variable must differ, got %q twice", vars[0])
		}
		return requireKnown(sch, vars)

	case TypeCorrelation, TypeHeatmap, TypeScatter, TypeHistogram:
		if err := requireKnown(sch, vars); err != nil {
			return err
		}
		return requireNumeric(sch, vars)

	case TypeRegression:
		if err := requireKnown(sch, vars); err != nil {
			return err
		}
		if err := requireNumeric(sch, vars); err != nil {
			return err
		}
		target := vars[0]
		for _, p := range vars[1:] {
			if p == target {
				return rejected(ReasonDuplicateRole, "predictor %q equals the regression target", p)
			}
		}
		return nil

	case TypeHypothesis:
		// The concrete sub-test (t-test, ANOVA, chi-square, Mann-Whitney)
		// is resolved by the compute collaborator from the numeric and
		// categorical mix; only the minimum count and column existence are
		// checked here.
		return requireKnown(sch, vars)

	case TypeBoxplot:
		if err := requireKnown(sch, vars); err != nil {
			return err
		}
		grouping := 0
		for _, v := range vars {
			if sch.IsNumeric(v) {
				continue
			}
			if sch.IsCategorical(v) {
				grouping++
				if grouping > 1 {
					return rejected(ReasonWrongColumnType, "boxplot accepts at most one categorical grouping variable")
				}
				continue
			}
			return rejected(ReasonWrongColumnType, "column %q is neither numeric nor categorical", v)
		}
		return nil

	case TypeVisual:
		if err := requireKnown(sch, vars); err != nil {
			return err
		}
		chart, _ := req.Options["chart_type"].(string)
		if !ChartTypes[chart] {
			return rejected(ReasonUnknownChartType, "chart_type %q is not supported", chart)
		}
		return nil

	case TypeDescriptive:
		// Variables are optional; the compute collaborator summarizes every
		// numeric column when none are given.
		if err := requireKnown(sch, vars); err != nil {
			return err
		}
		return requireNumeric(sch, vars)

	case TypeFrequencies:
		return requireKnown(sch, vars)

	case TypeSampleSize:
		return nil
	}

	return rejected(ReasonUnknownColumn, "unknown analysis type %q", req.Type)
}

func requireKnown(sch *dataset.Schema, vars []string) error {
	for _, v := range vars {
		if !sch.HasColumn(v) {
			return rejected(ReasonUnknownColumn, "column %q is not in the dataset", v)
		}
	}
	return nil
}

func requireNumeric(sch *dataset.Schema, vars []string) error {
	for _, v := range vars {
		if !sch.IsNumeric(v) {
			return rejected(ReasonWrongColumnType, "column %q is not numeric", v)
		}
	}
	return nil
}
