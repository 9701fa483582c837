package analysis

import (
	"errors"
	"testing"

	"github.com/statloom/statloom-cli/internal/dataset"
)

func testSchema(t *testing.T) *dataset.Schema {
	t.Helper()
	sch, err := dataset.NewSchema("ds-test", 100,
		[]string{"age", "income", "score", "gender", "city", "comment"},
		[]string{"age", "income", "score"},
		[]string{"gender", "city"},
		nil)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return sch
}

func wantReason(t *testing.T, err error, want Reason) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected rejection with reason %s, got nil", want)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Reason != want {
		t.Fatalf("reason = %s, want %s (message: %s)", verr.Reason, want, verr.Message)
	}
}

func TestValidateAccepts(t *testing.T) {
	sch := testSchema(t)
	cases := []Request{
		{Type: TypeCrosstab, Variables: []string{"gender", "city"}},
		{Type: TypeCorrelation, Variables: []string{"age", "income"}},
		{Type: TypeCorrelation, Variables: []string{"age", "income", "score"}},
		{Type: TypeRegression, Variables: []string{"income", "age", "score"}},
		{Type: TypeHypothesis, Variables: []string{"score", "gender"}},
		{Type: TypeHistogram, Variables: []string{"age", "income"}},
		{Type: TypeScatter, Variables: []string{"age", "income"}},
		{Type: TypeBoxplot, Variables: []string{"score", "gender"}},
		{Type: TypeHeatmap, Variables: []string{"age", "income", "score"}},
		{Type: TypeVisual, Variables: []string{"age", "gender"}, Options: map[string]any{"chart_type": "bar"}},
		{Type: TypeDescriptive},
		{Type: TypeDescriptive, Variables: []string{"age"}},
		{Type: TypeFrequencies, Variables: []string{"city", "gender"}},
		{Type: TypeSampleSize},
	}
	for _, req := range cases {
		if err := Validate(req, sch); err != nil {
			t.Errorf("%s %v: unexpected rejection: %v", req.Type, req.Variables, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	sch := testSchema(t)
	cases := []struct {
		name string
		req  Request
		want Reason
	}{
		{"crosstab_one_var", Request{Type: TypeCrosstab, Variables: []string{"gender"}}, ReasonInsufficientVariables},
		// same column twice outranks the count floor
		{"crosstab_same_var", Request{Type: TypeCrosstab, Variables: []string{"age", "age"}}, ReasonDuplicateRole},
		{"crosstab_three_vars", Request{Type: TypeCrosstab, Variables: []string{"gender", "city", "age"}}, ReasonInsufficientVariables},
		{"crosstab_unknown", Request{Type: TypeCrosstab, Variables: []string{"gender", "height"}}, ReasonUnknownColumn},
		{"correlation_categorical", Request{Type: TypeCorrelation, Variables: []string{"age", "gender"}}, ReasonWrongColumnType},
		{"correlation_one_var", Request{Type: TypeCorrelation, Variables: []string{"age"}}, ReasonInsufficientVariables},
		{"regression_duplicate_target", Request{Type: TypeRegression, Variables: []string{"income", "income"}}, ReasonDuplicateRole},
		{"regression_categorical", Request{Type: TypeRegression, Variables: []string{"income", "city"}}, ReasonWrongColumnType},
		{"hypothesis_unknown", Request{Type: TypeHypothesis, Variables: []string{"score", "height"}}, ReasonUnknownColumn},
		{"histogram_categorical", Request{Type: TypeHistogram, Variables: []string{"gender", "city"}}, ReasonWrongColumnType},
		{"boxplot_two_groupings", Request{Type: TypeBoxplot, Variables: []string{"score", "gender", "city"}}, ReasonWrongColumnType},
		{"boxplot_unclassified", Request{Type: TypeBoxplot, Variables: []string{"score", "comment"}}, ReasonWrongColumnType},
		{"visual_missing_chart", Request{Type: TypeVisual, Variables: []string{"age", "gender"}}, ReasonUnknownChartType},
		{"visual_bad_chart", Request{Type: TypeVisual, Variables: []string{"age", "gender"}, Options: map[string]any{"chart_type": "sunburst"}}, ReasonUnknownChartType},
		{"descriptive_categorical", Request{Type: TypeDescriptive, Variables: []string{"gender"}}, ReasonWrongColumnType},
		{"frequencies_one_var", Request{Type: TypeFrequencies, Variables: []string{"city"}}, ReasonInsufficientVariables},
		{"frequencies_unknown", Request{Type: TypeFrequencies, Variables: []string{"city", "height"}}, ReasonUnknownColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wantReason(t, Validate(tc.req, sch), tc.want)
		})
	}
}

func TestGuideCoversEveryType(t *testing.T) {
	for _, typ := range allTypes {
		g, ok := Guide[typ]
		if !ok {
			t.Errorf("no guide entry for %s", typ)
			continue
		}
		if g.Name == "" || g.Description == "" {
			t.Errorf("incomplete guide entry for %s: %#v", typ, g)
		}
	}
}

func TestParseType(t *testing.T) {
	if _, err := ParseType("crosstab"); err != nil {
		t.Fatalf("ParseType(crosstab): %v", err)
	}
	if _, err := ParseType("anova"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
