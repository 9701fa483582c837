package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/statloom/statloom-cli/internal/analysis"
)

func sparseTable() *analysis.TableData {
	return &analysis.TableData{
		RowVariable:    "gender",
		ColumnVariable: "city",
		RowKeys:        []string{"Male", "Female"},
		ColKeys:        []string{"Lagos", "Abuja", "Kano"},
		Counts: map[string]map[string]float64{
			"Male":   {"Lagos": 3, "Kano": 1},
			"Female": {"Abuja": 2},
		},
		Observations: 6,
	}
}

func TestRenderDensifiesSparseCounts(t *testing.T) {
	dm, err := Render(&analysis.ResultEnvelope{Kind: analysis.ResultTable, Table: sparseTable()})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dm.Kind != DisplayGrid {
		t.Fatalf("kind = %s, want grid", dm.Kind)
	}
	g := dm.Grid
	wantHeader := []string{"gender", "Lagos", "Abuja", "Kano"}
	for i, h := range wantHeader {
		if g.Header[i] != h {
			t.Fatalf("header = %#v, want %#v", g.Header, wantHeader)
		}
	}
	// absent pairs render 0, never blank
	wantRows := [][]string{
		{"Male", "3", "0", "1"},
		{"Female", "0", "2", "0"},
	}
	for i, want := range wantRows {
		for j, cell := range want {
			if g.Rows[i][j] != cell {
				t.Fatalf("rows = %#v, want %#v", g.Rows, wantRows)
			}
		}
	}
}

func TestRenderPrecedence(t *testing.T) {
	env := &analysis.ResultEnvelope{
		ImageRef: "/tmp/fig.png",
		Table:    sparseTable(),
		Text:     "some text",
	}
	dm, err := Render(env)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dm.Kind != DisplayImage || dm.ImageRef != "/tmp/fig.png" {
		t.Fatalf("display = %#v", dm)
	}
}

func TestRenderRawFallsBackToStructuredDump(t *testing.T) {
	env := &analysis.ResultEnvelope{Raw: json.RawMessage(`{"r":0.82,"p_value":0.003}`)}
	dm, err := Render(env)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dm.Kind != DisplayText {
		t.Fatalf("kind = %s", dm.Kind)
	}
	if !strings.Contains(dm.Text, `"p_value": 0.003`) {
		t.Fatalf("dump = %q", dm.Text)
	}
}

func TestCleanTextStripsGlyphsAndMarkup(t *testing.T) {
	in := "📊 **Descriptive Statistics**\nMean age: _31.4_\n✅ done"
	out := CleanText(in)
	if strings.ContainsAny(out, "📊✅*") {
		t.Fatalf("glyphs or markers survived: %q", out)
	}
	if !strings.Contains(out, "Descriptive Statistics") || !strings.Contains(out, "Mean age: 31.4") {
		t.Fatalf("content lost: %q", out)
	}
	if strings.Contains(out, "_31.4_") {
		t.Fatalf("italic markers survived: %q", out)
	}
}

func TestCleanTextKeepsSnakeCaseIdentifiers(t *testing.T) {
	in := "column p_value is numeric"
	if out := CleanText(in); out != in {
		t.Fatalf("identifier mangled: %q", out)
	}
}

func TestRenderEmptyEnvelopeFails(t *testing.T) {
	if _, err := Render(&analysis.ResultEnvelope{}); err == nil {
		t.Fatal("expected error for empty envelope")
	}
	if _, err := Render(nil); err == nil {
		t.Fatal("expected error for nil envelope")
	}
}
