package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/statloom/statloom-cli/internal/analysis"
	"github.com/statloom/statloom-cli/internal/utils"
)

// DisplayKind discriminates the canonical display forms.
type DisplayKind string

const (
	DisplayImage DisplayKind = "image"
	DisplayGrid  DisplayKind = "grid"
	DisplayText  DisplayKind = "text"
)

// Grid is a dense two-dimensional view of a cross-tabulation. Header holds
// the row variable name followed by the column keys; every row starts with
// its row key.
type Grid struct {
	Header []string
	Rows   [][]string
}

// DisplayModel is what a front end renders, already reduced to one of the
// three canonical forms.
type DisplayModel struct {
	Kind     DisplayKind
	ImageRef string
	Grid     *Grid
	Text     string
}

// Render converts a result envelope into a display model. Priority order:
// an image reference wins, then tabular data, then formatted text; anything
// else falls back to a structured dump of the raw payload.
func Render(env *analysis.ResultEnvelope) (*DisplayModel, error) {
	if env == nil {
		return nil, fmt.Errorf("nil result envelope")
	}
	switch {
	case env.ImageRef != "":
		return &DisplayModel{Kind: DisplayImage, ImageRef: env.ImageRef}, nil
	case env.Table != nil:
		return &DisplayModel{Kind: DisplayGrid, Grid: buildGrid(env.Table)}, nil
	case env.Text != "":
		return &DisplayModel{Kind: DisplayText, Text: CleanText(env.Text)}, nil
	case len(env.Raw) > 0:
		var v any
		if err := json.Unmarshal(env.Raw, &v); err != nil {
			return &DisplayModel{Kind: DisplayText, Text: string(env.Raw)}, nil
		}
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return nil, err
		}
		return &DisplayModel{Kind: DisplayText, Text: string(b)}, nil
	}
	return nil, fmt.Errorf("empty result envelope")
}

// buildGrid densifies a possibly sparse count table: header row is the
// column keys in first-seen order, row headers are the row keys in
// first-seen order, and absent row/column pairs render 0, never blank.
func buildGrid(t *analysis.TableData) *Grid {
	header := make([]string, 0, len(t.ColKeys)+1)
	rowVar := t.RowVariable
	if rowVar == "" {
		rowVar = "Row"
	}
	header = append(header, rowVar)
	header = append(header, t.ColKeys...)

	rows := make([][]string, 0, len(t.RowKeys))
	for _, rk := range t.RowKeys {
		row := make([]string, 0, len(t.ColKeys)+1)
		row = append(row, rk)
		for _, ck := range t.ColKeys {
			var v float64
			if m, ok := t.Counts[rk]; ok {
				v = m[ck]
			}
			row = append(row, formatCount(v))
		}
		rows = append(rows, row)
	}
	return &Grid{Header: header, Rows: rows}
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decorativeGlyphs is the fixed set stripped from formatted text before
// display; the chat surface decorates its messages with them.
var decorativeGlyphs = []string{
	"📊", "🎯", "🧪", "📝", "💡", "⚠️", "❌", "✅", "🆚", "📉", "📤", "📏", "◀️",
}

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`(?:^|[^_\w])_([^_]+)_`)
)

// CleanText strips decorative glyphs and converts the two inline markup
// forms (bold, italic) and newlines into display equivalents.
func CleanText(s string) string {
	for _, g := range decorativeGlyphs {
		s = strings.ReplaceAll(s, g, "")
	}
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "_", "")
	})
	s = strings.ReplaceAll(s, "\r\n", "\n")
	// collapse the space a stripped glyph leaves at line starts
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(strings.TrimPrefix(l, " "), " ")
	}
	return strings.Join(lines, "\n")
}
