package render

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/statloom/statloom-cli/internal/analysis"
)

// ErrNothingToExport is returned when the stored result has no
// file-serializable payload for the requested format.
var ErrNothingToExport = errors.New("nothing to export")

// Format names an export target.
type Format string

const (
	FormatDelimited   Format = "delimited"
	FormatSpreadsheet Format = "spreadsheet"
)

// ParseFormat accepts the canonical format names plus their common file
// extensions as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "delimited", "csv":
		return FormatDelimited, nil
	case "spreadsheet", "xlsx":
		return FormatSpreadsheet, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or xlsx)", s)
}

// Ext returns the file extension for a format.
func (f Format) Ext() string {
	if f == FormatSpreadsheet {
		return "xlsx"
	}
	return "csv"
}

// Export serializes a result envelope in the requested format. Exporting is
// read-only: calling it twice on the same envelope yields identical bytes.
func Export(env *analysis.ResultEnvelope, f Format) ([]byte, error) {
	if env == nil {
		return nil, ErrNothingToExport
	}
	switch f {
	case FormatDelimited:
		return exportDelimited(env)
	case FormatSpreadsheet:
		return exportSpreadsheet(env)
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// exportDelimited flattens tabular results to CSV, writes text as-is, and
// serializes a raw payload verbatim. An image-only result has no delimited
// form.
func exportDelimited(env *analysis.ResultEnvelope) ([]byte, error) {
	switch {
	case env.Table != nil:
		g := buildGrid(env.Table)
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(g.Header); err != nil {
			return nil, fmt.Errorf("write csv header: %w", err)
		}
		for _, row := range g.Rows {
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case env.Text != "":
		return []byte(env.Text), nil
	case len(env.Raw) > 0:
		out := make([]byte, len(env.Raw))
		copy(out, env.Raw)
		return out, nil
	}
	return nil, ErrNothingToExport
}

// exportSpreadsheet builds a single-sheet workbook. Only tabular and text
// results have a spreadsheet form.
func exportSpreadsheet(env *analysis.ResultEnvelope) ([]byte, error) {
	switch {
	case env.Table != nil:
		g := buildGrid(env.Table)
		rows := make([][]string, 0, len(g.Rows)+1)
		rows = append(rows, g.Header)
		rows = append(rows, g.Rows...)
		return writeWorkbook(rows)
	case env.Text != "":
		lines := strings.Split(CleanText(env.Text), "\n")
		rows := make([][]string, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, []string{l})
		}
		return writeWorkbook(rows)
	}
	return nil, ErrNothingToExport
}

// writeWorkbook emits a minimal office container: content types, package
// rels, one workbook, one worksheet with inline strings.
func writeWorkbook(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"xl/workbook.xml", workbookXML},
		{"xl/_rels/workbook.xml.rels", workbookRelsXML},
		{"xl/worksheets/sheet1.xml", sheetXML(rows)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
	`<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>` +
	`</Relationships>`

const workbookXML = xml.Header +
	`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
	`<sheets><sheet name="Result" sheetId="1" r:id="rId1"/></sheets>` +
	`</workbook>`

const workbookRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>` +
	`</Relationships>`

func sheetXML(rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
	for i, row := range rows {
		fmt.Fprintf(&sb, `<row r="%d">`, i+1)
		for j, cell := range row {
			fmt.Fprintf(&sb, `<c r="%s%d" t="inlineStr"><is><t>%s</t></is></c>`, columnRef(j), i+1, escapeXML(cell))
		}
		sb.WriteString(`</row>`)
	}
	sb.WriteString(`</sheetData></worksheet>`)
	return sb.String()
}

// columnRef converts a zero-based column index to its A1-style letters.
func columnRef(idx int) string {
	ref := ""
	for idx >= 0 {
		ref = string(rune('A'+idx%26)) + ref
		idx = idx/26 - 1
	}
	return ref
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
