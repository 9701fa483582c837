package render

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/statloom/statloom-cli/internal/analysis"
)

func TestExportTableToDelimited(t *testing.T) {
	env := &analysis.ResultEnvelope{Kind: analysis.ResultTable, Table: sparseTable()}
	out, err := Export(env, FormatDelimited)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := "gender,Lagos,Abuja,Kano\n" +
		"Male,3,0,1\n" +
		"Female,0,2,0\n"
	if string(out) != want {
		t.Fatalf("csv = %q, want %q", out, want)
	}
}

func TestExportTextToDelimited(t *testing.T) {
	env := &analysis.ResultEnvelope{Kind: analysis.ResultText, Text: "Mean: 31.4\nStd: 4.2"}
	out, err := Export(env, FormatDelimited)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if string(out) != "Mean: 31.4\nStd: 4.2" {
		t.Fatalf("text export = %q", out)
	}
}

func TestExportRawVerbatimAndIdempotent(t *testing.T) {
	raw := json.RawMessage(`{"r":0.82,"p_value":0.003}`)
	env := &analysis.ResultEnvelope{Kind: analysis.ResultRaw, Raw: raw}

	first, err := Export(env, FormatDelimited)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	second, err := Export(env, FormatDelimited)
	if err != nil {
		t.Fatalf("Export again: %v", err)
	}
	if !bytes.Equal(first, []byte(raw)) {
		t.Fatalf("raw not verbatim: %q", first)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("export not idempotent: %q vs %q", first, second)
	}
}

func TestExportImageOnlyHasNothingToExport(t *testing.T) {
	env := &analysis.ResultEnvelope{Kind: analysis.ResultImage, ImageRef: "/tmp/fig.png"}
	if _, err := Export(env, FormatDelimited); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("delimited err = %v, want ErrNothingToExport", err)
	}
	if _, err := Export(env, FormatSpreadsheet); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("spreadsheet err = %v, want ErrNothingToExport", err)
	}
}

func TestExportRawHasNoSpreadsheetForm(t *testing.T) {
	env := &analysis.ResultEnvelope{Kind: analysis.ResultRaw, Raw: json.RawMessage(`{"a":1}`)}
	if _, err := Export(env, FormatSpreadsheet); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("err = %v, want ErrNothingToExport", err)
	}
}

func TestExportTableToSpreadsheet(t *testing.T) {
	env := &analysis.ResultEnvelope{Kind: analysis.ResultTable, Table: sparseTable()}
	out, err := Export(env, FormatSpreadsheet)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("open workbook zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "xl/workbook.xml", "xl/_rels/workbook.xml.rels", "xl/worksheets/sheet1.xml"} {
		if !names[want] {
			t.Fatalf("workbook missing %s: %#v", want, names)
		}
	}
	sheet := readZipEntry(t, zr, "xl/worksheets/sheet1.xml")
	if !strings.Contains(sheet, "<is><t>gender</t></is>") {
		t.Fatalf("sheet missing header cell: %s", sheet)
	}
	if !strings.Contains(sheet, `<c r="B2" t="inlineStr"><is><t>3</t></is></c>`) {
		t.Fatalf("sheet missing count cell: %s", sheet)
	}
}

func readZipEntry(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b)
	}
	t.Fatalf("entry %s not found", name)
	return ""
}

func TestParseFormatAliases(t *testing.T) {
	cases := map[string]Format{
		"csv":         FormatDelimited,
		"delimited":   FormatDelimited,
		"XLSX":        FormatSpreadsheet,
		"spreadsheet": FormatSpreadsheet,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
