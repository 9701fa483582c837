package dataset_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/statloom/statloom-cli/internal/dataset"
)

// writeXLSX assembles a workbook zip from the given parts.
func writeXLSX(t *testing.T, parts map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	p := filepath.Join(t.TempDir(), "survey.xlsx")
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return p
}

const testWorkbookXML = `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Data" sheetId="1" r:id="rId1"/></sheets>
</workbook>`

const testWorkbookRels = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/data.xml"/>
</Relationships>`

const testSharedStrings = `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
<si><t>Age</t></si><si><t>City</t></si><si><t>Lagos</t></si>
</sst>`

const testSheetXML = `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2"><v>31</v></c><c r="B2" t="s"><v>2</v></c></row>
<row r="3"><c r="A3"><v>45</v></c><c r="B3" t="inlineStr"><is><t>Abuja</t></is></c></row>
</sheetData></worksheet>`

func TestReadXLSXFirstSheet(t *testing.T) {
	p := writeXLSX(t, map[string]string{
		"xl/workbook.xml":            testWorkbookXML,
		"xl/_rels/workbook.xml.rels": testWorkbookRels,
		"xl/sharedStrings.xml":       testSharedStrings,
		"xl/worksheets/data.xml":     testSheetXML,
	})
	tbl, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "Age" || tbl.Columns[1] != "City" {
		t.Fatalf("columns = %#v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %#v", tbl.Rows)
	}
	if tbl.Rows[0][0] != "31" || tbl.Rows[0][1] != "Lagos" {
		t.Fatalf("row 0 = %#v", tbl.Rows[0])
	}
	if tbl.Rows[1][1] != "Abuja" {
		t.Fatalf("row 1 = %#v", tbl.Rows[1])
	}
}

func TestReadXLSXCellsWithoutRefs(t *testing.T) {
	// The r attribute on cells is optional; such cells occupy sequential
	// columns and must not crash the reader.
	sheet := `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row><c t="s"><v>0</v></c><c t="s"><v>1</v></c></row>
<row><c><v>31</v></c><c t="inlineStr"><is><t>Abuja</t></is></c></row>
<row><c r="A3"><v>45</v></c><c t="s"><v>2</v></c></row>
</sheetData></worksheet>`
	p := writeXLSX(t, map[string]string{
		"xl/workbook.xml":            testWorkbookXML,
		"xl/_rels/workbook.xml.rels": testWorkbookRels,
		"xl/sharedStrings.xml":       testSharedStrings,
		"xl/worksheets/data.xml":     sheet,
	})
	tbl, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "Age" || tbl.Columns[1] != "City" {
		t.Fatalf("columns = %#v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %#v", tbl.Rows)
	}
	if tbl.Rows[0][0] != "31" || tbl.Rows[0][1] != "Abuja" {
		t.Fatalf("row 0 = %#v", tbl.Rows[0])
	}
	// mixed: explicit ref then a ref-less cell continuing after it
	if tbl.Rows[1][0] != "45" || tbl.Rows[1][1] != "Lagos" {
		t.Fatalf("row 1 = %#v", tbl.Rows[1])
	}
}

func TestReadXLSXNotAZip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(p, []byte("plainly not a workbook"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := dataset.ReadFile(p)
	if !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadXLSXNoHeader(t *testing.T) {
	p := writeXLSX(t, map[string]string{
		"xl/workbook.xml":            testWorkbookXML,
		"xl/_rels/workbook.xml.rels": testWorkbookRels,
		"xl/worksheets/data.xml":     `<?xml version="1.0"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData></sheetData></worksheet>`,
	})
	_, err := dataset.ReadFile(p)
	if !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Fatalf("err = %v, want ErrEmptyDataset", err)
	}
}
