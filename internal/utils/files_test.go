package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC)
	cases := []struct {
		title string
		ext   string
		want  string
	}{
		{"Crosstab Gender", "csv", "Crosstab_Gender_20240131_154502.csv"},
		{"descriptive", ".xlsx", "descriptive_20240131_154502.xlsx"},
		{"  ", "csv", "export_20240131_154502.csv"},
	}
	for _, tc := range cases {
		if got := ExportFilename(tc.title, at, tc.ext); got != tc.want {
			t.Errorf("ExportFilename(%q, %q) = %q, want %q", tc.title, tc.ext, got, tc.want)
		}
	}
}

func TestSafeWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv")
	if err := SafeWriteFile(p, []byte("a,b\n1,2\n")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "a,b\n1,2\n" {
		t.Fatalf("content = %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
	// overwrite keeps the newest content
	if err := SafeWriteFile(p, []byte("c\n")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, _ = os.ReadFile(p)
	if string(b) != "c\n" {
		t.Fatalf("content after overwrite = %q", b)
	}
}
