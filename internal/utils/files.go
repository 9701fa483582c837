package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// ExportFilename builds a download filename from a title, a timestamp, and
// an extension: spaces become underscores, e.g. "Crosstab_Gender_20240131_154502.csv".
func ExportFilename(title string, at time.Time, ext string) string {
	base := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	if base == "" {
		base = "export"
	}
	return fmt.Sprintf("%s_%s.%s", base, at.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}
