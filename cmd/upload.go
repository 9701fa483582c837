package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/dataset"
	"github.com/statloom/statloom-cli/internal/session"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Profile a dataset file and make it the active session",
	Long:  `Reads a CSV, TSV, or XLSX file, infers a column type for every column, and publishes the result as the user's active session. A failed upload leaves any previous session untouched.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}

		profiler := dataset.NewProfiler(c.MaxRows, c.PreviewRows)
		sch, err := profiler.ProfileFile(path)
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		mirror := session.NewMirror(db)
		s := &session.Session{
			UserID:    currentUser(),
			DatasetID: sch.DatasetID,
			Schema:    *sch,
			FilePath:  path,
			Origin:    currentSurface(),
			CreatedAt: time.Now().UTC(),
		}
		if err := mirror.Publish(cmd.Context(), s); err != nil {
			return err
		}

		fmt.Printf("✓ Uploaded %s\n", filepath.Base(path))
		printSchema(sch)
		return nil
	},
}

func printSchema(sch *dataset.Schema) {
	fmt.Printf("  Rows: %d  Columns: %d\n", sch.RowCount, len(sch.Columns))
	fmt.Printf("  Numeric (%d): %s\n", len(sch.Numeric), joinOrDash(sch.Numeric))
	fmt.Printf("  Categorical (%d): %s\n", len(sch.Categorical), joinOrDash(sch.Categorical))
	if other := unclassified(sch); len(other) > 0 {
		fmt.Printf("  Unclassified (%d): %s\n", len(other), strings.Join(other, ", "))
	}
	if len(sch.Preview) > 0 {
		fmt.Println("  Preview:")
		printRows(append([][]string{sch.Columns}, sch.Preview...))
	}
}

func unclassified(sch *dataset.Schema) []string {
	var out []string
	for _, col := range sch.Columns {
		if !sch.IsNumeric(col) && !sch.IsCategorical(col) {
			out = append(out, col)
		}
	}
	return out
}

func joinOrDash(cols []string) string {
	if len(cols) == 0 {
		return "-"
	}
	return strings.Join(cols, ", ")
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
