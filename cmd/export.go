package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/analysis"
	"github.com/statloom/statloom-cli/internal/render"
	"github.com/statloom/statloom-cli/internal/session"
	"github.com/statloom/statloom-cli/internal/utils"
)

var exportOutDir string

var exportCmd = &cobra.Command{
	Use:   "export <csv|xlsx>",
	Short: "Export the last analysis result to a file",
	Long:  `Serializes the most recent analysis result from the active session. Tabular results flatten to delimited or spreadsheet form; text results export as-is; raw payloads export verbatim as delimited only.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		sess, err := session.NewMirror(db).Fetch(cmd.Context(), currentUser())
		if err != nil {
			return err
		}
		if sess == nil {
			return fmt.Errorf("no active dataset; run 'statloom upload <file>' first")
		}
		if len(sess.LastResult) == 0 {
			return render.ErrNothingToExport
		}

		var env analysis.ResultEnvelope
		if err := json.Unmarshal(sess.LastResult, &env); err != nil {
			return fmt.Errorf("decode stored result: %w", err)
		}

		title := sess.LastAnalysis
		if title == "" {
			title = "export"
		}
		path, err := exportResult(&env, args[0], title, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Exported to %s\n", path)
		return nil
	},
}

// exportResult serializes the envelope and writes it under the export
// directory with a timestamped name.
func exportResult(env *analysis.ResultEnvelope, format, title string, at time.Time) (string, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return "", err
	}
	data, err := render.Export(env, f)
	if err != nil {
		return "", err
	}

	dir := exportOutDir
	if dir == "" {
		c, err := requireConfig()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(c.DataDir, "exports")
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, utils.ExportFilename(title, at, f.Ext()))
	if err := utils.SafeWriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportOutDir, "out", "", "output directory (default <data_dir>/exports)")
	rootCmd.AddCommand(exportCmd)
}
