package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/dataset"
	"github.com/statloom/statloom-cli/internal/project"
	"github.com/statloom/statloom-cli/internal/session"
)

var projectTitle string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Save, list, and resume analysis sessions as named projects",
}

var projectSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Freeze the active session as a named project",
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
			return fmt.Errorf("no active session to save; run 'statloom upload <file>' first")
		}

		snap := project.Snapshot{
			DatasetID:    sess.DatasetID,
			RowCount:     sess.Schema.RowCount,
			Columns:      sess.Schema.Columns,
			Numeric:      sess.Schema.Numeric,
			Categorical:  sess.Schema.Categorical,
			LastAnalysis: sess.LastAnalysis,
		}
		p, err := project.NewArchive(db).Save(cmd.Context(), currentUser(), projectTitle, sess.FilePath, snap)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Saved project %q (%s)\n", p.Title, p.ID)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		projects, err := project.NewArchive(db).List(cmd.Context(), currentUser())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println("No saved projects")
			return nil
		}
		rows := [][]string{{"ID", "TITLE", "FILE", "ROWS", "SAVED"}}
		for _, p := range projects {
			rows = append(rows, []string{
				p.ID,
				p.Title,
				filepath.Base(p.FileReference),
				fmt.Sprintf("%d", p.Snapshot.RowCount),
				p.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		printRows(rows)
		return nil
	},
}

var projectLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Show a saved project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := project.NewArchive(db).Load(cmd.Context(), currentUser(), args[0])
		if err != nil {
			return err
		}
		printProject(p)
		return nil
	},
}

var projectResumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Re-open a saved project as the active session",
	Long:  `Re-profiles the project's source file and publishes it as the active session. Resuming fails if the file is gone or its column layout no longer matches the saved snapshot.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := project.NewArchive(db).Load(cmd.Context(), currentUser(), args[0])
		if err != nil {
			return err
		}

		profiler := dataset.NewProfiler(c.MaxRows, c.PreviewRows)
		sch, err := profiler.ProfileFile(p.FileReference)
		if err != nil {
			return fmt.Errorf("re-profile %s: %w", p.FileReference, err)
		}
		if !p.Snapshot.Matches(sch) {
			return fmt.Errorf("%w: %s changed shape since the project was saved; upload it again instead", project.ErrConflict, filepath.Base(p.FileReference))
		}

		s := &session.Session{
			UserID:       currentUser(),
			DatasetID:    sch.DatasetID,
			Schema:       *sch,
			FilePath:     p.FileReference,
			Origin:       currentSurface(),
			LastAnalysis: p.Snapshot.LastAnalysis,
			CreatedAt:    time.Now().UTC(),
		}
		if err := session.NewMirror(db).Publish(cmd.Context(), s); err != nil {
			return err
		}
		fmt.Printf("✓ Resumed project %q\n", p.Title)
		printSchema(sch)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := project.NewArchive(db).Delete(cmd.Context(), currentUser(), args[0]); err != nil {
			return err
		}
		fmt.Println("✓ Deleted")
		return nil
	},
}

func printProject(p *project.Project) {
	fmt.Printf("%s (%s)\n", p.Title, p.ID)
	fmt.Printf("  File: %s\n", p.FileReference)
	fmt.Printf("  Rows: %d  Columns: %d\n", p.Snapshot.RowCount, len(p.Snapshot.Columns))
	fmt.Printf("  Numeric (%d): %s\n", len(p.Snapshot.Numeric), joinOrDash(p.Snapshot.Numeric))
	fmt.Printf("  Categorical (%d): %s\n", len(p.Snapshot.Categorical), joinOrDash(p.Snapshot.Categorical))
	if p.Snapshot.LastAnalysis != "" {
		fmt.Printf("  Last analysis: %s\n", p.Snapshot.LastAnalysis)
	}
	fmt.Printf("  Saved: %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
}

func init() {
	projectSaveCmd.Flags().StringVar(&projectTitle, "title", "", "project title (required)")
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectSaveCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectLoadCmd)
	projectCmd.AddCommand(projectResumeCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
