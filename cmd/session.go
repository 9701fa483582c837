package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or reset the active analysis session",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active session",
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
			fmt.Println("No active session")
			return nil
		}
		fmt.Printf("Dataset: %s (%s)\n", filepath.Base(sess.FilePath), sess.DatasetID)
		fmt.Printf("  Origin: %s  Created: %s\n", sess.Origin, sess.CreatedAt.Format("2006-01-02 15:04:05"))
		printSchema(&sess.Schema)
		if sess.LastAnalysis != "" {
			fmt.Printf("  Last analysis: %s\n", sess.LastAnalysis)
		}
		return nil
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := session.NewMirror(db).Reset(cmd.Context(), currentUser()); err != nil {
			return err
		}
		fmt.Println("✓ Session reset")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionResetCmd)
}
