package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/analysis"
)

var guideCmd = &cobra.Command{
	Use:   "guide [type]",
	Short: "Explain the available analysis types",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			typ, err := analysis.ParseType(args[0])
			if err != nil {
				return err
			}
			printGuide(typ)
			return nil
		}
		for i, name := range analysisTypeNames() {
			if i > 0 {
				fmt.Println()
			}
			g := analysis.Guide[analysis.Type(name)]
			fmt.Printf("%s — %s\n", name, g.Name)
			fmt.Printf("  %s\n", g.Description)
			fmt.Printf("  Variables: %s\n", g.Variables)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
