package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/analysis"
	"github.com/statloom/statloom-cli/internal/render"
	"github.com/statloom/statloom-cli/internal/session"
)

var (
	ssMethod     string
	ssConfidence float64
	ssMargin     float64
	ssPopulation int
	ssProportion float64
)

var samplesizeCmd = &cobra.Command{
	Use:   "samplesize",
	Short: "Calculate a required sample size",
	Long:  `Runs the sample-size calculation on the compute service. Needs no uploaded dataset; the design is described entirely by flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		options := map[string]any{
			"method":           ssMethod,
			"confidence_level": ssConfidence,
			"margin_of_error":  ssMargin,
		}
		if ssPopulation > 0 {
			options["population_size"] = ssPopulation
		}
		if cmd.Flags().Changed("proportion") {
			options["proportion"] = ssProportion
		}
		req := analysis.Request{Type: analysis.TypeSampleSize, Options: options}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		env, err := analysis.NewDispatcher(engine).Dispatch(cmd.Context(), req, nil)
		if err != nil {
			return err
		}

		// Record on the session when one exists so the result stays exportable.
		if db, err := openStore(); err == nil {
			defer db.Close()
			mirror := session.NewMirror(db)
			if sess, err := mirror.Fetch(cmd.Context(), currentUser()); err == nil && sess != nil {
				if envJSON, err := json.Marshal(env); err == nil {
					_ = mirror.RecordResult(cmd.Context(), sess.UserID, string(analysis.TypeSampleSize), envJSON)
				}
			}
		}

		dm, err := render.Render(env)
		if err != nil {
			return err
		}
		printDisplay(dm)
		return nil
	},
}

func init() {
	samplesizeCmd.Flags().StringVar(&ssMethod, "method", "cochran", "calculation method (cochran, slovin, mean)")
	samplesizeCmd.Flags().Float64Var(&ssConfidence, "confidence", 0.95, "confidence level")
	samplesizeCmd.Flags().Float64Var(&ssMargin, "margin", 0.05, "margin of error")
	samplesizeCmd.Flags().IntVar(&ssPopulation, "population", 0, "finite population size (0 = infinite)")
	samplesizeCmd.Flags().Float64Var(&ssProportion, "proportion", 0.5, "expected proportion")
	rootCmd.AddCommand(samplesizeCmd)
}
