package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/analysis"
	"github.com/statloom/statloom-cli/internal/dataset"
	"github.com/statloom/statloom-cli/internal/render"
	"github.com/statloom/statloom-cli/internal/session"
)

var (
	analyzeVars     []string
	analyzeOpts     []string
	analyzeExport   string
	analyzeDescribe bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <type>",
	Short: "Run an analysis on the active dataset",
	Long: `Validates the selected variables against the active dataset's schema,
dispatches the computation to the compute service, and prints the result.
Supported types: ` + strings.Join(analysisTypeNames(), ", ") + `.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := analysis.ParseType(args[0])
		if err != nil {
			return err
		}
		if analyzeDescribe {
			printGuide(typ)
			return nil
		}

		options, err := parseOptions(analyzeOpts)
		if err != nil {
			return err
		}
		req := analysis.Request{Type: typ, Variables: analyzeVars, Options: options}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		mirror := session.NewMirror(db)
		sess, err := mirror.Fetch(cmd.Context(), currentUser())
		if err != nil {
			return err
		}
		if sess == nil && typ != analysis.TypeSampleSize {
			return fmt.Errorf("no active dataset; run 'statloom upload <file>' first")
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		dispatcher := analysis.NewDispatcher(engine)

		env, err := dispatcher.Dispatch(cmd.Context(), req, schemaOf(sess))
		if err != nil {
			return err
		}

		if sess != nil {
			envJSON, err := json.Marshal(env)
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			if err := mirror.RecordResult(cmd.Context(), sess.UserID, string(typ), envJSON); err != nil {
				return err
			}
		}

		dm, err := render.Render(env)
		if err != nil {
			return err
		}
		printDisplay(dm)

		if analyzeExport != "" {
			path, err := exportResult(env, analyzeExport, string(typ), time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("✓ Exported to %s\n", path)
		}
		return nil
	},
}

func schemaOf(s *session.Session) *dataset.Schema {
	if s == nil {
		return nil
	}
	return &s.Schema
}

func analysisTypeNames() []string {
	names := make([]string, 0, len(analysis.Guide))
	for t := range analysis.Guide {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

func printGuide(typ analysis.Type) {
	g, ok := analysis.Guide[typ]
	if !ok {
		fmt.Printf("No guide entry for %s\n", typ)
		return
	}
	fmt.Println(g.Name)
	fmt.Printf("  %s\n", g.Description)
	fmt.Printf("  Variables: %s\n", g.Variables)
	fmt.Printf("  Example: %s\n", g.UseCase)
}

// parseOptions turns repeated --opt key=value flags into a typed map. Values
// that parse as bool, int, or float are passed through as those types so the
// compute service sees proper JSON scalars.
func parseOptions(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid option %q (want key=value)", p)
		}
		out[k] = coerceOption(v)
	}
	return out, nil
}

func coerceOption(v string) any {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&analyzeVars, "vars", nil, "comma-separated variable selection")
	analyzeCmd.Flags().StringArrayVar(&analyzeOpts, "opt", nil, "analysis option key=value (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeExport, "export", "", "also export the result (csv or xlsx)")
	analyzeCmd.Flags().BoolVar(&analyzeDescribe, "describe", false, "describe the analysis type instead of running it")
	rootCmd.AddCommand(analyzeCmd)
}
