package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/statloom/statloom-cli/internal/render"
)

// printRows writes aligned rows to stdout, two-space indented.
func printRows(rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprint(w, "  ")
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

// printDisplay renders a display model to the terminal.
func printDisplay(dm *render.DisplayModel) {
	switch dm.Kind {
	case render.DisplayImage:
		fmt.Printf("Figure: %s\n", dm.ImageRef)
	case render.DisplayGrid:
		printRows(append([][]string{dm.Grid.Header}, dm.Grid.Rows...))
	case render.DisplayText:
		fmt.Println(dm.Text)
	}
}
