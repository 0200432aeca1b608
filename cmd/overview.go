package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quantrail/edascan/internal/analysis"
)

var (
	ovSep      string
	ovEncoding string
	ovSheet    string
)

var overviewCmd = &cobra.Command{
	Use:   "overview <file>",
	Short: "Print a short dataset overview: sizes, types, per-column table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset(args[0], ovSep, ovEncoding, ovSheet)
		if err != nil {
			return err
		}
		sum, err := analysis.Summarize(d)
		if err != nil {
			return err
		}

		fmt.Printf("Rows: %d\n", sum.NRows)
		fmt.Printf("Columns: %d\n\n", sum.NCols)

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tNON-MISSING\tMISSING %\tUNIQUE\tDETAIL")
		for _, c := range sum.Columns {
			detail := ""
			switch {
			case c.Numeric != nil:
				detail = fmt.Sprintf("mean %.4g [%.4g; %.4g]", c.Numeric.Mean, c.Numeric.Min, c.Numeric.Max)
			case c.Categorical != nil:
				detail = fmt.Sprintf("top %q (%d)", c.Categorical.Top, c.Categorical.TopCount)
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%d\t%s\n",
				c.Name, c.Kind, c.NonMissing, c.MissingShare*100, c.Unique, detail)
		}
		return w.Flush()
	},
}

func init() {
	overviewCmd.Flags().StringVar(&ovSep, "sep", "", "CSV delimiter: ','|';'|'tab' (default: auto)")
	overviewCmd.Flags().StringVar(&ovEncoding, "encoding", "utf-8", "input encoding: utf-8|latin-1|windows-1251")
	overviewCmd.Flags().StringVar(&ovSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	rootCmd.AddCommand(overviewCmd)
}
