package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantrail/edascan/internal/quality"
	"github.com/quantrail/edascan/internal/utils"
)

var (
	qSep      string
	qEncoding string
	qSheet    string
	qOutput   string

	qMinMissingShare float64
	qHCUnique        int
	qHCShare         float64
)

var qualityCmd = &cobra.Command{
	Use:   "quality <file>",
	Short: "Compute dataset quality flags and print them as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := activeConfig().Thresholds()
		f := cmd.Flags()
		if f.Changed("min-missing-share") {
			t.MinMissingShare = qMinMissingShare
		}
		if f.Changed("high-cardinality-unique") {
			t.HighCardinalityUnique = qHCUnique
		}
		if f.Changed("high-cardinality-share") {
			t.HighCardinalityShare = qHCShare
		}

		d, err := loadDataset(args[0], qSep, qEncoding, qSheet)
		if err != nil {
			return err
		}
		flags, err := quality.EvaluateDataset(d, t)
		if err != nil {
			return err
		}
		b, err := utils.PrettyJSON(flags)
		if err != nil {
			return err
		}
		if qOutput != "" {
			if err := utils.SafeWriteFile(qOutput, append(b, '\n')); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote quality flags to %s\n", qOutput)
			return nil
		}
		fmt.Fprintln(os.Stdout, string(b))
		return nil
	},
}

func init() {
	qualityCmd.Flags().StringVar(&qSep, "sep", "", "CSV delimiter: ','|';'|'tab' (default: auto)")
	qualityCmd.Flags().StringVar(&qEncoding, "encoding", "utf-8", "input encoding: utf-8|latin-1|windows-1251")
	qualityCmd.Flags().StringVar(&qSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	qualityCmd.Flags().StringVar(&qOutput, "output", "", "write flags to this file instead of stdout")
	qualityCmd.Flags().Float64Var(&qMinMissingShare, "min-missing-share", 0.2, "missing share above which a column is flagged problematic (0..1)")
	qualityCmd.Flags().IntVar(&qHCUnique, "high-cardinality-unique", 50, "absolute distinct-value threshold for categoricals")
	qualityCmd.Flags().Float64Var(&qHCShare, "high-cardinality-share", 0.5, "distinct/rows ratio threshold for categoricals (0..1)")
	rootCmd.AddCommand(qualityCmd)
}
