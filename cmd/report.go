package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantrail/edascan/internal/report"
)

var (
	repOutDir   string
	repSep      string
	repEncoding string
	repSheet    string
	repTitle    string

	repMinMissingShare float64
	repTopK            int
	repMaxCatColumns   int
	repMaxHistColumns  int
	repHCUnique        int
	repHCShare         float64
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Generate a full EDA report: markdown, tables, quality flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()

		opt := report.DefaultOptions()
		opt.Title = repTitle
		opt.TopKCategories = c.TopKCategories
		opt.MaxCatColumns = c.MaxCatColumns
		opt.MaxHistColumns = c.MaxHistColumns
		opt.Thresholds = c.Thresholds()
		outDir := c.OutDir

		f := cmd.Flags()
		if f.Changed("out-dir") {
			outDir = repOutDir
		}
		if f.Changed("top-k-categories") {
			opt.TopKCategories = repTopK
		}
		if f.Changed("max-cat-columns") {
			opt.MaxCatColumns = repMaxCatColumns
		}
		if f.Changed("max-hist-columns") {
			opt.MaxHistColumns = repMaxHistColumns
		}
		if f.Changed("min-missing-share") {
			opt.Thresholds.MinMissingShare = repMinMissingShare
		}
		if f.Changed("high-cardinality-unique") {
			opt.Thresholds.HighCardinalityUnique = repHCUnique
		}
		if f.Changed("high-cardinality-share") {
			opt.Thresholds.HighCardinalityShare = repHCShare
		}

		if opt.TopKCategories < 1 {
			return fmt.Errorf("--top-k-categories must be >= 1")
		}
		if opt.MaxCatColumns < 0 {
			return fmt.Errorf("--max-cat-columns must be >= 0")
		}
		if opt.MaxHistColumns < 0 {
			return fmt.Errorf("--max-hist-columns must be >= 0")
		}
		if err := opt.Thresholds.Validate(); err != nil {
			return err
		}

		d, err := loadDataset(args[0], repSep, repEncoding, repSheet)
		if err != nil {
			return err
		}
		res, err := report.Generate(d, args[0], outDir, opt)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Report generated in %s\n", outDir)
		fmt.Printf("- Markdown: %s\n", res.MarkdownPath)
		fmt.Println("- Tables: summary.csv, missing.csv, correlation.csv, top_categories/*.csv")
		fmt.Printf("- Quality score: %.2f\n", res.Flags.QualityScore)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&repOutDir, "out-dir", "reports", "output directory for the report")
	reportCmd.Flags().StringVar(&repSep, "sep", "", "CSV delimiter: ','|';'|'tab' (default: auto)")
	reportCmd.Flags().StringVar(&repEncoding, "encoding", "utf-8", "input encoding: utf-8|latin-1|windows-1251")
	reportCmd.Flags().StringVar(&repSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	reportCmd.Flags().StringVar(&repTitle, "title", "", "report title")
	reportCmd.Flags().Float64Var(&repMinMissingShare, "min-missing-share", 0.2, "missing share above which a column is flagged problematic (0..1)")
	reportCmd.Flags().IntVar(&repTopK, "top-k-categories", 5, "how many top values to keep per categorical column")
	reportCmd.Flags().IntVar(&repMaxCatColumns, "max-cat-columns", 5, "how many categorical columns to analyze")
	reportCmd.Flags().IntVar(&repMaxHistColumns, "max-hist-columns", 6, "how many numeric columns get a histogram")
	reportCmd.Flags().IntVar(&repHCUnique, "high-cardinality-unique", 50, "absolute distinct-value threshold for categoricals")
	reportCmd.Flags().Float64Var(&repHCShare, "high-cardinality-share", 0.5, "distinct/rows ratio threshold for categoricals (0..1)")
	rootCmd.AddCommand(reportCmd)
}
