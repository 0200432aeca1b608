package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/quantrail/edascan/internal/config"
	"github.com/quantrail/edascan/internal/dataset"
	"github.com/quantrail/edascan/internal/quality"
)

var (
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "edascan",
	Short: "edascan: dataset-quality analysis for CSV/XLSX tables",
	Long:  `edascan profiles tabular datasets: per-column statistics, missing-value accounting, correlations, top categories and structural quality flags, as a report on disk or a scoring service.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edascan/config.yaml)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, or built-in defaults when
// loading failed.
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	def := quality.DefaultThresholds()
	return &cfgpkg.Global{
		OutDir:                "reports",
		TopKCategories:        5,
		MaxCatColumns:         5,
		MaxHistColumns:        6,
		MinMissingShare:       def.MinMissingShare,
		HighCardinalityUnique: def.HighCardinalityUnique,
		HighCardinalityShare:  def.HighCardinalityShare,
		ListenAddr:            ":8080",
	}
}

// loadDataset materializes a CSV/TSV/XLSX file, choosing the loader by
// extension. sep accepts ","|";"|"tab"|"\t" and empty for auto-detection.
func loadDataset(path, sep, encoding, sheet string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	opt := dataset.DefaultLoadOptions()
	opt.Encoding = encoding
	opt.MissingTokens = activeConfig().MissingTokens
	switch sep {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return nil, fmt.Errorf("unsupported --sep: %s (use ','|';'|'tab')", sep)
	}
	if strings.HasSuffix(strings.ToLower(filepath.Ext(path)), ".xlsx") {
		return dataset.LoadXLSX(path, sheet, opt)
	}
	return dataset.LoadCSV(path, opt)
}
