package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quantrail/edascan/internal/analysis"
	"github.com/quantrail/edascan/internal/dataset"
	"github.com/quantrail/edascan/internal/quality"
	"github.com/quantrail/edascan/internal/utils"
)

// Options controls report assembly.
type Options struct {
	// Title of the markdown document; empty falls back to "EDA report".
	Title string
	// TopKCategories values are kept per categorical column.
	TopKCategories int
	// MaxCatColumns caps how many categorical columns get a top-k table.
	MaxCatColumns int
	// MaxHistColumns caps how many numeric columns get a histogram.
	MaxHistColumns int
	Thresholds     quality.Thresholds
}

// DefaultOptions returns the stock report configuration.
func DefaultOptions() Options {
	return Options{
		TopKCategories: 5,
		MaxCatColumns:  5,
		MaxHistColumns: 6,
		Thresholds:     quality.DefaultThresholds(),
	}
}

// Result lists what was produced, plus the computed tables for callers that
// want to print them.
type Result struct {
	MarkdownPath string
	Artifacts    []string
	Summary      *analysis.DatasetSummary
	Missing      []analysis.MissingEntry
	Corr         *analysis.CorrMatrix
	TopCats      []analysis.ColumnTopValues
	Flags        *quality.Flags
}

// Generate runs the full analysis over d and writes the report document plus
// its side artifacts (summary.csv, missing.csv, correlation.csv,
// top_categories/*.csv) into outDir. srcName is the display name of the
// analyzed input.
func Generate(d *dataset.Dataset, srcName, outDir string, opt Options) (*Result, error) {
	sum, err := analysis.Summarize(d)
	if err != nil {
		return nil, err
	}
	missing, err := analysis.MissingTable(d)
	if err != nil {
		return nil, err
	}
	flags, err := quality.Evaluate(sum, missing, opt.Thresholds)
	if err != nil {
		return nil, err
	}
	corr := analysis.Correlations(d, sum)
	topCats := analysis.TopCategories(d, sum, opt.TopKCategories, opt.MaxCatColumns)

	if err := utils.EnsureDir(outDir); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	res := &Result{
		Summary: sum,
		Missing: missing,
		Corr:    corr,
		TopCats: topCats,
		Flags:   flags,
	}

	if err := writeCSV(filepath.Join(outDir, "summary.csv"), summaryRecords(sum)); err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, filepath.Join(outDir, "summary.csv"))

	if err := writeCSV(filepath.Join(outDir, "missing.csv"), missingRecords(missing)); err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, filepath.Join(outDir, "missing.csv"))

	if err := writeCSV(filepath.Join(outDir, "correlation.csv"), corrRecords(corr)); err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, filepath.Join(outDir, "correlation.csv"))

	topDir := filepath.Join(outDir, "top_categories")
	if err := utils.EnsureDir(topDir); err != nil {
		return nil, fmt.Errorf("create top_categories dir: %w", err)
	}
	for _, tc := range topCats {
		path := filepath.Join(topDir, safeFileName(tc.Column)+".csv")
		if err := writeCSV(path, topCatRecords(tc)); err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, path)
	}

	md := renderMarkdown(d, srcName, sum, missing, corr, topCats, flags, opt)
	mdPath := filepath.Join(outDir, "report.md")
	if err := utils.SafeWriteFile(mdPath, []byte(md)); err != nil {
		return nil, err
	}
	res.MarkdownPath = mdPath
	return res, nil
}

func renderMarkdown(d *dataset.Dataset, srcName string, sum *analysis.DatasetSummary, missing []analysis.MissingEntry, corr *analysis.CorrMatrix, topCats []analysis.ColumnTopValues, flags *quality.Flags, opt Options) string {
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "EDA report"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Source: `%s`\n", filepath.Base(srcName))
	fmt.Fprintf(&b, "Run: `%s`\n\n", uuid.NewString())
	fmt.Fprintf(&b, "Rows: **%d**, columns: **%d**\n\n", sum.NRows, sum.NCols)

	b.WriteString("## Settings\n\n")
	fmt.Fprintf(&b, "- max_hist_columns: **%d**\n", opt.MaxHistColumns)
	fmt.Fprintf(&b, "- max_cat_columns: **%d**\n", opt.MaxCatColumns)
	fmt.Fprintf(&b, "- top_k_categories: **%d**\n", opt.TopKCategories)
	fmt.Fprintf(&b, "- min_missing_share: **%.0f%%**\n", opt.Thresholds.MinMissingShare*100)
	fmt.Fprintf(&b, "- high_cardinality_unique: **%d**\n", opt.Thresholds.HighCardinalityUnique)
	fmt.Fprintf(&b, "- high_cardinality_share: **%.0f%%**\n\n", opt.Thresholds.HighCardinalityShare*100)

	b.WriteString("## Data quality\n\n")
	fmt.Fprintf(&b, "- Quality score: **%.2f**\n", flags.QualityScore)
	fmt.Fprintf(&b, "- Max missing share per column: **%.2f%%**\n", flags.MaxMissingShare*100)
	fmt.Fprintf(&b, "- Too few rows: **%v**\n", flags.TooFewRows)
	fmt.Fprintf(&b, "- Too many columns: **%v**\n", flags.TooManyColumns)
	fmt.Fprintf(&b, "- Too many missing: **%v**\n", flags.TooManyMissing)
	fmt.Fprintf(&b, "- Constant columns: **%v**\n", flags.HasConstantColumns)
	if flags.HasConstantColumns {
		fmt.Fprintf(&b, "  - `%s`\n", strings.Join(flags.ConstantColumns, "`, `"))
	}
	fmt.Fprintf(&b, "- High-cardinality categoricals: **%v**\n", flags.HasHighCardinalityCategoricals)
	fmt.Fprintf(&b, "  - high_cardinality_unique: `%d`\n", flags.HighCardinalityUnique)
	fmt.Fprintf(&b, "  - high_cardinality_share: `%g`\n", flags.HighCardinalityShare)
	if flags.HasHighCardinalityCategoricals {
		fmt.Fprintf(&b, "  - `%s`\n", strings.Join(flags.HighCardinalityColumns, "`, `"))
	}
	fmt.Fprintf(&b, "- All-missing columns: **%v**\n", flags.HasAllMissingColumns)
	if flags.HasAllMissingColumns {
		fmt.Fprintf(&b, "  - `%s`\n", strings.Join(flags.AllMissingColumns, "`, `"))
	}
	b.WriteString("\n")

	b.WriteString("## Columns\n\n")
	for _, c := range sum.Columns {
		fmt.Fprintf(&b, "- %s: %s (non-missing %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonMissing, c.MissingShare*100)
		switch {
		case c.Numeric != nil:
			n := c.Numeric
			fmt.Fprintf(&b, " — min %.4g, max %.4g, mean %.4g", n.Min, n.Max, n.Mean)
			if n.Std != nil {
				fmt.Fprintf(&b, ", std %.4g", *n.Std)
			} else {
				b.WriteString(", std n/a")
			}
			fmt.Fprintf(&b, ", q25 %.4g, q50 %.4g, q75 %.4g", n.Q25, n.Q50, n.Q75)
		case c.Categorical != nil:
			fmt.Fprintf(&b, " — unique %d, top %s (%d, %.1f%%)", c.Unique, safeVal(c.Categorical.Top), c.Categorical.TopCount, c.Categorical.TopShare*100)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nSee `summary.csv`.\n\n")

	b.WriteString("## Missing values\n\n")
	if !flags.HasMissing {
		b.WriteString("No missing values.\n\n")
	} else {
		b.WriteString("See `missing.csv`.\n\n")
		if len(flags.ProblemColumns) == 0 {
			fmt.Fprintf(&b, "No columns with missing share >= %.0f%%.\n\n", opt.Thresholds.MinMissingShare*100)
		} else {
			fmt.Fprintf(&b, "Columns with missing share >= %.0f%%:\n\n", opt.Thresholds.MinMissingShare*100)
			for _, e := range missing {
				if contains(flags.ProblemColumns, e.Column) {
					fmt.Fprintf(&b, "- `%s`: %.2f%%\n", e.Column, e.MissingShare*100)
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Correlations\n\n")
	if corr.Empty() {
		b.WriteString("Fewer than two numeric columns, nothing to correlate.\n\n")
	} else {
		b.WriteString("See `correlation.csv`. Top pairs by |r|:\n\n")
		for _, p := range topPairs(corr, 10) {
			fmt.Fprintf(&b, "- %s ~ %s: r=%.3f\n", p.a, p.b, p.r)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Top categories\n\n")
	if len(topCats) == 0 {
		b.WriteString("No categorical columns.\n\n")
	} else {
		for _, tc := range topCats {
			fmt.Fprintf(&b, "- %s: ", safeName(tc.Column))
			for i, vc := range tc.Values {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s(%d)", safeVal(vc.Value), vc.Count)
			}
			b.WriteString("\n")
		}
		b.WriteString("\nSee `top_categories/`.\n\n")
	}

	b.WriteString("## Histograms\n\n")
	wrote := 0
	for i, c := range sum.Columns {
		if wrote >= opt.MaxHistColumns {
			break
		}
		if c.Kind != analysis.KindNumeric || i >= len(d.Columns) {
			continue
		}
		vals := numericValues(d, d.Columns[i])
		if len(vals) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n```\n%s```\n\n", safeName(c.Name), textHistogram(vals, 10))
		wrote++
	}
	if wrote == 0 {
		b.WriteString("No numeric columns.\n")
	}
	return b.String()
}

type corrPair struct {
	a, b string
	r    float64
}

func topPairs(m *analysis.CorrMatrix, limit int) []corrPair {
	var pairs []corrPair
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, corrPair{a: m.Columns[i], b: m.Columns[j], r: m.Values[i][j]})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].r), math.Abs(pairs[j].r)
		if ai == aj {
			return pairs[i].a+pairs[i].b < pairs[j].a+pairs[j].b
		}
		return ai > aj
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

// textHistogram renders a fixed-width bar chart over equal-width bins.
// PNG artifacts are out of scope; a text chart keeps the report self-contained.
func textHistogram(vals []float64, bins int) string {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return fmt.Sprintf("%.4g: %s %d\n", lo, strings.Repeat("#", 20), len(vals))
	}
	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	var b strings.Builder
	for i, c := range counts {
		barLen := 0
		if maxCount > 0 {
			barLen = c * 30 / maxCount
		}
		fmt.Fprintf(&b, "[%10.4g; %10.4g) %-30s %d\n", lo+float64(i)*width, lo+float64(i+1)*width, strings.Repeat("#", barLen), c)
	}
	return b.String()
}

func numericValues(d *dataset.Dataset, col dataset.Column) []float64 {
	var out []float64
	for _, cell := range col.Cells {
		if d.IsMissing(cell) {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			out = append(out, f)
		}
	}
	return out
}

func summaryRecords(sum *analysis.DatasetSummary) [][]string {
	recs := [][]string{{
		"name", "kind", "non_missing", "missing", "missing_share", "unique",
		"min", "max", "mean", "std", "q25", "q50", "q75",
		"top", "top_count", "top_share",
	}}
	for _, c := range sum.Columns {
		rec := []string{
			c.Name, string(c.Kind),
			strconv.Itoa(c.NonMissing), strconv.Itoa(c.Missing),
			formatFloat(c.MissingShare), strconv.Itoa(c.Unique),
			"", "", "", "", "", "", "", "", "", "",
		}
		if c.Numeric != nil {
			n := c.Numeric
			rec[6] = formatFloat(n.Min)
			rec[7] = formatFloat(n.Max)
			rec[8] = formatFloat(n.Mean)
			if n.Std != nil {
				rec[9] = formatFloat(*n.Std)
			}
			rec[10] = formatFloat(n.Q25)
			rec[11] = formatFloat(n.Q50)
			rec[12] = formatFloat(n.Q75)
		}
		if c.Categorical != nil {
			rec[13] = c.Categorical.Top
			rec[14] = strconv.Itoa(c.Categorical.TopCount)
			rec[15] = formatFloat(c.Categorical.TopShare)
		}
		recs = append(recs, rec)
	}
	return recs
}

func missingRecords(missing []analysis.MissingEntry) [][]string {
	recs := [][]string{{"column", "missing_count", "missing_share"}}
	for _, e := range missing {
		recs = append(recs, []string{e.Column, strconv.Itoa(e.MissingCount), formatFloat(e.MissingShare)})
	}
	return recs
}

func corrRecords(m *analysis.CorrMatrix) [][]string {
	header := append([]string{"column"}, m.Columns...)
	recs := [][]string{header}
	for i, name := range m.Columns {
		rec := make([]string, 0, len(m.Columns)+1)
		rec = append(rec, name)
		for j := range m.Columns {
			rec = append(rec, formatFloat(m.Values[i][j]))
		}
		recs = append(recs, rec)
	}
	return recs
}

func topCatRecords(tc analysis.ColumnTopValues) [][]string {
	recs := [][]string{{"value", "count"}}
	for _, vc := range tc.Values {
		recs = append(recs, []string{vc.Value, strconv.Itoa(vc.Count)})
	}
	return recs
}

func writeCSV(path string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")

func safeFileName(s string) string {
	s = fileNameReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return "column"
	}
	return s
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
