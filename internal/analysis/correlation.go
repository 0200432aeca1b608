package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/quantrail/edascan/internal/dataset"
)

// CorrMatrix is a symmetric Pearson correlation matrix across the numeric
// columns, 1.0 on the diagonal, row-major Values[i][j].
type CorrMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Empty reports whether the matrix covers fewer than 2 numeric columns.
func (m *CorrMatrix) Empty() bool { return len(m.Columns) < 2 }

// Correlations computes pairwise Pearson correlation across the columns the
// summary classified as numeric. Each pair uses only the rows where both
// columns are non-missing (pairwise-complete observations), so one gappy
// column does not shrink every other pair's sample. Fewer than 2 numeric
// columns yields an empty matrix, not an error.
func Correlations(d *dataset.Dataset, sum *DatasetSummary) *CorrMatrix {
	type numCol struct {
		name string
		vals []float64 // NaN marks a missing cell
	}
	var numeric []numCol
	for i, cs := range sum.Columns {
		if cs.Kind != KindNumeric || i >= len(d.Columns) {
			continue
		}
		col := d.Columns[i]
		vals := make([]float64, len(col.Cells))
		for r, cell := range col.Cells {
			if d.IsMissing(cell) {
				vals[r] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				vals[r] = math.NaN()
				continue
			}
			vals[r] = f
		}
		numeric = append(numeric, numCol{name: cs.Name, vals: vals})
	}
	if len(numeric) < 2 {
		return &CorrMatrix{}
	}

	n := len(numeric)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i := range numeric {
		m.Columns[i] = numeric[i].name
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pairwiseCorrelation(numeric[i].vals, numeric[j].vals)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairwiseCorrelation(a, b []float64) float64 {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for r := range a {
		if math.IsNaN(a[r]) || math.IsNaN(b[r]) {
			continue
		}
		xs = append(xs, a[r])
		ys = append(ys, b[r])
	}
	if len(xs) < 2 {
		return 0
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
