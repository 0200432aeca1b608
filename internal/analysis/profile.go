package analysis

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/quantrail/edascan/internal/dataset"
)

// Kind is the inferred semantic type of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindBoolean     Kind = "boolean"
	KindDatetime    Kind = "datetime"
	KindCategorical Kind = "categorical"
	KindUnknown     Kind = "unknown"
)

// NumericStats are the statistics valid only for numeric columns.
// Std is nil when fewer than 2 non-missing values exist: the sample standard
// deviation is undefined there and must not be silently zeroed.
type NumericStats struct {
	Min  float64  `json:"min"`
	Max  float64  `json:"max"`
	Mean float64  `json:"mean"`
	Std  *float64 `json:"std,omitempty"`
	Q25  float64  `json:"q25"`
	Q50  float64  `json:"q50"`
	Q75  float64  `json:"q75"`
}

// CategoricalStats are the statistics valid for categorical, boolean and
// datetime columns: distinct-value accounting over the raw cell strings.
type CategoricalStats struct {
	Top      string  `json:"top"`
	TopCount int     `json:"top_count"`
	TopShare float64 `json:"top_share"`
}

// ColumnSummary is one profiled column. Exactly one of Numeric/Categorical is
// set for the matching Kind; both are nil for unknown (all-missing) columns.
type ColumnSummary struct {
	Name         string            `json:"name"`
	Kind         Kind              `json:"kind"`
	NonMissing   int               `json:"non_missing"`
	Missing      int               `json:"missing"`
	MissingShare float64           `json:"missing_share"`
	Unique       int               `json:"unique"`
	Numeric      *NumericStats     `json:"numeric,omitempty"`
	Categorical  *CategoricalStats `json:"categorical,omitempty"`
}

// ProfileColumn infers a column's semantic type and computes its statistics.
// Missing cells are excluded from coercion attempts and statistics but
// counted separately. Inference order: numeric, then boolean, then datetime,
// then categorical; a column with no non-missing values is unknown.
func ProfileColumn(col dataset.Column, isMissing func(string) bool) ColumnSummary {
	rows := len(col.Cells)
	values := make([]string, 0, rows)
	for _, cell := range col.Cells {
		if !isMissing(cell) {
			values = append(values, strings.TrimSpace(cell))
		}
	}

	s := ColumnSummary{
		Name:       col.Name,
		NonMissing: len(values),
		Missing:    rows - len(values),
	}
	if rows > 0 {
		s.MissingShare = float64(s.Missing) / float64(rows)
	}
	if len(values) == 0 {
		s.Kind = KindUnknown
		return s
	}

	counts, firstSeen := tally(values)
	s.Unique = len(counts)

	if nums, ok := coerceNumeric(values); ok {
		s.Kind = KindNumeric
		s.Numeric = numericStats(nums)
		return s
	}
	switch {
	case coerceBoolean(values):
		s.Kind = KindBoolean
	case coerceDatetime(values):
		s.Kind = KindDatetime
	default:
		s.Kind = KindCategorical
	}
	top, count := mostFrequent(counts, firstSeen)
	s.Categorical = &CategoricalStats{
		Top:      top,
		TopCount: count,
		TopShare: float64(count) / float64(len(values)),
	}
	return s
}

// tally counts occurrences and records each value's first-appearance index.
func tally(values []string) (counts map[string]int, firstSeen map[string]int) {
	counts = make(map[string]int, len(values))
	firstSeen = make(map[string]int, len(values))
	for i, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
	}
	return counts, firstSeen
}

// mostFrequent picks the highest-count value; ties break by first appearance.
func mostFrequent(counts map[string]int, firstSeen map[string]int) (string, int) {
	best, bestCount := "", -1
	for v, c := range counts {
		if c > bestCount || (c == bestCount && firstSeen[v] < firstSeen[best]) {
			best, bestCount = v, c
		}
	}
	return best, bestCount
}

// coerceNumeric succeeds only when every non-missing value parses as a float.
func coerceNumeric(values []string) ([]float64, bool) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

var booleanTokens = map[string]struct{}{
	"true": {}, "false": {}, "t": {}, "f": {},
	"yes": {}, "no": {}, "y": {}, "n": {},
	"1": {}, "0": {},
}

// coerceBoolean succeeds only when every value is a recognized boolean token.
// Pure 1/0 columns never reach here: numeric coercion claims them first.
func coerceBoolean(values []string) bool {
	for _, v := range values {
		if _, ok := booleanTokens[strings.ToLower(v)]; !ok {
			return false
		}
	}
	return true
}

var datetimeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05",
}

// coerceDatetime succeeds only when every value matches a known layout.
func coerceDatetime(values []string) bool {
	for _, v := range values {
		ok := false
		for _, layout := range datetimeLayouts {
			if _, err := time.Parse(layout, v); err == nil {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func numericStats(nums []float64) *NumericStats {
	mn, _ := stats.Min(nums)
	mx, _ := stats.Max(nums)
	mean, _ := stats.Mean(nums)
	ns := &NumericStats{Min: mn, Max: mx, Mean: mean}
	if len(nums) >= 2 {
		if sd, err := stats.StandardDeviationSample(nums); err == nil {
			ns.Std = &sd
		}
	}
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)
	ns.Q25 = quantile(sorted, 0.25)
	ns.Q50 = quantile(sorted, 0.5)
	ns.Q75 = quantile(sorted, 0.75)
	return ns
}

// quantile interpolates linearly between order statistics of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
