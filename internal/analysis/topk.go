package analysis

import (
	"sort"
	"strings"

	"github.com/quantrail/edascan/internal/dataset"
)

// ValueCount is one (value, frequency) pair of a top-k table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnTopValues is the ordered top-k table for one categorical column.
type ColumnTopValues struct {
	Column string       `json:"column"`
	Values []ValueCount `json:"values"`
}

// TopCategories extracts, for up to maxColumns categorical columns in dataset
// order, the k most frequent non-missing values with counts. Ordering is by
// frequency descending, ties broken by first appearance in the column. A
// column with zero non-missing values yields an empty table, not an error.
func TopCategories(d *dataset.Dataset, sum *DatasetSummary, k, maxColumns int) []ColumnTopValues {
	out := []ColumnTopValues{}
	if k < 1 || maxColumns < 1 {
		return out
	}
	for i, cs := range sum.Columns {
		if len(out) >= maxColumns {
			break
		}
		if cs.Kind != KindCategorical || i >= len(d.Columns) {
			continue
		}
		out = append(out, ColumnTopValues{
			Column: cs.Name,
			Values: topValues(d, d.Columns[i], k),
		})
	}
	return out
}

func topValues(d *dataset.Dataset, col dataset.Column, k int) []ValueCount {
	values := make([]string, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if !d.IsMissing(cell) {
			values = append(values, strings.TrimSpace(cell))
		}
	}
	if len(values) == 0 {
		return []ValueCount{}
	}
	counts, firstSeen := tally(values)
	top := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		top = append(top, ValueCount{Value: v, Count: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count == top[j].Count {
			return firstSeen[top[i].Value] < firstSeen[top[j].Value]
		}
		return top[i].Count > top[j].Count
	})
	if len(top) > k {
		top = top[:k]
	}
	return top
}
