package analysis

import "github.com/quantrail/edascan/internal/dataset"

// MissingEntry is per-column missingness accounting, in dataset column order.
type MissingEntry struct {
	Column       string  `json:"column"`
	MissingCount int     `json:"missing_count"`
	MissingShare float64 `json:"missing_share"`
}

// MissingTable computes missing count and share per column, independent of
// inferred types. A zero-row dataset yields a zero share, not a division by
// zero.
func MissingTable(d *dataset.Dataset) ([]MissingEntry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	rows := d.Rows()
	out := make([]MissingEntry, 0, d.Cols())
	for _, col := range d.Columns {
		n := 0
		for _, cell := range col.Cells {
			if d.IsMissing(cell) {
				n++
			}
		}
		e := MissingEntry{Column: col.Name, MissingCount: n}
		if rows > 0 {
			e.MissingShare = float64(n) / float64(rows)
		}
		out = append(out, e)
	}
	return out, nil
}
