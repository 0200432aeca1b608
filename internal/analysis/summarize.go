package analysis

import "github.com/quantrail/edascan/internal/dataset"

// DatasetSummary is the ordered per-column summary table.
type DatasetSummary struct {
	NRows   int             `json:"n_rows"`
	NCols   int             `json:"n_cols"`
	Columns []ColumnSummary `json:"columns"`
}

// Summarize profiles every column in the Dataset's declared order. It fails
// fast on structural problems and otherwise never fails: mathematically
// undefined per-column statistics are represented as absent fields, so one
// sparse column cannot abort the rest of the table.
func Summarize(d *dataset.Dataset) (*DatasetSummary, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	sum := &DatasetSummary{
		NRows:   d.Rows(),
		NCols:   d.Cols(),
		Columns: make([]ColumnSummary, 0, d.Cols()),
	}
	for _, col := range d.Columns {
		sum.Columns = append(sum.Columns, ProfileColumn(col, d.IsMissing))
	}
	return sum, nil
}
