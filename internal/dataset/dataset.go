package dataset

import "strings"

// Column is a named vertical slice of a table: one raw cell per row.
// Cells are kept as the strings the loader produced; interpretation
// (numeric, boolean, ...) happens in the analysis package.
type Column struct {
	Name  string
	Cells []string
}

// Dataset is a fully materialized table: ordered named columns of equal
// length. It is read-only input to the engine and never mutated.
type Dataset struct {
	Columns []Column
	// MissingTokens are the values (case-insensitive, trimmed) treated as
	// missing markers. Empty slice means DefaultMissingTokens.
	MissingTokens []string
}

// DefaultMissingTokens mirrors what pandas-style loaders treat as NA.
// The empty string is always missing regardless of this list.
var DefaultMissingTokens = []string{"na", "n/a", "null", "none", "nan"}

// Rows returns the row count (length of the first column, 0 if no columns).
func (d *Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Cells)
}

// Cols returns the number of columns.
func (d *Dataset) Cols() int { return len(d.Columns) }

// IsMissing reports whether a raw cell matches the missing-marker predicate.
func (d *Dataset) IsMissing(cell string) bool {
	v := strings.TrimSpace(cell)
	if v == "" {
		return true
	}
	tokens := d.MissingTokens
	if len(tokens) == 0 {
		tokens = DefaultMissingTokens
	}
	v = strings.ToLower(v)
	for _, t := range tokens {
		if v == strings.ToLower(t) {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants: at least one column, and all
// columns of equal length. Violations are InvalidDatasetError.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return &InvalidDatasetError{Reason: "dataset has no columns"}
	}
	rows := len(d.Columns[0].Cells)
	for _, c := range d.Columns[1:] {
		if len(c.Cells) != rows {
			return &InvalidDatasetError{Reason: "column " + c.Name + " has a different row count"}
		}
	}
	return nil
}
