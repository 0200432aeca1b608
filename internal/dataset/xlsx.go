package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads one sheet of an .xlsx workbook into a Dataset. If sheet is
// empty the first sheet is used. The first row is the header; shorter data
// rows are padded with empty (missing) cells.
func LoadXLSX(path string, sheet string, opt LoadOptions) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &MalformedInputError{Source: path, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, &MalformedInputError{Source: path, Err: errors.New("workbook has no sheets")}
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &MalformedInputError{Source: path, Err: fmt.Errorf("sheet %q is empty, no header row", sheet)}
	}

	header := rows[0]
	ncol := len(header)
	cols := make([]Column, ncol)
	for i, h := range header {
		cols[i] = Column{Name: strings.TrimSpace(h)}
	}
	for _, rec := range rows[1:] {
		if len(rec) > ncol {
			rec = rec[:ncol]
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			cols[j].Cells = append(cols[j].Cells, v)
		}
	}

	d := &Dataset{Columns: cols, MissingTokens: opt.MissingTokens}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
