package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// LoadOptions controls how raw tabular input is materialized into a Dataset.
type LoadOptions struct {
	// Delimiter for CSV. If 0, auto-detects from the file name (.tsv => tab).
	Delimiter rune
	// Encoding of the input text: "utf-8" (default), "latin-1", "windows-1251".
	Encoding string
	// MissingTokens overrides DefaultMissingTokens on the produced Dataset.
	MissingTokens []string
}

// DefaultLoadOptions returns the loader defaults (comma, UTF-8).
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Delimiter: 0, Encoding: "utf-8"}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCSV reads a CSV/TSV file into a Dataset. The first record is the
// header; shorter data records are padded with empty (missing) cells, records
// wider than the header are malformed input.
func LoadCSV(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	o := opt
	o.Delimiter = delim
	return LoadCSVReader(f, path, o)
}

// LoadCSVReader reads CSV content from r. name is used in error messages only.
func LoadCSVReader(r io.Reader, name string, opt LoadOptions) (*Dataset, error) {
	dr, err := decodeReader(r, opt.Encoding)
	if err != nil {
		return nil, err
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	cr := csv.NewReader(dr)
	cr.Comma = delim
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedInputError{Source: name, Err: errors.New("empty input, no header row")}
		}
		return nil, &MalformedInputError{Source: name, Err: err}
	}
	ncol := len(header)
	cols := make([]Column, ncol)
	for i, h := range header {
		cols[i] = Column{Name: strings.TrimSpace(h)}
	}

	row := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &MalformedInputError{Source: name, Err: fmt.Errorf("row %d: %w", row+1, err)}
		}
		row++
		if len(rec) > ncol {
			return nil, &MalformedInputError{Source: name, Err: fmt.Errorf("row %d has %d fields, header has %d", row, len(rec), ncol)}
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

// decodeReader wraps r with a charset decoder. UTF-8 input has a leading BOM
// stripped if present.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		br := bufio.NewReader(r)
		head, err := br.Peek(len(utf8BOM))
		if err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = br.Discard(len(utf8BOM))
		}
		return br, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(r), nil
	default:
		return nil, &UnsupportedEncodingError{Encoding: encoding}
	}
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
