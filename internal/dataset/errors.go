package dataset

import "fmt"

// InvalidDatasetError indicates a structural invariant violation: zero
// columns or mismatched column lengths. Analysis aborts on it outright.
type InvalidDatasetError struct {
	Reason string
}

func (e *InvalidDatasetError) Error() string {
	return fmt.Sprintf("invalid dataset: %s", e.Reason)
}

// MalformedInputError indicates raw input that could not be parsed into a
// Dataset (broken CSV quoting, ragged rows wider than the header, empty file).
type MalformedInputError struct {
	Source string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("malformed input %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("malformed input: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// UnsupportedEncodingError indicates a requested text encoding the loader
// does not know how to decode.
type UnsupportedEncodingError struct {
	Encoding string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported encoding: %s", e.Encoding)
}
