package quality

import "fmt"

// Thresholds is the tunable configuration applied by the flag evaluator. The
// profiler and summarizer never see thresholds; this is the only place they
// are interpreted.
type Thresholds struct {
	// MinMissingShare marks columns as problematic for report emphasis.
	// It does not feed HasMissing, which is threshold-independent.
	MinMissingShare float64 `json:"min_missing_share"`
	// HighCardinalityUnique is the absolute distinct-value threshold for
	// categorical columns.
	HighCardinalityUnique int `json:"high_cardinality_unique"`
	// HighCardinalityShare is the distinct/total-rows ratio threshold.
	HighCardinalityShare float64 `json:"high_cardinality_share"`
}

// DefaultThresholds returns the stock configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinMissingShare:       0.2,
		HighCardinalityUnique: 50,
		HighCardinalityShare:  0.5,
	}
}

// InvalidThresholdError indicates a threshold outside its valid range.
type InvalidThresholdError struct {
	Param  string
	Reason string
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %s: %s", e.Param, e.Reason)
}

// Validate checks every threshold's range.
func (t Thresholds) Validate() error {
	if t.MinMissingShare < 0 || t.MinMissingShare > 1 {
		return &InvalidThresholdError{Param: "min_missing_share", Reason: "must be in [0..1]"}
	}
	if t.HighCardinalityUnique < 1 {
		return &InvalidThresholdError{Param: "high_cardinality_unique", Reason: "must be >= 1"}
	}
	if t.HighCardinalityShare < 0 || t.HighCardinalityShare > 1 {
		return &InvalidThresholdError{Param: "high_cardinality_share", Reason: "must be in [0..1]"}
	}
	return nil
}
