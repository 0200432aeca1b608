package quality

import (
	"github.com/quantrail/edascan/internal/analysis"
	"github.com/quantrail/edascan/internal/dataset"
)

// Row/column scale heuristics used by the coarse dataset-health signals.
const (
	minUsableRows      = 10
	maxUsableColumns   = 100
	maxTolerableMissed = 0.5
)

// Flags is the derived dataset-health record. It is a pure function of
// (summary, missing table, thresholds): same inputs, bit-identical output.
// The thresholds actually applied are echoed so a caller can audit which
// configuration produced a given flag set.
type Flags struct {
	HasMissing                     bool     `json:"has_missing"`
	HasConstantColumns             bool     `json:"has_constant_columns"`
	ConstantColumns                []string `json:"constant_columns"`
	HasHighCardinalityCategoricals bool     `json:"has_high_cardinality_categoricals"`
	HighCardinalityColumns         []string `json:"high_cardinality_columns"`
	HasAllMissingColumns           bool     `json:"has_all_missing_columns"`
	AllMissingColumns              []string `json:"all_missing_columns"`
	ProblemColumns                 []string `json:"problem_columns"`

	MaxMissingShare float64 `json:"max_missing_share"`
	TooFewRows      bool    `json:"too_few_rows"`
	TooManyColumns  bool    `json:"too_many_columns"`
	TooManyMissing  bool    `json:"too_many_missing"`
	QualityScore    float64 `json:"quality_score"`

	// Echoed configuration.
	MinMissingShare       float64 `json:"min_missing_share"`
	HighCardinalityUnique int     `json:"high_cardinality_unique"`
	HighCardinalityShare  float64 `json:"high_cardinality_share"`
}

// OKForModel is the service-layer verdict: healthy enough to feed a model.
func (f *Flags) OKForModel() bool {
	return f.QualityScore >= 0.5 && !f.TooManyMissing
}

// Evaluate derives the quality flags from an already-computed summary and
// missing table. This is the low-latency path: no raw dataset is needed.
func Evaluate(sum *analysis.DatasetSummary, missing []analysis.MissingEntry, t Thresholds) (*Flags, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	f := &Flags{
		ConstantColumns:        []string{},
		HighCardinalityColumns: []string{},
		AllMissingColumns:      []string{},
		ProblemColumns:         []string{},
		MinMissingShare:        t.MinMissingShare,
		HighCardinalityUnique:  t.HighCardinalityUnique,
		HighCardinalityShare:   t.HighCardinalityShare,
	}

	for _, e := range missing {
		if e.MissingShare > 0 {
			f.HasMissing = true
		}
		if e.MissingShare > f.MaxMissingShare {
			f.MaxMissingShare = e.MissingShare
		}
		if e.MissingShare >= t.MinMissingShare && e.MissingShare > 0 {
			f.ProblemColumns = append(f.ProblemColumns, e.Column)
		}
	}

	for _, c := range sum.Columns {
		if c.NonMissing > 0 && c.Unique == 1 {
			f.ConstantColumns = append(f.ConstantColumns, c.Name)
		}
		if c.NonMissing == 0 && c.Missing > 0 {
			f.AllMissingColumns = append(f.AllMissingColumns, c.Name)
		}
		if c.Kind != analysis.KindCategorical {
			continue
		}
		// Either absolute or relative cardinality alone disqualifies a
		// categorical column from one-hot style processing, hence OR.
		high := c.Unique > t.HighCardinalityUnique
		if sum.NRows > 0 && float64(c.Unique)/float64(sum.NRows) > t.HighCardinalityShare {
			high = true
		}
		if high {
			f.HighCardinalityColumns = append(f.HighCardinalityColumns, c.Name)
		}
	}
	f.HasConstantColumns = len(f.ConstantColumns) > 0
	f.HasHighCardinalityCategoricals = len(f.HighCardinalityColumns) > 0
	f.HasAllMissingColumns = len(f.AllMissingColumns) > 0

	f.TooFewRows = sum.NRows < minUsableRows
	f.TooManyColumns = sum.NCols > maxUsableColumns
	f.TooManyMissing = f.MaxMissingShare > maxTolerableMissed
	f.QualityScore = score(f)
	return f, nil
}

// EvaluateDataset derives the quality flags directly from a raw Dataset,
// computing the summary and missing table internally first.
func EvaluateDataset(d *dataset.Dataset, t Thresholds) (*Flags, error) {
	sum, err := analysis.Summarize(d)
	if err != nil {
		return nil, err
	}
	missing, err := analysis.MissingTable(d)
	if err != nil {
		return nil, err
	}
	return Evaluate(sum, missing, t)
}

// score is a deterministic penalty model over the structural signals,
// clamped to [0..1].
func score(f *Flags) float64 {
	s := 1.0
	if f.TooFewRows {
		s -= 0.25
	}
	if f.TooManyColumns {
		s -= 0.15
	}
	if f.TooManyMissing {
		s -= 0.30
	}
	if f.HasConstantColumns {
		s -= 0.15
	}
	if f.HasHighCardinalityCategoricals {
		s -= 0.15
	}
	if s < 0 {
		s = 0
	}
	return s
}
