package quality

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/edascan/internal/analysis"
	"github.com/quantrail/edascan/internal/dataset"
)

func evalDataset(t *testing.T, d *dataset.Dataset, thr Thresholds) *Flags {
	t.Helper()
	flags, err := EvaluateDataset(d, thr)
	require.NoError(t, err)
	return flags
}

func TestConstantColumnFlag(t *testing.T) {
	constant := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "const", Cells: []string{"A", "A", "A"}},
		{Name: "num", Cells: []string{"1", "2", "3"}},
	}}
	flags := evalDataset(t, constant, DefaultThresholds())
	assert.True(t, flags.HasConstantColumns)
	assert.Equal(t, []string{"const"}, flags.ConstantColumns)

	varied := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "c", Cells: []string{"A", "B", "A"}},
	}}
	flags = evalDataset(t, varied, DefaultThresholds())
	assert.False(t, flags.HasConstantColumns)
	assert.Empty(t, flags.ConstantColumns)
}

func TestConstantDetectionIgnoresMissingCells(t *testing.T) {
	d := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "c", Cells: []string{"A", "", "A", "NA"}},
	}}
	flags := evalDataset(t, d, DefaultThresholds())
	assert.True(t, flags.HasConstantColumns, "missing cells do not break constancy")
}

func TestHighCardinalityEitherThresholdSuffices(t *testing.T) {
	// 100 rows, 50 distinct values: exceeds unique=2 and share=0.1.
	cells := make([]string, 100)
	for i := range cells {
		cells[i] = fmt.Sprintf("v%d", i%50)
	}
	d := &dataset.Dataset{Columns: []dataset.Column{{Name: "cat", Cells: cells}}}

	flags := evalDataset(t, d, Thresholds{MinMissingShare: 0.2, HighCardinalityUnique: 2, HighCardinalityShare: 0.1})
	assert.True(t, flags.HasHighCardinalityCategoricals)
	assert.Equal(t, []string{"cat"}, flags.HighCardinalityColumns)

	// Only the absolute threshold trips (50 unique > 2, share 0.5 not > 0.9).
	flags = evalDataset(t, d, Thresholds{MinMissingShare: 0.2, HighCardinalityUnique: 2, HighCardinalityShare: 0.9})
	assert.True(t, flags.HasHighCardinalityCategoricals, "absolute threshold alone must suffice")

	// Only the relative threshold trips (50 unique not > 60, share 0.5 > 0.1).
	flags = evalDataset(t, d, Thresholds{MinMissingShare: 0.2, HighCardinalityUnique: 60, HighCardinalityShare: 0.1})
	assert.True(t, flags.HasHighCardinalityCategoricals, "relative threshold alone must suffice")

	// Neither trips.
	flags = evalDataset(t, d, Thresholds{MinMissingShare: 0.2, HighCardinalityUnique: 60, HighCardinalityShare: 0.9})
	assert.False(t, flags.HasHighCardinalityCategoricals)
}

func TestHasMissingIsThresholdIndependent(t *testing.T) {
	d := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "a", Cells: []string{"1", "", "3", "4", "5", "6", "7", "8", "9", "10"}},
	}}
	thr := DefaultThresholds()
	thr.MinMissingShare = 0.9 // far above the actual 10% share
	flags := evalDataset(t, d, thr)

	assert.True(t, flags.HasMissing, "any missing at all sets has_missing")
	assert.Empty(t, flags.ProblemColumns, "min_missing_share only selects problem columns")
	assert.InDelta(t, 0.1, flags.MaxMissingShare, 1e-12)
}

func TestProblemColumns(t *testing.T) {
	d := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "bad", Cells: []string{"", "", "3", "4"}},
		{Name: "fine", Cells: []string{"1", "2", "3", ""}},
	}}
	thr := DefaultThresholds()
	thr.MinMissingShare = 0.5
	flags := evalDataset(t, d, thr)
	assert.Equal(t, []string{"bad"}, flags.ProblemColumns)
}

func TestAllMissingColumns(t *testing.T) {
	d := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "void", Cells: []string{"", "NA"}},
		{Name: "ok", Cells: []string{"1", "2"}},
	}}
	flags := evalDataset(t, d, DefaultThresholds())
	assert.True(t, flags.HasAllMissingColumns)
	assert.Equal(t, []string{"void"}, flags.AllMissingColumns)
	assert.True(t, flags.TooManyMissing)
}

func TestEvaluateEchoesThresholds(t *testing.T) {
	thr := Thresholds{MinMissingShare: 0.3, HighCardinalityUnique: 7, HighCardinalityShare: 0.25}
	d := &dataset.Dataset{Columns: []dataset.Column{{Name: "a", Cells: []string{"1", "2"}}}}
	flags := evalDataset(t, d, thr)

	assert.Equal(t, 0.3, flags.MinMissingShare)
	assert.Equal(t, 7, flags.HighCardinalityUnique)
	assert.Equal(t, 0.25, flags.HighCardinalityShare)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	d := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "const", Cells: []string{"A", "A", ""}},
		{Name: "num", Cells: []string{"1", "2", "3"}},
	}}
	sum, err := analysis.Summarize(d)
	require.NoError(t, err)
	missing, err := analysis.MissingTable(d)
	require.NoError(t, err)

	first, err := Evaluate(sum, missing, DefaultThresholds())
	require.NoError(t, err)
	second, err := Evaluate(sum, missing, DefaultThresholds())
	require.NoError(t, err)
	require.Equal(t, first, second)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2, "flag derivation must be bit-identical")
}

func TestThresholdValidation(t *testing.T) {
	cases := []struct {
		name string
		thr  Thresholds
	}{
		{"share above one", Thresholds{MinMissingShare: 0.2, HighCardinalityUnique: 50, HighCardinalityShare: 1.5}},
		{"share negative", Thresholds{MinMissingShare: 0.2, HighCardinalityUnique: 50, HighCardinalityShare: -0.1}},
		{"unique below one", Thresholds{MinMissingShare: 0.2, HighCardinalityUnique: 0, HighCardinalityShare: 0.5}},
		{"missing share above one", Thresholds{MinMissingShare: 1.2, HighCardinalityUnique: 50, HighCardinalityShare: 0.5}},
	}
	d := &dataset.Dataset{Columns: []dataset.Column{{Name: "a", Cells: []string{"1"}}}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EvaluateDataset(d, tc.thr)
			var invalid *InvalidThresholdError
			require.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestQualityScoreBounds(t *testing.T) {
	healthy := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "a", Cells: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
	}}
	flags := evalDataset(t, healthy, DefaultThresholds())
	assert.Equal(t, 1.0, flags.QualityScore)
	assert.True(t, flags.OKForModel())

	sick := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "const", Cells: []string{"A", "A"}},
		{Name: "void", Cells: []string{"", ""}},
	}}
	flags = evalDataset(t, sick, DefaultThresholds())
	assert.Less(t, flags.QualityScore, 0.5)
	assert.GreaterOrEqual(t, flags.QualityScore, 0.0)
	assert.False(t, flags.OKForModel())
}
