package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/edascan/internal/dataset"
)

func newDataset(cols ...dataset.Column) *dataset.Dataset {
	return &dataset.Dataset{Columns: cols}
}

func TestProfileNumericColumn(t *testing.T) {
	d := newDataset(dataset.Column{Name: "score", Cells: []string{"1", "2", "3", "4", "5", ""}})
	s := ProfileColumn(d.Columns[0], d.IsMissing)

	assert.Equal(t, KindNumeric, s.Kind)
	assert.Equal(t, 5, s.NonMissing)
	assert.Equal(t, 1, s.Missing)
	assert.InDelta(t, 1.0/6.0, s.MissingShare, 1e-12)
	assert.Equal(t, 5, s.Unique)
	require.NotNil(t, s.Numeric)
	assert.Nil(t, s.Categorical)

	n := s.Numeric
	assert.Equal(t, 1.0, n.Min)
	assert.Equal(t, 5.0, n.Max)
	assert.Equal(t, 3.0, n.Mean)
	require.NotNil(t, n.Std)
	assert.InDelta(t, math.Sqrt(2.5), *n.Std, 1e-12)
	assert.InDelta(t, 2.0, n.Q25, 1e-12)
	assert.InDelta(t, 3.0, n.Q50, 1e-12)
	assert.InDelta(t, 4.0, n.Q75, 1e-12)
}

func TestQuantileInterpolates(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 2.5, quantile(sorted, 0.5), 1e-12)
	assert.InDelta(t, 3.25, quantile(sorted, 0.75), 1e-12)
}

func TestProfileStdUndefinedForSingleValue(t *testing.T) {
	d := newDataset(dataset.Column{Name: "one", Cells: []string{"42", "", ""}})
	s := ProfileColumn(d.Columns[0], d.IsMissing)

	assert.Equal(t, KindNumeric, s.Kind)
	require.NotNil(t, s.Numeric)
	assert.Nil(t, s.Numeric.Std, "sample std of one value is undefined, not zero")
	assert.Equal(t, 42.0, s.Numeric.Min)
	assert.Equal(t, 42.0, s.Numeric.Q50)
}

func TestProfileAllMissingIsUnknown(t *testing.T) {
	d := newDataset(dataset.Column{Name: "void", Cells: []string{"", "NA", "null"}})
	s := ProfileColumn(d.Columns[0], d.IsMissing)

	assert.Equal(t, KindUnknown, s.Kind)
	assert.Equal(t, 0, s.NonMissing)
	assert.Equal(t, 3, s.Missing)
	assert.Nil(t, s.Numeric, "unknown columns carry no statistics")
	assert.Nil(t, s.Categorical)
}

func TestProfileInferenceOrder(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
		want  Kind
	}{
		{"numeric wins over boolean for 1/0", []string{"1", "0", "1"}, KindNumeric},
		{"boolean tokens", []string{"yes", "no", "YES"}, KindBoolean},
		{"datetime layouts", []string{"2024-01-02", "2024-02-03"}, KindDatetime},
		{"mixed falls back to categorical", []string{"1", "x", "2024-01-02"}, KindCategorical},
		{"numeric with missing holes", []string{"1.5", "", "2.5"}, KindNumeric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDataset(dataset.Column{Name: "c", Cells: tc.cells})
			s := ProfileColumn(d.Columns[0], d.IsMissing)
			assert.Equal(t, tc.want, s.Kind)
		})
	}
}

func TestProfileCategoricalTopTieBreak(t *testing.T) {
	d := newDataset(dataset.Column{Name: "cat", Cells: []string{"b", "a", "a", "b", "c"}})
	s := ProfileColumn(d.Columns[0], d.IsMissing)

	assert.Equal(t, KindCategorical, s.Kind)
	require.NotNil(t, s.Categorical)
	// a and b both appear twice; b appeared first.
	assert.Equal(t, "b", s.Categorical.Top)
	assert.Equal(t, 2, s.Categorical.TopCount)
	assert.InDelta(t, 0.4, s.Categorical.TopShare, 1e-12)
	assert.Equal(t, 3, s.Unique)
}

func TestMissingPlusNonMissingEqualsRows(t *testing.T) {
	d := newDataset(
		dataset.Column{Name: "a", Cells: []string{"1", "", "3", "NA"}},
		dataset.Column{Name: "b", Cells: []string{"x", "y", "", ""}},
	)
	sum, err := Summarize(d)
	require.NoError(t, err)
	for _, c := range sum.Columns {
		assert.Equal(t, d.Rows(), c.NonMissing+c.Missing, c.Name)
	}
}

func TestSummaryJSONRoundTrip(t *testing.T) {
	d := newDataset(
		dataset.Column{Name: "num", Cells: []string{"1", "2", "3"}},
		dataset.Column{Name: "cat", Cells: []string{"a", "a", "b"}},
		dataset.Column{Name: "void", Cells: []string{"", "", ""}},
	)
	sum, err := Summarize(d)
	require.NoError(t, err)

	b, err := json.Marshal(sum)
	require.NoError(t, err)
	var back DatasetSummary
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, *sum, back)
}
