package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/edascan/internal/dataset"
)

func correlations(t *testing.T, d *dataset.Dataset) *CorrMatrix {
	t.Helper()
	sum, err := Summarize(d)
	require.NoError(t, err)
	return Correlations(d, sum)
}

func TestCorrelationsPerfectPair(t *testing.T) {
	d := newDataset(
		dataset.Column{Name: "x", Cells: []string{"1", "2", "3", "4"}},
		dataset.Column{Name: "y", Cells: []string{"2", "4", "6", "8"}},
		dataset.Column{Name: "inv", Cells: []string{"4", "3", "2", "1"}},
	)
	m := correlations(t, d)
	require.Equal(t, []string{"x", "y", "inv"}, m.Columns)

	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9)
	assert.InDelta(t, -1.0, m.Values[0][2], 1e-9)
	for i := range m.Columns {
		assert.Equal(t, 1.0, m.Values[i][i], "diagonal")
		for j := range m.Columns {
			assert.Equal(t, m.Values[i][j], m.Values[j][i], "symmetry")
		}
	}
}

func TestCorrelationsPairwiseComplete(t *testing.T) {
	// Row 3 is missing in y and must be excluded from the (x, y) pair only.
	// The surviving (x, y) rows are perfectly linear; including the missing
	// row's x value would be impossible, and (x, z) still uses all rows.
	d := newDataset(
		dataset.Column{Name: "x", Cells: []string{"1", "2", "3", "100"}},
		dataset.Column{Name: "y", Cells: []string{"10", "20", "30", ""}},
		dataset.Column{Name: "z", Cells: []string{"1", "2", "3", "4"}},
	)
	m := correlations(t, d)
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9, "pair must drop only its own missing rows")
}

func TestCorrelationsEmptyWithoutTwoNumericColumns(t *testing.T) {
	d := newDataset(
		dataset.Column{Name: "cat", Cells: []string{"a", "b"}},
		dataset.Column{Name: "tag", Cells: []string{"x", "y"}},
	)
	m := correlations(t, d)
	assert.True(t, m.Empty())
	assert.Empty(t, m.Columns)

	single := newDataset(
		dataset.Column{Name: "x", Cells: []string{"1", "2"}},
		dataset.Column{Name: "cat", Cells: []string{"a", "b"}},
	)
	assert.True(t, correlations(t, single).Empty())
}

func TestCorrelationsConstantColumnYieldsZero(t *testing.T) {
	d := newDataset(
		dataset.Column{Name: "x", Cells: []string{"1", "2", "3"}},
		dataset.Column{Name: "flat", Cells: []string{"7", "7", "7"}},
	)
	m := correlations(t, d)
	assert.Equal(t, 0.0, m.Values[0][1], "undefined correlation collapses to 0")
}
