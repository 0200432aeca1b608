package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantrail/edascan/internal/dataset"
)

func topCategories(t *testing.T, d *dataset.Dataset, k, maxCols int) []ColumnTopValues {
	t.Helper()
	sum, err := Summarize(d)
	require.NoError(t, err)
	return TopCategories(d, sum, k, maxCols)
}

func TestTopCategoriesTieBreakByFirstAppearance(t *testing.T) {
	d := newDataset(dataset.Column{Name: "cat", Cells: []string{"a", "a", "b", "c"}})
	out := topCategories(t, d, 2, 5)

	require.Len(t, out, 1)
	assert.Equal(t, "cat", out[0].Column)
	assert.Equal(t, []ValueCount{{Value: "a", Count: 2}, {Value: "b", Count: 1}}, out[0].Values)
}

func TestTopCategoriesColumnCap(t *testing.T) {
	d := newDataset(
		dataset.Column{Name: "c1", Cells: []string{"a", "b"}},
		dataset.Column{Name: "num", Cells: []string{"1", "2"}},
		dataset.Column{Name: "c2", Cells: []string{"x", "x"}},
		dataset.Column{Name: "c3", Cells: []string{"q", "r"}},
	)
	out := topCategories(t, d, 3, 2)

	require.Len(t, out, 2, "cap applies to categorical columns in dataset order")
	assert.Equal(t, "c1", out[0].Column)
	assert.Equal(t, "c2", out[1].Column)
}

func TestTopCategoriesSkipsNonCategorical(t *testing.T) {
	d := newDataset(
		dataset.Column{Name: "num", Cells: []string{"1", "2"}},
		dataset.Column{Name: "flag", Cells: []string{"yes", "no"}},
		dataset.Column{Name: "void", Cells: []string{"", ""}},
	)
	out := topCategories(t, d, 3, 5)
	assert.Empty(t, out, "numeric, boolean and unknown columns are not categorical")
}

func TestTopCategoriesDegenerateArguments(t *testing.T) {
	d := newDataset(dataset.Column{Name: "cat", Cells: []string{"a"}})
	assert.Empty(t, topCategories(t, d, 0, 5))
	assert.Empty(t, topCategories(t, d, 3, 0))
}

func TestTopCategoriesTruncatesToK(t *testing.T) {
	d := newDataset(dataset.Column{Name: "cat", Cells: []string{"a", "a", "a", "b", "b", "c"}})
	out := topCategories(t, d, 2, 1)
	require.Len(t, out, 1)
	require.Len(t, out[0].Values, 2)
	assert.Equal(t, "a", out[0].Values[0].Value)
	assert.Equal(t, 3, out[0].Values[0].Count)
}
