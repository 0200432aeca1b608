package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "reports", c.OutDir)
	assert.Equal(t, 5, c.TopKCategories)
	assert.Equal(t, 6, c.MaxHistColumns)
	assert.Equal(t, ":8080", c.ListenAddr)

	thr := c.Thresholds()
	assert.Equal(t, 0.2, thr.MinMissingShare)
	assert.Equal(t, 50, thr.HighCardinalityUnique)
	assert.Equal(t, 0.5, thr.HighCardinalityShare)
	require.NoError(t, thr.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Global{
		OutDir:                "out",
		TopKCategories:        3,
		MaxCatColumns:         2,
		MaxHistColumns:        4,
		MinMissingShare:       0.1,
		HighCardinalityUnique: 9,
		HighCardinalityShare:  0.4,
		MissingTokens:         []string{"-", "?"},
		ListenAddr:            ":9999",
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.OutDir, got.OutDir)
	assert.Equal(t, want.TopKCategories, got.TopKCategories)
	assert.Equal(t, want.MinMissingShare, got.MinMissingShare)
	assert.Equal(t, want.HighCardinalityUnique, got.HighCardinalityUnique)
	assert.Equal(t, want.MissingTokens, got.MissingTokens)
	assert.Equal(t, want.ListenAddr, got.ListenAddr)
}
