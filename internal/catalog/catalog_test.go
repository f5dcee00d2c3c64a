package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Greater(t, c.Len(), 150)
	assert.True(t, c.IsValidName("Cam Ward, QB (Miami)"))
	assert.True(t, c.IsValidName("Travis Hunter, WR/CB (Colorado)"))
	assert.False(t, c.IsValidName("cam ward, qb (miami)"))
	assert.False(t, c.IsValidName(""))
	assert.False(t, c.IsValidName("# 2025 draft prospects offered as picks. One name per line."))
}

func TestNamesIsSortedCopy(t *testing.T) {
	c := New([]string{"Zed", "Alpha", "Mike", "Alpha", "  "})

	names := c.Names()
	assert.Equal(t, []string{"Alpha", "Mike", "Zed"}, names)

	names[0] = "changed"
	assert.True(t, c.IsValidName("Alpha"))
	assert.False(t, c.IsValidName("changed"))
	assert.Equal(t, 3, c.Len())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nPlayer One\n\n  Player Two  \nPlayer One\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Player One", "Player Two"}, c.Names())

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))
	_, err = Load(empty)
	assert.Error(t, err)
}
