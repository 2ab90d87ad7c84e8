package sgf

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bodgit/sgf/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer c.Close()

	e, err := c.Lookup("0123", "zlib")
	require.NoError(t, err)
	assert.Nil(t, e)

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	first := &Entry{
		Path:       "first.png",
		SHA1:       "0123",
		Params:     "zlib",
		Width:      3,
		Height:     2,
		Colors:     2,
		Order:      scan.ColumnMajor,
		SourceSize: 100,
		Size:       4,
		Duration:   3 * time.Millisecond,
		Data:       []byte{1, 2, 3, 4},
	}
	require.NoError(t, c.Add(first))

	// Same digest, different data; the stored image wins
	second := *first
	second.Path = "second.png"
	second.Data = []byte{9}
	require.NoError(t, c.Add(&second))

	e, err = c.Lookup("0123", "zlib")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, []byte{1, 2, 3, 4}, e.Data)
	assert.Equal(t, 3*time.Millisecond, e.Duration)
	assert.Equal(t, scan.ColumnMajor, e.Order)
	assert.Equal(t, 4, e.Size)
	assert.Equal(t, 4.0, e.Ratio())

	entries, err = c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first.png", entries[0].Path)
	assert.Equal(t, "second.png", entries[1].Path)
	assert.Equal(t, 4, entries[1].Size)
	assert.Equal(t, "zlib", entries[1].Params)
	assert.Equal(t, 3*time.Millisecond, entries[1].Duration)
	assert.Nil(t, entries[1].Data)

	// Re-adding a path points it at the new image
	third := *first
	third.SHA1 = "4567"
	third.Data = []byte{5, 6}
	third.Path = "first.png"
	require.NoError(t, c.Add(&third))

	entries, err = c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "4567", entries[0].SHA1)
	assert.Equal(t, 2, entries[0].Size)
}

func TestCatalogParams(t *testing.T) {
	c, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer c.Close()

	zlib := &Entry{Path: "a.png", SHA1: "0123", Params: "zlib", Data: []byte{1}}
	require.NoError(t, c.Add(zlib))

	// The same source encoded differently is a separate image
	e, err := c.Lookup("0123", "zstd")
	require.NoError(t, err)
	assert.Nil(t, e)

	zstd := &Entry{Path: "a.png", SHA1: "0123", Params: "zstd", Data: []byte{2, 2}}
	require.NoError(t, c.Add(zstd))

	for _, want := range []*Entry{zlib, zstd} {
		e, err := c.Lookup(want.SHA1, want.Params)
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, want.Data, e.Data)
	}

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "zstd", entries[0].Params)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, (&Entry{Size: 10}).Ratio())
	assert.Equal(t, 50.0, (&Entry{Size: 10, SourceSize: 20}).Ratio())
}
