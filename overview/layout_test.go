package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowCount(t *testing.T) {
	g := DefaultGeometry()

	tests := []struct {
		height int
		want   int
	}{
		{0, 0},
		{10, 0},
		{22, 0},
		{32, 1},
		{100, 7},
		{522, 50},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, g.RowCount(tt.height), "height %d", tt.height)
	}
}

func TestRowCountCells(t *testing.T) {
	g := CellGeometry()
	assert.Equal(t, 0, g.RowCount(2))
	assert.Equal(t, 1, g.RowCount(3))
	assert.Equal(t, 22, g.RowCount(24))
	assert.Equal(t, 0, Geometry{}.RowCount(100), "zero line height never divides")
}

func TestPaddingTop(t *testing.T) {
	g := DefaultGeometry()
	assert.Equal(t, 0, g.PaddingTop(0))
	assert.Equal(t, 2, g.PaddingTop(1))
	assert.Equal(t, 2, g.PaddingTop(9))
}

func TestRowAt(t *testing.T) {
	g := DefaultGeometry()

	_, ok := g.RowAt(5, 3)
	assert.False(t, ok, "inside top padding")

	idx, ok := g.RowAt(10, 3)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = g.RowAt(29, 3)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = g.RowAt(40, 3)
	assert.False(t, ok, "past the last row")
}

func TestChunkSize(t *testing.T) {
	assert.Equal(t, 1, ChunkSize(4, 10))
	assert.Equal(t, 1, ChunkSize(10, 10))
	assert.Equal(t, 2, ChunkSize(11, 10))
	assert.Equal(t, 3, ChunkSize(25, 10))
	assert.Equal(t, 1, ChunkSize(25, 0))
}
