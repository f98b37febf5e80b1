package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsPerRow(t *testing.T) {
	tests := []struct {
		name           string
		containerWidth int
		itemWidth      int
		gap            int
		want           int
	}{
		{name: "ReferenceGeometry", containerWidth: 1000, itemWidth: 200, gap: 8, want: 4},
		{name: "ExactFit", containerWidth: 616, itemWidth: 200, gap: 8, want: 3},
		{name: "NarrowerThanOneItem", containerWidth: 100, itemWidth: 200, gap: 8, want: 1},
		{name: "ZeroWidth", containerWidth: 0, itemWidth: 200, gap: 8, want: 1},
		{name: "NoGap", containerWidth: 100, itemWidth: 25, gap: 0, want: 4},
		{name: "GapShrinksCapacity", containerWidth: 100, itemWidth: 25, gap: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemsPerRow(tt.containerWidth, tt.itemWidth, tt.gap))
		})
	}
}

func TestChunk(t *testing.T) {
	items := intItems(10)

	t.Run("RowMajorWithRemainder", func(t *testing.T) {
		rows := Chunk(items, 4)
		require.Len(t, rows, 3)
		assert.Equal(t, []int{0, 1, 2, 3}, rows[0])
		assert.Equal(t, []int{4, 5, 6, 7}, rows[1])
		assert.Equal(t, []int{8, 9}, rows[2])
	})

	t.Run("ExactMultiple", func(t *testing.T) {
		rows := Chunk(intItems(8), 4)
		require.Len(t, rows, 2)
		assert.Len(t, rows[0], 4)
		assert.Len(t, rows[1], 4)
	})

	t.Run("Empty", func(t *testing.T) {
		rows := Chunk([]int{}, 4)
		assert.Empty(t, rows)
	})

	t.Run("PerRowBelowOneIsClamped", func(t *testing.T) {
		rows := Chunk(intItems(3), 0)
		require.Len(t, rows, 3)
		assert.Equal(t, []int{0}, rows[0])
	})

	t.Run("SingleRow", func(t *testing.T) {
		rows := Chunk(intItems(3), 10)
		require.Len(t, rows, 1)
		assert.Len(t, rows[0], 3)
	})
}

func TestNewGrid_Validation(t *testing.T) {
	_, err := NewGrid[int](0, 8, 3)
	require.ErrorIs(t, err, ErrItemWidth)

	_, err = NewGrid[int](200, -1, 3)
	require.ErrorIs(t, err, ErrGap)

	_, err = NewGrid[int](200, 8, 0)
	require.ErrorIs(t, err, ErrFallbackPerRow)
}

func TestGrid_FallbackBeforeFirstResize(t *testing.T) {
	grid, err := NewGrid[int](200, 8, 3)
	require.NoError(t, err)

	// No width observation yet: the configured fallback applies.
	assert.Equal(t, 3, grid.PerRow())

	rows := grid.Rows(intItems(7))
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[2], 1)
}

func TestGrid_RechunksOnResize(t *testing.T) {
	grid, err := NewGrid[int](200, 8, 3)
	require.NoError(t, err)
	items := intItems(10)

	grid.SetWidth(1000)
	assert.Equal(t, 4, grid.PerRow())
	rows := grid.Rows(items)
	require.Len(t, rows, 3)
	assert.Len(t, rows[2], 2)

	grid.SetWidth(420)
	assert.Equal(t, 2, grid.PerRow())
	rows = grid.Rows(items)
	require.Len(t, rows, 5)
	assert.Len(t, rows[4], 2)

	// Width can only shrink to the one-item floor, never zero.
	grid.SetWidth(50)
	assert.Equal(t, 1, grid.PerRow())
}

func TestGrid_NegativeWidthTreatedAsUnobserved(t *testing.T) {
	grid, err := NewGrid[int](200, 8, 5)
	require.NoError(t, err)

	grid.SetWidth(-10)
	assert.Equal(t, 5, grid.PerRow())
}

func TestGrid_Accessors(t *testing.T) {
	grid, err := NewGrid[int](200, 8, 3)
	require.NoError(t, err)
	assert.Equal(t, 200, grid.ItemWidth())
	assert.Equal(t, 8, grid.Gap())
}
