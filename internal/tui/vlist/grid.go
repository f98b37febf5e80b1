package vlist

import (
	"errors"
	"fmt"
)

// Grid geometry errors.
var (
	ErrItemWidth      = errors.New("item width must be positive")
	ErrGap            = errors.New("gap must not be negative")
	ErrFallbackPerRow = errors.New("fallback items per row must be positive")
)

// ItemsPerRow returns how many fixed-width items fit in a row:
// floor((containerWidth+gap)/(itemWidth+gap)), never less than one.
func ItemsPerRow(containerWidth, itemWidth, gap int) int {
	if itemWidth+gap <= 0 {
		return 1
	}
	perRow := (containerWidth + gap) / (itemWidth + gap)
	if perRow < 1 {
		return 1
	}
	return perRow
}

// Chunk splits items into row-major groups of perRow. Each group becomes
// ONE item for the windowing engine: grids window over rows, not cells.
// The final group holds the remainder.
func Chunk[T any](items []T, perRow int) [][]T {
	if perRow < 1 {
		perRow = 1
	}

	rows := make([][]T, 0, (len(items)+perRow-1)/perRow)
	for start := 0; start < len(items); start += perRow {
		end := start + perRow
		if end > len(items) {
			end = len(items)
		}
		rows = append(rows, items[start:end:end])
	}
	return rows
}

// Grid lays fixed-width cards into rows that track the container width.
// Every resize recomputes the row shape; before any width has been
// observed the configured fallback applies, so a grid can render without
// a size event.
type Grid[T any] struct {
	itemWidth      int
	gap            int
	fallbackPerRow int

	// width is the last observed container width; 0 means none yet.
	width int
}

// NewGrid validates the card geometry.
func NewGrid[T any](itemWidth, gap, fallbackPerRow int) (*Grid[T], error) {
	if itemWidth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrItemWidth, itemWidth)
	}
	if gap < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrGap, gap)
	}
	if fallbackPerRow < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrFallbackPerRow, fallbackPerRow)
	}

	return &Grid[T]{
		itemWidth:      itemWidth,
		gap:            gap,
		fallbackPerRow: fallbackPerRow,
	}, nil
}

// SetWidth records a container width observation.
func (g *Grid[T]) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	g.width = width
}

// PerRow returns the current row capacity: the fallback until a width has
// been observed, the computed capacity afterwards.
func (g *Grid[T]) PerRow() int {
	if g.width == 0 {
		return g.fallbackPerRow
	}
	return ItemsPerRow(g.width, g.itemWidth, g.gap)
}

// Rows chunks items by the current row capacity.
func (g *Grid[T]) Rows(items []T) [][]T {
	return Chunk(items, g.PerRow())
}

// ItemWidth returns the card width the grid was built with.
func (g *Grid[T]) ItemWidth() int {
	return g.itemWidth
}

// Gap returns the spacing between cards.
func (g *Grid[T]) Gap() int {
	return g.gap
}
