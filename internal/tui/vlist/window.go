// Package vlist implements windowed list rendering for large datasets:
// range math over a scroll offset, a generic Bubble Tea list model that
// materializes only the visible items plus a buffer, an infinite-load
// gate, and table/grid adapters that project structured data into the
// list. All views in the cot TUI render through this package.
package vlist

import (
	"errors"
	"fmt"
)

// DefaultBufferSize is the number of extra items rendered above and below
// the viewport for smooth scrolling.
const DefaultBufferSize = 5

// Geometry validation errors. Invalid geometry is a construction error,
// never a silent fallback.
var (
	ErrItemHeight     = errors.New("item height must be positive")
	ErrViewportHeight = errors.New("viewport height must be positive")
	ErrBufferSize     = errors.New("buffer size must not be negative")
)

// Params fixes the geometry of a windowed list: how tall one item is, how
// tall the viewport is, and how many extra items to materialize on each
// side. Heights share one unit (terminal rows).
type Params struct {
	ItemHeight     int
	ViewportHeight int
	BufferSize     int
}

// NewParams validates the geometry up front.
func NewParams(itemHeight, viewportHeight, bufferSize int) (Params, error) {
	p := Params{
		ItemHeight:     itemHeight,
		ViewportHeight: viewportHeight,
		BufferSize:     bufferSize,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate reports the first geometry violation.
func (p Params) Validate() error {
	if p.ItemHeight <= 0 {
		return fmt.Errorf("%w: got %d", ErrItemHeight, p.ItemHeight)
	}
	if p.ViewportHeight <= 0 {
		return fmt.Errorf("%w: got %d", ErrViewportHeight, p.ViewportHeight)
	}
	if p.BufferSize < 0 {
		return fmt.Errorf("%w: got %d", ErrBufferSize, p.BufferSize)
	}
	return nil
}

// Window is the inclusive index range of materialized items. For a
// non-empty dataset 0 <= Start <= End <= n-1 always holds.
type Window struct {
	Start int
	End   int
}

// Len returns the number of items inside the window.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Contains reports whether index i falls inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i <= w.End
}

// Compute returns the index range to materialize for a scroll position
// over n items. The second return is false when n == 0: an empty dataset
// is a render state (empty view), not an error. Negative offsets are
// treated as 0; the scroll handler never produces them, so this is only a
// defensive clamp. Compute is pure: equal inputs give equal outputs.
func (p Params) Compute(scrollOffset, n int) (Window, bool) {
	if n <= 0 {
		return Window{}, false
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	start := scrollOffset/p.ItemHeight - p.BufferSize
	if start < 0 {
		start = 0
	}
	// Offsets past the end of the content would otherwise produce a start
	// beyond the last item; clamping keeps the window a valid slice.
	if start > n-1 {
		start = n - 1
	}

	end := ceilDiv(scrollOffset+p.ViewportHeight, p.ItemHeight) + p.BufferSize
	if end > n-1 {
		end = n - 1
	}

	return Window{Start: start, End: end}, true
}

// ceilDiv rounds the quotient up. Both arguments are non-negative and b is
// positive by Params validation.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
