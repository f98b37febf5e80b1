package vlist

// DefaultLoadThreshold is how close to the bottom (in rows) the viewport
// must be before the next page is requested.
const DefaultLoadThreshold = 100

// Viewport is the scroll geometry of a rendered list: how tall the full
// content is, how far down the reader is, and how much is on screen.
type Viewport struct {
	ScrollHeight int
	ScrollTop    int
	ClientHeight int
}

// DistanceFromBottom returns how much content remains below the visible
// region.
func (v Viewport) DistanceFromBottom() int {
	return v.ScrollHeight - v.ScrollTop - v.ClientHeight
}

// LoadGate decides when scrolling should fetch the next page. The Loading
// flag is the only dedup the gate provides: the owner must set it before
// the fetch resolves, or further scroll events near the bottom trigger
// again. List wires the gate into its scroll handler and flips Loading in
// the same Update call that emits the fetch command; the Bubble Tea update
// loop is single threaded, so no duplicate trigger can slip through there.
// Other hosts own that ordering themselves.
//
// The gate implements no retry or backoff. A failed load is the caller's
// to surface, and the gate stays closed until Loading is reset.
type LoadGate struct {
	Threshold int
	HasMore   bool
	Loading   bool
}

// NewLoadGate returns a gate with the default threshold that expects more
// pages.
func NewLoadGate() LoadGate {
	return LoadGate{Threshold: DefaultLoadThreshold, HasMore: true}
}

// ShouldLoad reports whether the viewport is close enough to the bottom to
// fetch the next page.
func (g LoadGate) ShouldLoad(vp Viewport) bool {
	return vp.DistanceFromBottom() < g.Threshold && g.HasMore && !g.Loading
}
