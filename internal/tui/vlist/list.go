package vlist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mouseWheelDelta is the number of rows scrolled per wheel event.
const mouseWheelDelta = 3

// scrollbarWidth is the gutter reserved at the right edge: one space plus
// the bar rune.
const scrollbarWidth = 2

const (
	scrollbarThumb = "█"
	scrollbarTrack = "│"
)

// RenderFunc renders a single item. The selected flag marks the item the
// cursor is on. The returned string is normalized to ItemHeight rows.
type RenderFunc[T any] func(item T, selected bool) string

// List is a Bubble Tea model that renders only the window of items the
// scroll position makes visible, plus the configured buffer. The item
// slice is externally owned and never mutated here.
//
// Only Update mutates viewport state; View reads. The load-more fetch is
// the single async edge, observed through the message the host feeds back
// into AppendItems.
type List[T any] struct {
	// items is the full dataset, read-only for the list.
	items []T

	// render draws one item.
	render RenderFunc[T]

	// params is the window geometry.
	params Params

	// scrollOffset is the distance from the content top, in rows.
	scrollOffset int

	// selected is the cursor index, kept inside the visible range.
	selected int

	// win is the cached materialization range for the current state.
	win   Window
	winOK bool

	// gate guards the infinite-load trigger.
	gate     LoadGate
	loadMore func() tea.Cmd

	// width is the last observed render width; 0 before any size event.
	width int

	emptyView   string
	loadingView string
}

// NewList validates the geometry and builds a list model.
func NewList[T any](params Params, render RenderFunc[T]) (*List[T], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m := &List[T]{
		render:      render,
		params:      params,
		gate:        NewLoadGate(),
		emptyView:   "No items.",
		loadingView: "Loading…",
	}
	m.updateWindow()
	return m, nil
}

// SetItems replaces the dataset, clamping cursor and scroll position.
func (m *List[T]) SetItems(items []T) {
	m.items = items
	if m.selected >= len(items) {
		m.selected = len(items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.clampScroll()
	m.updateWindow()
}

// AppendItems adds the next page and reopens the load gate.
func (m *List[T]) AppendItems(items []T, hasMore bool) {
	m.items = append(m.items, items...)
	m.gate.Loading = false
	m.gate.HasMore = hasMore
	m.updateWindow()
}

// SetLoading drives the first-page latch and the empty-state view choice.
func (m *List[T]) SetLoading(loading bool) {
	m.gate.Loading = loading
}

// SetHasMore overrides whether further pages exist.
func (m *List[T]) SetHasMore(hasMore bool) {
	m.gate.HasMore = hasMore
}

// SetLoadThreshold overrides the load-more distance.
func (m *List[T]) SetLoadThreshold(threshold int) {
	m.gate.Threshold = threshold
}

// OnLoadMore installs the command factory invoked when the gate opens. The
// factory runs inside Update, so it may read host state; returning nil
// skips the trigger without latching.
func (m *List[T]) OnLoadMore(factory func() tea.Cmd) {
	m.loadMore = factory
}

// SetEmptyView replaces the text shown for an empty, non-loading dataset.
func (m *List[T]) SetEmptyView(view string) {
	m.emptyView = view
}

// SetLoadingView replaces the text shown while the dataset is empty and a
// load is in flight.
func (m *List[T]) SetLoadingView(view string) {
	m.loadingView = view
}

// SetViewportHeight resizes the visible area. Heights below one row are
// ignored; geometry stays valid.
func (m *List[T]) SetViewportHeight(height int) {
	if height < 1 {
		return
	}
	m.params.ViewportHeight = height
	m.clampScroll()
	m.syncSelection()
	m.updateWindow()
}

// SetWidth records the render width for padding and the scrollbar gutter.
func (m *List[T]) SetWidth(width int) {
	m.width = width
}

// Init implements tea.Model.
func (m *List[T]) Init() tea.Cmd {
	return nil
}

// Update handles scroll input. Every mutation recomputes the window
// synchronously; there is no debounce.
func (m *List[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m, m.handleMouseMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.SetViewportHeight(msg.Height)
		return m, m.maybeLoadMore()
	}
	return m, nil
}

//nolint:exhaustive // Navigation handles a fixed key set; everything else is ignored.
func (m *List[T]) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}

	switch msg.Type {
	case tea.KeyUp:
		m.moveSelection(-1)
	case tea.KeyDown:
		m.moveSelection(1)
	case tea.KeyPgUp:
		m.scrollBy(-m.params.ViewportHeight)
	case tea.KeyPgDown:
		m.scrollBy(m.params.ViewportHeight)
	case tea.KeyHome:
		m.selected = 0
		m.scrollOffset = 0
		m.updateWindow()
	case tea.KeyEnd:
		m.selected = len(m.items) - 1
		m.scrollOffset = m.maxScroll()
		m.updateWindow()
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return nil
		}
		switch msg.Runes[0] {
		case 'j':
			m.moveSelection(1)
		case 'k':
			m.moveSelection(-1)
		case 'g':
			m.selected = 0
			m.scrollOffset = 0
			m.updateWindow()
		case 'G':
			m.selected = len(m.items) - 1
			m.scrollOffset = m.maxScroll()
			m.updateWindow()
		default:
			return nil
		}
	default:
		return nil
	}

	return m.maybeLoadMore()
}

func (m *List[T]) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-mouseWheelDelta * m.params.ItemHeight)
	case tea.MouseButtonWheelDown:
		m.scrollBy(mouseWheelDelta * m.params.ItemHeight)
	default:
		return nil
	}

	return m.maybeLoadMore()
}

// moveSelection shifts the cursor and scrolls just enough to keep it on
// screen.
func (m *List[T]) moveSelection(delta int) {
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected > len(m.items)-1 {
		m.selected = len(m.items) - 1
	}

	top := m.selected * m.params.ItemHeight
	bottom := top + m.params.ItemHeight
	if top < m.scrollOffset {
		m.scrollOffset = top
	} else if bottom > m.scrollOffset+m.params.ViewportHeight {
		m.scrollOffset = bottom - m.params.ViewportHeight
	}

	m.clampScroll()
	m.updateWindow()
}

// scrollBy shifts the viewport and drags the cursor back inside it.
func (m *List[T]) scrollBy(delta int) {
	m.scrollOffset += delta
	m.clampScroll()
	m.syncSelection()
	m.updateWindow()
}

// ScrollTo jumps to an absolute offset. The returned command is the
// load-more trigger when the jump lands near the bottom.
func (m *List[T]) ScrollTo(offset int) tea.Cmd {
	m.scrollOffset = offset
	m.clampScroll()
	m.syncSelection()
	m.updateWindow()
	return m.maybeLoadMore()
}

func (m *List[T]) clampScroll() {
	if m.scrollOffset > m.maxScroll() {
		m.scrollOffset = m.maxScroll()
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// syncSelection pulls the cursor into the visible range after an
// offset-driven scroll, so the window contract drives what materializes.
func (m *List[T]) syncSelection() {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}

	h := m.params.ItemHeight
	first := m.scrollOffset / h
	last := (m.scrollOffset + m.params.ViewportHeight - 1) / h
	if last > len(m.items)-1 {
		last = len(m.items) - 1
	}

	if m.selected < first {
		m.selected = first
	}
	if m.selected > last {
		m.selected = last
	}
}

func (m *List[T]) updateWindow() {
	m.win, m.winOK = m.params.Compute(m.scrollOffset, len(m.items))
}

// maybeLoadMore fires the installed load command when the gate opens,
// latching Loading in the same Update call so a burst of scroll events
// cannot double-trigger.
func (m *List[T]) maybeLoadMore() tea.Cmd {
	if m.loadMore == nil {
		return nil
	}

	vp := Viewport{
		ScrollHeight: m.TotalHeight(),
		ScrollTop:    m.scrollOffset,
		ClientHeight: m.params.ViewportHeight,
	}
	if !m.gate.ShouldLoad(vp) {
		return nil
	}

	cmd := m.loadMore()
	if cmd == nil {
		return nil
	}
	m.gate.Loading = true
	return cmd
}

// View renders the materialized window cropped to the viewport, plus the
// scrollbar gutter. An empty dataset renders the empty or loading view.
func (m *List[T]) View() string {
	if len(m.items) == 0 {
		if m.gate.Loading {
			return m.loadingView
		}
		return m.emptyView
	}
	if !m.winOK {
		return m.emptyView
	}

	h := m.params.ItemHeight
	block := make([]string, 0, m.win.Len()*h)
	for i := m.win.Start; i <= m.win.End; i++ {
		rendered := m.render(m.items[i], i == m.selected)
		block = append(block, normalizeItemLines(rendered, h)...)
	}

	// The block starts at ContentOffset; the viewport starts at
	// scrollOffset. Crop the difference off the top, then take one
	// viewport's worth of rows.
	skip := m.scrollOffset - m.ContentOffset()
	if skip < 0 {
		skip = 0
	}
	if skip > len(block) {
		skip = len(block)
	}
	visible := block[skip:]
	if len(visible) > m.params.ViewportHeight {
		visible = visible[:m.params.ViewportHeight]
	}

	bar := m.scrollbar(len(visible))
	var sb strings.Builder
	for i, line := range visible {
		if i > 0 {
			sb.WriteString("\n")
		}
		if m.width > scrollbarWidth {
			if pad := m.width - scrollbarWidth - lipgloss.Width(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}
		}
		sb.WriteString(line)
		sb.WriteString(" ")
		sb.WriteString(bar[i])
	}
	return sb.String()
}

// scrollbar derives the thumb from TotalHeight, the viewport height and
// the offset, so the bar behaves as if all items were rendered.
func (m *List[T]) scrollbar(rows int) []string {
	bar := make([]string, rows)
	total := m.TotalHeight()
	vh := m.params.ViewportHeight

	if rows == 0 {
		return bar
	}
	if total <= vh {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}

	thumbLen := rows * vh / total
	if thumbLen < 1 {
		thumbLen = 1
	}
	thumbTop := 0
	if maxScroll := total - vh; maxScroll > 0 {
		thumbTop = m.scrollOffset * (rows - thumbLen) / maxScroll
	}

	for i := range bar {
		if i >= thumbTop && i < thumbTop+thumbLen {
			bar[i] = scrollbarThumb
		} else {
			bar[i] = scrollbarTrack
		}
	}
	return bar
}

// ContentOffset is the vertical translation of the materialized block
// relative to the content origin.
func (m *List[T]) ContentOffset() int {
	if !m.winOK {
		return 0
	}
	return m.win.Start * m.params.ItemHeight
}

// TotalHeight is the full content height, independent of what is
// materialized.
func (m *List[T]) TotalHeight() int {
	return len(m.items) * m.params.ItemHeight
}

func (m *List[T]) maxScroll() int {
	maxOffset := m.TotalHeight() - m.params.ViewportHeight
	if maxOffset < 0 {
		return 0
	}
	return maxOffset
}

// Window returns the cached materialization range; false means the
// dataset is empty.
func (m *List[T]) Window() (Window, bool) {
	return m.win, m.winOK
}

// ScrollOffset returns the current offset from the content top.
func (m *List[T]) ScrollOffset() int {
	return m.scrollOffset
}

// Selected returns the cursor index.
func (m *List[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the item under the cursor, or nil when empty.
func (m *List[T]) SelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}

// ItemCount returns the dataset size.
func (m *List[T]) ItemCount() int {
	return len(m.items)
}

// Loading reports whether a load is in flight.
func (m *List[T]) Loading() bool {
	return m.gate.Loading
}

// HasMore reports whether further pages are expected.
func (m *List[T]) HasMore() bool {
	return m.gate.HasMore
}

// ContentWidth is the width available to render funcs once the scrollbar
// gutter is reserved.
func (m *List[T]) ContentWidth() int {
	if m.width <= scrollbarWidth {
		return 0
	}
	return m.width - scrollbarWidth
}

// normalizeItemLines forces a rendered item to exactly height rows.
func normalizeItemLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
