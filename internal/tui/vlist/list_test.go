package vlist

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func renderInt(item int, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	return fmt.Sprintf("%sitem-%d", marker, item)
}

// newIntList builds a list of n items with height 1 rows, a 10-row
// viewport and a 2-item buffer.
func newIntList(t *testing.T, n int) *List[int] {
	t.Helper()

	params, err := NewParams(1, 10, 2)
	require.NoError(t, err)

	m, err := NewList(params, renderInt)
	require.NoError(t, err)
	m.SetItems(intItems(n))
	return m
}

func keyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewList_InvalidGeometry(t *testing.T) {
	_, err := NewList(Params{ItemHeight: 0, ViewportHeight: 10}, renderInt)
	require.ErrorIs(t, err, ErrItemHeight)

	_, err = NewList(Params{ItemHeight: 1, ViewportHeight: 10, BufferSize: -1}, renderInt)
	require.ErrorIs(t, err, ErrBufferSize)
}

func TestList_EmptyStates(t *testing.T) {
	m := newIntList(t, 0)

	assert.Equal(t, "No items.", m.View())

	m.SetLoading(true)
	assert.Equal(t, "Loading…", m.View())

	m.SetLoading(false)
	m.SetEmptyView("no documents in this project")
	m.SetLoadingView("fetching documents")
	assert.Equal(t, "no documents in this project", m.View())
	m.SetLoading(true)
	assert.Equal(t, "fetching documents", m.View())

	win, ok := m.Window()
	assert.False(t, ok)
	assert.Equal(t, Window{}, win)
}

func TestList_WindowFollowsScroll(t *testing.T) {
	m := newIntList(t, 100)

	win, ok := m.Window()
	require.True(t, ok)
	assert.Equal(t, Window{Start: 0, End: 12}, win)

	m.ScrollTo(5)
	win, ok = m.Window()
	require.True(t, ok)
	assert.Equal(t, Window{Start: 3, End: 17}, win)
	assert.Equal(t, 3, m.ContentOffset())
	assert.Equal(t, 100, m.TotalHeight())
}

func TestList_ViewCropsToViewport(t *testing.T) {
	m := newIntList(t, 100)
	m.ScrollTo(5)

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 10)

	// The first visible row is the item at the scroll offset, not the
	// first materialized one.
	assert.Contains(t, lines[0], "item-5")
	assert.Contains(t, lines[9], "item-14")
	assert.NotContains(t, view, "item-15")
	assert.NotContains(t, view, "item-4\n")
}

func TestList_ViewMarksSelection(t *testing.T) {
	m := newIntList(t, 100)
	m.ScrollTo(5)

	// Scrolling drags the cursor into the visible range.
	assert.Equal(t, 5, m.Selected())
	assert.Contains(t, m.View(), "> item-5")
}

func TestList_KeyNavigation(t *testing.T) {
	m := newIntList(t, 100)

	_, _ = m.Update(keyMsg(tea.KeyDown))
	assert.Equal(t, 1, m.Selected())

	_, _ = m.Update(runeMsg('j'))
	assert.Equal(t, 2, m.Selected())

	_, _ = m.Update(runeMsg('k'))
	assert.Equal(t, 1, m.Selected())

	_, _ = m.Update(keyMsg(tea.KeyUp))
	assert.Equal(t, 0, m.Selected())

	// Up at the top stays put.
	_, _ = m.Update(keyMsg(tea.KeyUp))
	assert.Equal(t, 0, m.Selected())

	_, _ = m.Update(keyMsg(tea.KeyEnd))
	assert.Equal(t, 99, m.Selected())
	assert.Equal(t, 90, m.ScrollOffset())

	_, _ = m.Update(keyMsg(tea.KeyHome))
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 0, m.ScrollOffset())
}

func TestList_CursorScrollsViewport(t *testing.T) {
	m := newIntList(t, 100)

	// Walk the cursor past the bottom edge of the viewport.
	for i := 0; i < 12; i++ {
		_, _ = m.Update(keyMsg(tea.KeyDown))
	}
	assert.Equal(t, 12, m.Selected())
	assert.Equal(t, 3, m.ScrollOffset(), "viewport follows the cursor down")

	view := m.View()
	assert.Contains(t, view, "> item-12")
}

func TestList_PageKeys(t *testing.T) {
	m := newIntList(t, 100)

	_, _ = m.Update(keyMsg(tea.KeyPgDown))
	assert.Equal(t, 10, m.ScrollOffset())

	_, _ = m.Update(keyMsg(tea.KeyPgUp))
	assert.Equal(t, 0, m.ScrollOffset())

	// PgUp at the top clamps to zero.
	_, _ = m.Update(keyMsg(tea.KeyPgUp))
	assert.Equal(t, 0, m.ScrollOffset())
}

func TestList_SelectionStaysVisibleOnPaging(t *testing.T) {
	m := newIntList(t, 100)

	_, _ = m.Update(keyMsg(tea.KeyPgDown))
	_, _ = m.Update(keyMsg(tea.KeyPgDown))

	first := m.ScrollOffset()
	last := first + 9
	assert.GreaterOrEqual(t, m.Selected(), first)
	assert.LessOrEqual(t, m.Selected(), last)
}

func TestList_MouseWheel(t *testing.T) {
	m := newIntList(t, 100)

	_, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 3, m.ScrollOffset())

	_, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, m.ScrollOffset())

	// Non-press actions are ignored.
	_, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 0, m.ScrollOffset())
}

func TestList_WindowSizeMsg(t *testing.T) {
	m := newIntList(t, 100)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 38, m.ContentWidth())

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 20)
}

func TestList_LoadMoreTrigger(t *testing.T) {
	m := newIntList(t, 30)
	m.SetLoadThreshold(5)

	calls := 0
	m.OnLoadMore(func() tea.Cmd {
		calls++
		return func() tea.Msg { return nil }
	})

	// Far from the bottom: distance 30-10-10 = 10 >= 5.
	cmd := m.ScrollTo(10)
	assert.Nil(t, cmd)
	assert.Zero(t, calls)

	// Near the bottom: distance 30-16-10 = 4 < 5.
	cmd = m.ScrollTo(16)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, calls)
	assert.True(t, m.Loading())

	// The latch holds while the fetch is in flight.
	cmd = m.ScrollTo(17)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, calls)

	// The page arrives; the gate reopens and fires again near the new
	// bottom.
	m.AppendItems(intItems(10), true)
	assert.False(t, m.Loading())
	assert.Equal(t, 40, m.ItemCount())

	cmd = m.ScrollTo(27)
	require.NotNil(t, cmd)
	assert.Equal(t, 2, calls)

	// The final page closes the gate for good.
	m.AppendItems(intItems(5), false)
	cmd = m.ScrollTo(m.maxScroll())
	assert.Nil(t, cmd)
	assert.Equal(t, 2, calls)
	assert.False(t, m.HasMore())
}

func TestList_LoadMoreLatchedWithinSameUpdate(t *testing.T) {
	m := newIntList(t, 30)
	m.SetLoadThreshold(5)

	calls := 0
	m.OnLoadMore(func() tea.Cmd {
		calls++
		return func() tea.Msg { return nil }
	})

	// KeyEnd jumps to max scroll, inside the threshold.
	_, cmd := m.Update(keyMsg(tea.KeyEnd))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, calls)

	// A second scroll event in the same in-flight window does not fire.
	_, cmd = m.Update(keyMsg(tea.KeyEnd))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, calls)
}

func TestList_NilLoadCommandDoesNotLatch(t *testing.T) {
	m := newIntList(t, 30)
	m.SetLoadThreshold(5)
	m.OnLoadMore(func() tea.Cmd { return nil })

	cmd := m.ScrollTo(m.maxScroll())
	assert.Nil(t, cmd)
	assert.False(t, m.Loading())
}

func TestList_SetItemsClamps(t *testing.T) {
	m := newIntList(t, 100)
	_, _ = m.Update(keyMsg(tea.KeyEnd))
	assert.Equal(t, 99, m.Selected())

	m.SetItems(intItems(5))
	assert.Equal(t, 4, m.Selected())
	assert.Equal(t, 0, m.ScrollOffset())
	require.NotNil(t, m.SelectedItem())
	assert.Equal(t, 4, *m.SelectedItem())
}

func TestList_MultiRowItems(t *testing.T) {
	params, err := NewParams(2, 10, 1)
	require.NoError(t, err)

	m, err := NewList(params, func(item int, _ bool) string {
		return fmt.Sprintf("title-%d\ndetail-%d", item, item)
	})
	require.NoError(t, err)
	m.SetItems(intItems(50))

	assert.Equal(t, 100, m.TotalHeight())

	m.ScrollTo(20)
	win, ok := m.Window()
	require.True(t, ok)
	assert.Equal(t, 9, win.Start)
	assert.Equal(t, 18, m.ContentOffset())

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "title-10")
	assert.Contains(t, lines[1], "detail-10")
}

func TestList_EmptyKeyInputIgnored(t *testing.T) {
	m := newIntList(t, 0)
	_, cmd := m.Update(keyMsg(tea.KeyDown))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Selected())
}
