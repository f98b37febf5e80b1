package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOverlay_Stack tests dialog stacking.
func TestOverlay_Stack(t *testing.T) {
	t.Run("starts inactive and passes content through", func(t *testing.T) {
		o := NewOverlay()

		assert.False(t, o.IsActive())
		assert.Nil(t, o.Top())
		assert.Equal(t, "behind", o.View("behind"))
	})

	t.Run("push and pop are last in first out", func(t *testing.T) {
		o := NewOverlay()
		first := NewInputDialog("first", "", "", nil)
		second := NewInputDialog("second", "", "", nil)

		o.Push(first)
		o.Push(second)

		assert.True(t, o.IsActive())
		assert.Equal(t, "second", o.Top().Title())
		assert.Same(t, second, o.Pop())
		assert.Same(t, first, o.Pop())
		assert.Nil(t, o.Pop())
	})

	t.Run("clear drops everything", func(t *testing.T) {
		o := NewOverlay()
		o.Push(NewInputDialog("a", "", "", nil))
		o.Push(NewInputDialog("b", "", "", nil))

		o.Clear()

		assert.False(t, o.IsActive())
	})

	t.Run("a dialog returning nil pops itself", func(t *testing.T) {
		o := NewOverlay()
		o.Push(NewInputDialog("prompt", "", "", nil))

		o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEsc})

		assert.False(t, o.IsActive())
		assert.Nil(t, cmd)
	})

	t.Run("dismissing the top reveals the one below", func(t *testing.T) {
		o := NewOverlay()
		o.Push(NewInputDialog("below", "", "", nil))
		o.Push(NewInputDialog("top", "", "", nil))

		o, _ = o.Update(tea.KeyMsg{Type: tea.KeyEsc})

		require.True(t, o.IsActive())
		assert.Equal(t, "below", o.Top().Title())
	})

	t.Run("renders the top dialog framed and titled", func(t *testing.T) {
		o := NewOverlay()
		o.SetSize(80, 24)
		o.Push(NewInputDialog("Rename project", "name", "", nil))

		view := o.View("page content")

		assert.Contains(t, view, "Rename project")
		assert.NotContains(t, view, "page content")
	})
}

// TestInputDialog tests the text prompt dialog.
func TestInputDialog(t *testing.T) {
	t.Run("starts from the initial value", func(t *testing.T) {
		d := NewInputDialog("Rename", "name", "alpha", nil)
		assert.Equal(t, "alpha", d.Value())
	})

	t.Run("typing extends the value", func(t *testing.T) {
		d := NewInputDialog("New", "name", "", nil)

		updated, _ := d.Update(keyRunes("notes"))

		input := updated.(*InputDialog)
		assert.Equal(t, "notes", input.Value())
	})

	t.Run("enter submits through the callback and dismisses", func(t *testing.T) {
		var got string
		d := NewInputDialog("New", "name", "draft", func(value string) tea.Cmd {
			got = value
			return nil
		})

		updated, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, updated)
		assert.Nil(t, cmd)
		assert.Equal(t, "draft", got)
	})

	t.Run("enter passes the callback command through", func(t *testing.T) {
		want := func() tea.Msg { return "done" }
		d := NewInputDialog("New", "name", "x", func(string) tea.Cmd { return want })

		updated, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, updated)
		require.NotNil(t, cmd)
		assert.Equal(t, "done", cmd())
	})

	t.Run("esc cancels without calling back", func(t *testing.T) {
		called := false
		d := NewInputDialog("New", "name", "x", func(string) tea.Cmd {
			called = true
			return nil
		})

		updated, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})

		assert.Nil(t, updated)
		assert.Nil(t, cmd)
		assert.False(t, called)
	})

	t.Run("view shows the key hints", func(t *testing.T) {
		d := NewInputDialog("New", "name", "", nil)
		assert.Contains(t, d.View(), "enter confirm · esc cancel")
	})
}

// TestConfirmDialog tests the yes/no dialog.
func TestConfirmDialog(t *testing.T) {
	t.Run("enter on the default is a cancel", func(t *testing.T) {
		called := false
		d := NewConfirmDialog("Delete", "Sure?", func() tea.Cmd {
			called = true
			return nil
		})

		updated, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, updated)
		assert.Nil(t, cmd)
		assert.False(t, called)
	})

	t.Run("y confirms directly", func(t *testing.T) {
		called := false
		d := NewConfirmDialog("Delete", "Sure?", func() tea.Cmd {
			called = true
			return nil
		})

		updated, _ := d.Update(keyRunes("y"))

		assert.Nil(t, updated)
		assert.True(t, called)
	})

	t.Run("n cancels directly", func(t *testing.T) {
		called := false
		d := NewConfirmDialog("Delete", "Sure?", func() tea.Cmd {
			called = true
			return nil
		})

		updated, cmd := d.Update(keyRunes("n"))

		assert.Nil(t, updated)
		assert.Nil(t, cmd)
		assert.False(t, called)
	})

	t.Run("tab toggles then enter confirms", func(t *testing.T) {
		called := false
		d := NewConfirmDialog("Delete", "Sure?", func() tea.Cmd {
			called = true
			return nil
		})

		updated, _ := d.Update(tea.KeyMsg{Type: tea.KeyTab})
		confirm := updated.(*ConfirmDialog)
		require.True(t, confirm.yes)

		final, _ := confirm.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, final)
		assert.True(t, called)
	})

	t.Run("esc cancels", func(t *testing.T) {
		d := NewConfirmDialog("Delete", "Sure?", nil)

		updated, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})

		assert.Nil(t, updated)
		assert.Nil(t, cmd)
	})

	t.Run("view shows both answers and the question", func(t *testing.T) {
		d := NewConfirmDialog("Delete", "Sure?", nil)

		view := d.View()
		assert.Contains(t, view, "Sure?")
		assert.Contains(t, view, "Yes")
		assert.Contains(t, view, "No")
	})

	t.Run("nil callback confirms to nothing", func(t *testing.T) {
		d := NewConfirmDialog("Delete", "Sure?", nil)

		updated, cmd := d.Update(keyRunes("y"))

		assert.Nil(t, updated)
		assert.Nil(t, cmd)
	})
}
