package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dialog box sizing.
const (
	dialogMinWidth = 20
	dialogMaxWidth = 70
	dialogMargin   = 4
)

// Dialog is the interface all stackable modal dialogs implement.
type Dialog interface {
	// Update handles a message. Returning a nil Dialog dismisses it.
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	// View returns the inner content, without the frame.
	View() string
	// Width returns the desired inner width.
	Width() int
	// Height returns the rendered content height.
	Height() int
	// Title returns the text shown in the frame header.
	Title() string
}

// Overlay manages a stack of dialogs rendered as centered modals over the
// page content. The last pushed dialog is the active one.
type Overlay struct {
	stack []Dialog
	termW int
	termH int
}

// NewOverlay returns an empty overlay.
func NewOverlay() Overlay {
	return Overlay{}
}

// Push places a dialog on top of the stack.
func (o *Overlay) Push(d Dialog) {
	o.stack = append(o.stack, d)
}

// Pop removes and returns the top dialog, or nil when the stack is empty.
func (o *Overlay) Pop() Dialog {
	if len(o.stack) == 0 {
		return nil
	}
	top := o.stack[len(o.stack)-1]
	o.stack = o.stack[:len(o.stack)-1]
	return top
}

// Clear drops every dialog.
func (o *Overlay) Clear() {
	o.stack = o.stack[:0]
}

// IsActive reports whether at least one dialog is open.
func (o Overlay) IsActive() bool { return len(o.stack) > 0 }

// Top returns the active dialog without removing it, or nil when empty.
func (o Overlay) Top() Dialog {
	if len(o.stack) == 0 {
		return nil
	}
	return o.stack[len(o.stack)-1]
}

// SetSize records the terminal dimensions used for centering.
func (o *Overlay) SetSize(w, h int) {
	o.termW = w
	o.termH = h
}

// Update forwards the message to the top dialog. A dialog that returns
// nil from its Update dismissed itself and is popped.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.IsActive() {
		return o, nil
	}
	stack := make([]Dialog, len(o.stack))
	copy(stack, o.stack)
	o.stack = stack

	top := o.stack[len(o.stack)-1]
	updated, cmd := top.Update(msg)
	if updated == nil {
		o.stack = o.stack[:len(o.stack)-1]
	} else {
		o.stack[len(o.stack)-1] = updated
	}
	return o, cmd
}

// View renders the top dialog centered in a rounded border over the page
// content. With no active dialog the content passes through untouched.
func (o Overlay) View(behind string) string {
	if !o.IsActive() {
		return behind
	}

	d := o.Top()
	inner := HeaderStyle.Render(d.Title()) + "\n\n" + d.View()

	boxW := d.Width()
	if boxW > o.termW-dialogMargin {
		boxW = o.termW - dialogMargin
	}
	if boxW > dialogMaxWidth {
		boxW = dialogMaxWidth
	}
	if boxW < dialogMinWidth {
		boxW = dialogMinWidth
	}

	box := BoxStyle.
		Padding(1, 2).
		Width(boxW).
		Render(inner)

	return lipgloss.Place(o.termW, o.termH, lipgloss.Center, lipgloss.Center, box)
}

// InputDialog prompts for a single line of text. Enter submits through
// the onSubmit command factory, Esc cancels.
type InputDialog struct {
	title    string
	input    textinput.Model
	onSubmit func(value string) tea.Cmd
}

// NewInputDialog builds a text prompt dialog. The initial value is
// pre-filled and selected use cases like rename start from it.
func NewInputDialog(title, placeholder, initial string, onSubmit func(value string) tea.Cmd) *InputDialog {
	ti := newTextInput()
	ti.Placeholder = placeholder
	ti.SetValue(initial)
	ti.Focus()
	return &InputDialog{
		title:    title,
		input:    ti,
		onSubmit: onSubmit,
	}
}

// Update implements Dialog.
func (d *InputDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			value := d.input.Value()
			if d.onSubmit == nil {
				return nil, nil
			}
			return nil, d.onSubmit(value)
		case keyEsc:
			return nil, nil
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// View implements Dialog.
func (d *InputDialog) View() string {
	return d.input.View() + "\n\n" + HelpStyle.Render("enter confirm · esc cancel")
}

// Width implements Dialog.
func (d *InputDialog) Width() int { return d.input.Width + 8 }

// Height implements Dialog.
func (d *InputDialog) Height() int { return 3 }

// Title implements Dialog.
func (d *InputDialog) Title() string { return d.title }

// Value returns the current input text.
func (d *InputDialog) Value() string { return d.input.Value() }

// ConfirmDialog asks a yes/no question. It starts on No; y or a confirmed
// Enter runs the onConfirm command, n and Esc cancel.
type ConfirmDialog struct {
	title     string
	question  string
	yes       bool
	onConfirm func() tea.Cmd
}

// NewConfirmDialog builds a confirmation dialog defaulting to No.
func NewConfirmDialog(title, question string, onConfirm func() tea.Cmd) *ConfirmDialog {
	return &ConfirmDialog{
		title:     title,
		question:  question,
		onConfirm: onConfirm,
	}
}

// Update implements Dialog.
func (d *ConfirmDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "y":
		return nil, d.confirm()
	case "n", keyEsc:
		return nil, nil
	case keyEnter:
		if d.yes {
			return nil, d.confirm()
		}
		return nil, nil
	case keyTab, "left", "right", "h", "l":
		d.yes = !d.yes
		return d, nil
	}
	return d, nil
}

func (d *ConfirmDialog) confirm() tea.Cmd {
	if d.onConfirm == nil {
		return nil
	}
	return d.onConfirm()
}

// View implements Dialog.
func (d *ConfirmDialog) View() string {
	yes := "  Yes  "
	no := "  No  "
	if d.yes {
		yes = TableSelectedStyle.Render(yes)
		no = SubtleStyle.Render(no)
	} else {
		yes = SubtleStyle.Render(yes)
		no = TableSelectedStyle.Render(no)
	}
	return d.question + "\n\n" + yes + " " + no + "\n\n" +
		HelpStyle.Render("y/n decide · tab toggle · esc cancel")
}

// Width implements Dialog.
func (d *ConfirmDialog) Width() int {
	w := lipgloss.Width(d.question) + 6
	if w < 40 {
		w = 40
	}
	return w
}

// Height implements Dialog.
func (d *ConfirmDialog) Height() int { return 5 }

// Title implements Dialog.
func (d *ConfirmDialog) Title() string { return d.title }
