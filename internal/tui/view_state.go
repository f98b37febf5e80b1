package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/cotstudio/cot/internal/api"
)

// ViewState represents the high-level state of a page model.
type ViewState int

const (
	// ViewStateLoading indicates the first fetch is still in flight.
	ViewStateLoading ViewState = iota
	// ViewStateList indicates the main list view is active.
	ViewStateList
	// ViewStateDetail indicates a detail pane is open.
	ViewStateDetail
	// ViewStateQuitting indicates the application is exiting.
	ViewStateQuitting
	// ViewStateError indicates an unrecoverable error occurred.
	ViewStateError
)

// String returns the state name for logs and tests.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}

// Key strings as reported by tea.KeyMsg.String().
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keySlash    = "/"
	keyS        = "s"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyHelp     = "?"
	keyNew      = "n"
	keyRename   = "r"
	keyDelete   = "d"
)

// Default dimensions used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// SortField identifies the active document sort order.
type SortField int

const (
	// SortByUpdated sorts by last update, newest first.
	SortByUpdated SortField = iota
	// SortByTitle sorts by title, ascending.
	SortByTitle
	// SortByStatus groups by processing status.
	SortByStatus

	numSortFields = 3
)

// Label returns the human-readable sort name for the status bar.
func (s SortField) Label() string {
	switch s {
	case SortByUpdated:
		return "Updated"
	case SortByTitle:
		return "Title"
	case SortByStatus:
		return "Status"
	default:
		return "Unknown"
	}
}

// apiSort maps the field to the server-side sort parameter.
func (s SortField) apiSort() string {
	switch s {
	case SortByUpdated:
		return api.SortUpdatedDesc
	case SortByTitle:
		return api.SortTitleAsc
	case SortByStatus:
		return api.SortStatus
	default:
		return api.SortUpdatedDesc
	}
}

// newTextInput builds the shared single-line input used by filters and
// dialogs.
func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}
