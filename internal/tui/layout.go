package tui

// Layout constants for the studio shell.
const (
	// compactBreakpoint is the terminal width below which the sidebar
	// collapses into the header line.
	compactBreakpoint = 100

	sidebarMinWidth = 28
	sidebarMaxWidth = 40

	headerHeight    = 1
	statusBarHeight = 1

	// sidebarGap is the blank column between sidebar and content.
	sidebarGap = 1

	// borderPadding accounts for the two border columns of a boxed view.
	borderPadding = 2
)

// Layout describes how the shell divides the terminal between sidebar,
// content, header and status bar.
type Layout struct {
	Width  int
	Height int

	// Compact is set below the breakpoint; the sidebar is hidden and
	// navigation moves into the header.
	Compact bool

	SidebarWidth  int
	ContentWidth  int
	ContentHeight int
}

// ComputeLayout splits a terminal of the given size. The sidebar takes
// roughly a fifth of the width, clamped to its min/max; the content pane
// gets the rest. Header and status bar each take one row.
func ComputeLayout(width, height int) Layout {
	l := Layout{Width: width, Height: height}

	l.ContentHeight = height - headerHeight - statusBarHeight
	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}

	if width < compactBreakpoint {
		l.Compact = true
		l.SidebarWidth = 0
		l.ContentWidth = width
		if l.ContentWidth < 1 {
			l.ContentWidth = 1
		}
		return l
	}

	sidebar := width / 5
	if sidebar < sidebarMinWidth {
		sidebar = sidebarMinWidth
	}
	if sidebar > sidebarMaxWidth {
		sidebar = sidebarMaxWidth
	}
	l.SidebarWidth = sidebar
	l.ContentWidth = width - sidebar - sidebarGap
	if l.ContentWidth < 1 {
		l.ContentWidth = 1
	}
	return l
}
