package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how a command presents its results.
type OutputMode int

const (
	// OutputModePlain emits unstyled text suitable for pipes and scripts.
	OutputModePlain OutputMode = iota
	// OutputModeStyled emits colored text but no interactive program.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen TUI.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// DetectOutputMode picks the output mode for the current process.
//
// Plain when output is redirected or explicitly forced; Styled when
// stdout is a terminal but stdin is not (no way to read keys);
// Interactive when both ends are terminals.
func DetectOutputMode(forcePlain bool) OutputMode {
	if forcePlain || !IsTTY(os.Stdout) {
		return OutputModePlain
	}
	if !IsTTY(os.Stdin) {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the column count of the attached terminal, or
// defaultWidth when the size cannot be determined.
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
