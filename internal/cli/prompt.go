package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cotstudio/cot/internal/tui"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "Y")
	Accepted bool
	// Cancelled is true if reading input failed (e.g., Ctrl+C closed stdin)
	Cancelled bool
}

// ConfirmAction prompts the user to confirm a destructive action. It returns
// immediately with Accepted=false in non-interactive (non-TTY) environments,
// so scripts must pass --yes explicitly.
//
// The prompt defaults to "No" (abort) when the user presses Enter without
// input. Valid inputs: "y", "Y", "yes", "Yes", "YES" for acceptance;
// anything else declines.
func ConfirmAction(writer io.Writer, reader io.Reader, question string) PromptResult {
	// In non-TTY environments, return immediately without prompting
	if !tui.IsTTY(os.Stdin) {
		return PromptResult{Accepted: false}
	}

	fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		// EOF or error - treat as cancelled
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{Accepted: false}
	}

	input := strings.TrimSpace(scanner.Text())

	// Empty input defaults to "No" (abort)
	if input == "" {
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}

// ConfirmActionWithStdin is a convenience wrapper that uses os.Stdin as the reader.
func ConfirmActionWithStdin(writer io.Writer, question string) PromptResult {
	return ConfirmAction(writer, os.Stdin, question)
}
