// Command cot is the COT Studio terminal client.
package main

import (
	"errors"
	"os"

	"github.com/cotstudio/cot/internal/cli"
	"github.com/cotstudio/cot/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the error to a process exit code.
// Kept separate from main so the mapping is testable.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		// Cobra already printed the error; only the exit code is decided here.
		return extractExitCode(err)
	}
	return 0
}

// extractExitCode maps an execution error to a process exit code. ExitError
// carries explicit codes (unhealthy server, partial import); everything else
// exits 1.
func extractExitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
