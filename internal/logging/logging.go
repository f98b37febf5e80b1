// Package logging provides the zerolog plumbing shared by every component:
// logger construction with file fallback, per-component child loggers,
// context propagation, trace IDs, and the audit log.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Output destinations accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Formats accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Environment variables that override the configured log level and format.
const (
	EnvLogLevel  = "COTSTUDIO_LOG_LEVEL"
	EnvLogFormat = "COTSTUDIO_LOG_FORMAT"
)

// logFilePerm is the permission mode for created log files.
const logFilePerm = 0o600

// Config describes how a logger should be constructed.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Unparseable
	// values fall back to info.
	Level string

	// Format selects console or json output.
	Format string

	// Output selects stderr, stdout, or file.
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds file:line caller annotations.
	Caller bool
}

// LogPathResult reports how a logger was actually wired, so the CLI can tell
// the user where logs are going (or why the configured file was not usable).
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when logs are being written to FilePath.
	UsingFile bool

	// FilePath is the resolved log file path when UsingFile is true.
	FilePath string

	// FallbackUsed is true when a file was configured but could not be
	// opened, and logging fell back to stderr.
	FallbackUsed bool

	// FallbackReason explains the fallback.
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLoggerWithPath builds a logger from cfg. When cfg requests a file that
// cannot be opened, it falls back to stderr and reports the reason instead
// of failing the command.
func NewLoggerWithPath(cfg Config) LogPathResult {
	result := LogPathResult{}

	var out io.Writer = os.Stderr
	switch cfg.Output {
	case OutputStdout:
		out = os.Stdout
	case OutputFile:
		f, err := openLogFile(cfg.File)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
		} else {
			out = f
			result.UsingFile = true
			result.FilePath = cfg.File
			result.file = f
		}
	}

	// Console format only makes sense on a terminal-ish writer; files get
	// one line of JSON per event so they stay greppable.
	if cfg.Format != FormatJSON && !result.UsingFile {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()
	return result
}

// openLogFile creates the parent directory and opens the file for append.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx by zerolog, or the global
// default when none is attached. Callers never get a nil logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where log output is going.
func PrintLogPathMessage(w io.Writer, path string) {
	fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user that file logging was requested but
// stderr is being used instead.
func PrintFallbackWarning(w io.Writer, reason string) {
	fmt.Fprintf(w, "Warning: falling back to stderr logging: %s\n", reason)
}
