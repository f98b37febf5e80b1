package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditLogger records one ndjson line per completed command so operators can
// reconstruct who ran what against which project. A disabled logger is a
// no-op; callers never need to branch on whether auditing is on.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditEntry)
	Close() error
}

// AuditLoggerConfig configures audit logging.
type AuditLoggerConfig struct {
	Enabled bool
	File    string
}

// AuditEntry is a single audit record.
type AuditEntry struct {
	Timestamp  time.Time         `json:"timestamp"`
	Command    string            `json:"command"`
	TraceID    string            `json:"trace_id,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Success    bool              `json:"success"`
	ItemCount  int               `json:"item_count,omitempty"`
	Error      string            `json:"error,omitempty"`
	DurationMS int64             `json:"duration_ms"`
}

// NewAuditEntry starts an entry for the named command.
func NewAuditEntry(command, traceID string) *AuditEntry {
	return &AuditEntry{
		Timestamp: time.Now().UTC(),
		Command:   command,
		TraceID:   traceID,
	}
}

// WithParameters attaches the command parameters.
func (e *AuditEntry) WithParameters(params map[string]string) *AuditEntry {
	e.Parameters = params
	return e
}

// WithError marks the entry failed.
func (e *AuditEntry) WithError(msg string) *AuditEntry {
	e.Success = false
	e.Error = msg
	return e
}

// WithSuccess marks the entry successful with the number of items touched.
func (e *AuditEntry) WithSuccess(count int) *AuditEntry {
	e.Success = true
	e.ItemCount = count
	return e
}

// WithDuration records elapsed time since start.
func (e *AuditEntry) WithDuration(start time.Time) *AuditEntry {
	e.DurationMS = time.Since(start).Milliseconds()
	return e
}

// fileAuditLogger appends ndjson entries to a file.
type fileAuditLogger struct {
	mu   sync.Mutex
	file *os.File
}

// noopAuditLogger drops everything.
type noopAuditLogger struct{}

func (noopAuditLogger) Log(context.Context, AuditEntry) {}
func (noopAuditLogger) Close() error                    { return nil }

// NewAuditLogger builds an audit logger from cfg. Any failure to open the
// audit file degrades to a no-op logger; auditing must never break commands.
func NewAuditLogger(cfg AuditLoggerConfig) AuditLogger {
	if !cfg.Enabled || cfg.File == "" {
		return noopAuditLogger{}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return noopAuditLogger{}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return noopAuditLogger{}
	}
	return &fileAuditLogger{file: f}
}

// Log writes the entry as one JSON line. Write errors are reported through
// the context logger rather than returned.
func (l *fileAuditLogger) Log(ctx context.Context, entry AuditEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		FromContext(ctx).Warn().Err(err).Msg("failed to marshal audit entry")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	if _, err := l.file.Write(append(data, '\n')); err != nil {
		FromContext(ctx).Warn().Err(err).Msg("failed to write audit entry")
	}
}

// Close flushes and closes the audit file.
func (l *fileAuditLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// auditLoggerKey is the context key for the ambient audit logger.
type auditLoggerKey struct{}

// ContextWithAuditLogger stores the audit logger in the context.
func ContextWithAuditLogger(ctx context.Context, logger AuditLogger) context.Context {
	return context.WithValue(ctx, auditLoggerKey{}, logger)
}

// AuditLoggerFromContext returns the audit logger from ctx, or a no-op
// logger when none is attached.
func AuditLoggerFromContext(ctx context.Context) AuditLogger {
	if l, ok := ctx.Value(auditLoggerKey{}).(AuditLogger); ok && l != nil {
		return l
	}
	return noopAuditLogger{}
}
