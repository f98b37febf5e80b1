package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotstudio/cot/internal/logging"
)

func TestNewLoggerWithPath_Stderr(t *testing.T) {
	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "debug",
		Format: "console",
		Output: "stderr",
	})

	assert.False(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Empty(t, result.FilePath)
	require.NoError(t, result.Close())
}

func TestNewLoggerWithPath_File(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "cot.log")

	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "info",
		Format: "json",
		Output: "file",
		File:   logPath,
	})
	defer func() { _ = result.Close() }()

	require.True(t, result.UsingFile)
	assert.Equal(t, logPath, result.FilePath)

	result.Logger.Info().Str("component", "test").Msg("hello")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hello"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNewLoggerWithPath_FallbackOnEmptyPath(t *testing.T) {
	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "info",
		Output: "file",
		File:   "",
	})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestNewLoggerWithPath_InvalidLevelDefaultsToInfo(t *testing.T) {
	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "chatty",
		Output: "stderr",
	})
	assert.Equal(t, "info", result.Logger.GetLevel().String())
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	id := logging.GetOrGenerateTraceID(ctx)
	require.NotEmpty(t, id)
	assert.Len(t, id, 26) // ULID canonical encoding

	ctx = logging.ContextWithTraceID(ctx, id)
	assert.Equal(t, id, logging.TraceIDFromContext(ctx))

	// An existing trace ID is reused rather than regenerated.
	assert.Equal(t, id, logging.GetOrGenerateTraceID(ctx))
}

func TestTraceID_Unique(t *testing.T) {
	a := logging.NewTraceID()
	b := logging.NewTraceID()
	assert.NotEqual(t, a, b)
}

func TestAuditLogger_WritesEntries(t *testing.T) {
	auditPath := filepath.Join(t.TempDir(), "audit.ndjson")

	logger := logging.NewAuditLogger(logging.AuditLoggerConfig{
		Enabled: true,
		File:    auditPath,
	})

	start := time.Now().Add(-50 * time.Millisecond)
	entry := logging.NewAuditEntry("docs import", "trace-1").
		WithParameters(map[string]string{"project": "demo"}).
		WithSuccess(42).
		WithDuration(start)
	logger.Log(context.Background(), *entry)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)

	var got logging.AuditEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "docs import", got.Command)
	assert.Equal(t, "trace-1", got.TraceID)
	assert.Equal(t, "demo", got.Parameters["project"])
	assert.True(t, got.Success)
	assert.Equal(t, 42, got.ItemCount)
	assert.GreaterOrEqual(t, got.DurationMS, int64(50))
}

func TestAuditLogger_DisabledIsNoop(t *testing.T) {
	logger := logging.NewAuditLogger(logging.AuditLoggerConfig{Enabled: false})
	// Must not panic and must not create files.
	logger.Log(context.Background(), *logging.NewAuditEntry("ping", ""))
	assert.NoError(t, logger.Close())
}

func TestAuditLoggerFromContext_Default(t *testing.T) {
	logger := logging.AuditLoggerFromContext(context.Background())
	require.NotNil(t, logger)
	assert.NoError(t, logger.Close())
}

func TestAuditEntry_WithError(t *testing.T) {
	entry := logging.NewAuditEntry("project delete", "t-9").WithError("boom")
	assert.False(t, entry.Success)
	assert.Equal(t, "boom", entry.Error)
}
