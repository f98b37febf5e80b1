package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/cache"
	"github.com/cotstudio/cot/internal/config"
	"github.com/cotstudio/cot/internal/logging"
)

// Exit codes carried by ExitError. Plain failures exit 1; these mark
// conditions scripts commonly branch on.
const (
	// ExitCodeUnhealthy is returned by status when the server is unreachable
	// or incompatible.
	ExitCodeUnhealthy = 2

	// ExitCodePartialFailure is returned by docs import when some uploads
	// failed but the run completed.
	ExitCodePartialFailure = 3
)

// ExitError is an error that carries a specific process exit code.
// main extracts the code via errors.As.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return e.Reason
}

// auditContext holds common context for audit logging within a command.
type auditContext struct {
	logger  logging.AuditLogger
	traceID string
	params  map[string]string
	start   time.Time
	command string
}

// newAuditContext creates a new audit context.
func newAuditContext(ctx context.Context, command string, params map[string]string) *auditContext {
	return &auditContext{
		logger:  logging.AuditLoggerFromContext(ctx),
		traceID: logging.TraceIDFromContext(ctx),
		params:  params,
		start:   time.Now(),
		command: command,
	}
}

// logFailure logs an audit entry for a failed operation.
func (a *auditContext) logFailure(ctx context.Context, err error) {
	entry := logging.NewAuditEntry(a.command, a.traceID).
		WithParameters(a.params).
		WithError(err.Error()).
		WithDuration(a.start)
	a.logger.Log(ctx, *entry)
}

// logSuccess logs an audit entry for a successful operation.
func (a *auditContext) logSuccess(ctx context.Context, count int) {
	entry := logging.NewAuditEntry(a.command, a.traceID).
		WithParameters(a.params).
		WithSuccess(count).
		WithDuration(a.start)
	a.logger.Log(ctx, *entry)
}

// newAPIClient builds an API client from the resolved global config and
// verifies server compatibility. The check honors --skip-version-check via
// the command context and strict mode from config. The response cache is
// attached when enabled; a broken cache degrades to uncached requests.
func newAPIClient(ctx context.Context) (*api.Client, error) {
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	var opts []api.Option
	if cfg.API.CacheEnabled {
		if store := openCacheStore(ctx, cfg); store != nil {
			opts = append(opts, api.WithCache(store))
		}
	}

	client, err := api.NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	if err := client.VerifyCompatibility(ctx, config.GetStrictServerCompatibility()); err != nil {
		log.Error().Ctx(ctx).Err(err).Str("base_url", client.BaseURL()).Msg("server compatibility check failed")
		return nil, err
	}

	return client, nil
}

// openCacheStore opens the file-backed response cache, or returns nil when
// the cache directory cannot be used. Stale entries are swept here, off the
// request path.
func openCacheStore(ctx context.Context, cfg *config.Config) *cache.Store {
	log := logging.FromContext(ctx)

	dir := cache.DirFromEnv()
	if dir == "" {
		resolved, err := config.GetCacheDir()
		if err != nil {
			log.Warn().Ctx(ctx).Err(err).Msg("cache directory unavailable, requests will hit the network")
			return nil
		}
		dir = resolved
	}

	ttl, err := cache.ResolveTTL(cfg.API.CacheTTLSeconds)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Int("seconds", cfg.API.CacheTTLSeconds).Msg("configured cache TTL rejected, using default")
		ttl = cache.DefaultTTL
	}

	store, err := cache.Open(ctx, dir, ttl)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("dir", dir).Msg("response cache unavailable, requests will hit the network")
		return nil
	}

	if removed, sweepErr := store.Sweep(); sweepErr == nil && removed > 0 {
		log.Debug().Ctx(ctx).Int("removed", removed).Msg("swept stale cache entries")
	}

	return store
}

// requireProject reads the --project flag, failing with a usage error when
// it is empty.
func requireProject(cmd *cobra.Command) (string, error) {
	projectID, err := cmd.Flags().GetString("project")
	if err != nil {
		return "", err
	}
	if projectID == "" {
		return "", errors.New("--project is required")
	}
	return projectID, nil
}
