package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/cotstudio/cot/internal/logging"
)

// ServerVersionConstraint is the range of server versions this CLI supports.
const ServerVersionConstraint = ">= 1.2.0, < 2.0.0"

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// SkipVersionCheckKey is the context key for skipping server version validation.
const SkipVersionCheckKey contextKey = "skip_version_check"

// ServerInfo describes the server build and corpus totals reported by
// GET /v1/server/info. APIVersion is the contract version checked against
// ServerVersionConstraint; Version is the server build.
type ServerInfo struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	APIVersion    string `json:"api_version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	ProjectCount  int    `json:"project_count"`
	DocumentCount int    `json:"document_count"`
}

// GetServerInfo fetches build and corpus metadata from the server. The
// response is never cached so that health checks always hit the network.
func (c *Client) GetServerInfo(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.getJSON(ctx, "/server/info", nil, &info, false); err != nil {
		return nil, fmt.Errorf("fetching server info: %w", err)
	}
	return &info, nil
}

// CheckServerVersion validates a server version string against
// ServerVersionConstraint.
func CheckServerVersion(version string) error {
	constraint, err := semver.NewConstraint(ServerVersionConstraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return fmt.Errorf("%w: server reported invalid version %q: %v",
			ErrIncompatibleServer, version, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: server is %s, supported range is %s",
			ErrIncompatibleServer, version, ServerVersionConstraint)
	}

	return nil
}

// VerifyCompatibility fetches the server version and checks it against the
// supported range. In strict mode an out-of-range server is an error;
// otherwise a warning is logged and the CLI proceeds. When ctx carries
// SkipVersionCheckKey set to true, the check is skipped entirely.
func (c *Client) VerifyCompatibility(ctx context.Context, strict bool) error {
	log := logging.FromContext(ctx).With().Str("component", "api").Logger()

	if skip, ok := ctx.Value(SkipVersionCheckKey).(bool); ok && skip {
		log.Debug().Msg("server version check skipped")
		return nil
	}

	info, err := c.GetServerInfo(ctx)
	if err != nil {
		return fmt.Errorf("checking server compatibility: %w", err)
	}

	if err := CheckServerVersion(info.APIVersion); err != nil {
		if strict {
			return err
		}
		log.Warn().
			Str("api_version", info.APIVersion).
			Str("supported", ServerVersionConstraint).
			Msg("server API version outside supported range; pass --skip-version-check to silence or COTSTUDIO_STRICT_COMPATIBILITY=true to fail")
		return nil
	}

	log.Debug().
		Str("api_version", info.APIVersion).
		Msg("server API version is compatible")
	return nil
}
