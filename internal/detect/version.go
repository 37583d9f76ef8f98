package detect

import (
	"context"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Runner invokes an executable and returns its stdout. The context
// carries the probe deadline; implementations must respect it.
type Runner func(ctx context.Context, path string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, path string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, path, args...).Output()
}

// probeVersion asks the resolved executable for its version, bounded
// by the detector's timeout. Failure is not fatal to detection: a
// non-zero exit, spawn error, or timeout yields an empty version.
func (d *Detector) probeVersion(ctx context.Context, path string) (string, *semver.Version) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	out, err := d.runner(ctx, path, "--version")
	if err != nil {
		d.logger.Debug("version probe failed", "path", path, "error", err)
		return "", nil
	}

	raw, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	raw = strings.TrimSpace(raw)
	return raw, parseVersion(raw)
}

// parseVersion extracts a semantic version from self-reported version
// output like "uv 0.5.9 (b2e2c3a 2024-12-06)". Returns nil when no
// field parses; the raw text is still surfaced to the user.
func parseVersion(raw string) *semver.Version {
	for _, field := range strings.Fields(raw) {
		field = strings.TrimPrefix(field, "v")
		if v, err := semver.NewVersion(field); err == nil {
			return v
		}
	}
	return nil
}
