// Package config provides environment-variable configuration for uvhow.
//
// uvhow keeps no state on disk beyond an optional config file; the
// handful of knobs it has are read from the environment with documented
// defaults, so scripts and CI can tune behavior without a file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// EnvProbeTimeout overrides the version-probe timeout. Accepts a
	// Go duration ("3s", "500ms") or a bare number of seconds.
	EnvProbeTimeout = "UVHOW_PROBE_TIMEOUT"

	// EnvConfigFile overrides the location of the user config file.
	EnvConfigFile = "UVHOW_CONFIG"

	// DefaultProbeTimeout bounds the `uv --version` invocation. The
	// probe is a local process spawn; if it has not answered in five
	// seconds it is not going to.
	DefaultProbeTimeout = 5 * time.Second
)

// ProbeTimeout returns the configured version-probe timeout from
// UVHOW_PROBE_TIMEOUT. If unset, invalid, or non-positive, returns
// DefaultProbeTimeout.
func ProbeTimeout() time.Duration {
	raw := os.Getenv(EnvProbeTimeout)
	if raw == "" {
		return DefaultProbeTimeout
	}

	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}

	return DefaultProbeTimeout
}

// ConfigFile returns the path of the user config file: UVHOW_CONFIG if
// set, otherwise config.toml under the platform config directory
// (~/.config/uvhow on Linux, ~/Library/Application Support/uvhow on
// macOS, %AppData%\uvhow on Windows).
func ConfigFile() (string, error) {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}

	return filepath.Join(dir, "uvhow", "config.toml"), nil
}
