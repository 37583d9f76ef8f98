// Package detect classifies how the uv executable arrived on this
// machine and pairs the classification with the upgrade command for
// that channel.
//
// The pipeline is: resolve the executable on PATH, gather environment
// signals into a ProbeContext, run the ordered rule table for the OS
// family against the resolved path, look up the upgrade advisory, and
// probe the executable for its version. Everything except the version
// probe is local, side-effect-free computation.
package detect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/uvhow-dev/uvhow/internal/config"
	"github.com/uvhow-dev/uvhow/internal/log"
	"github.com/uvhow-dev/uvhow/internal/platform"
)

// DefaultCommand is the executable detected when no name is given.
const DefaultCommand = "uv"

// ErrNotInstalled reports that the target executable is not on PATH.
// It is a normal outcome, not a failure; callers check it with
// errors.Is and render "not installed" rather than an error.
var ErrNotInstalled = errors.New("not installed")

// Result is the immutable record of one detection run.
type Result struct {
	// Name is the executable name that was detected.
	Name string

	// Path is the resolved, symlink-free location of the executable.
	Path string

	// Version is the raw self-reported version line, empty when the
	// probe failed or timed out.
	Version string

	// SemVer is the parsed semantic version, nil when Version is
	// empty or unparseable.
	SemVer *semver.Version

	// Method is the detected installation channel.
	Method Method

	// UpgradeCommand is the advisory for Method, phrased for the
	// host family.
	UpgradeCommand string
}

// Detector performs installation-channel detection. Every external
// seam (PATH lookup, environment, filesystem, process spawning) is a
// field so tests can run detection against synthetic hosts. A Detector
// holds no mutable state across calls; concurrent use is safe.
type Detector struct {
	family    platform.Family
	home      string
	timeout   time.Duration
	logger    log.Logger
	lookPath  func(name string) (string, error)
	getenv    func(key string) string
	dirExists func(path string) (bool, error)
	glob      func(pattern string) ([]string, error)
	runner    Runner
	resolve   func(path string) (string, error)
}

// Option configures a Detector.
type Option func(*Detector)

// WithFamily overrides the detected OS family.
func WithFamily(f platform.Family) Option {
	return func(d *Detector) { d.family = f }
}

// WithHome overrides the user home directory.
func WithHome(home string) Option {
	return func(d *Detector) { d.home = home }
}

// WithTimeout overrides the version-probe timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Detector) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l log.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// WithLookPath overrides PATH resolution.
func WithLookPath(fn func(name string) (string, error)) Option {
	return func(d *Detector) { d.lookPath = fn }
}

// WithGetenv overrides environment lookup.
func WithGetenv(fn func(key string) string) Option {
	return func(d *Detector) { d.getenv = fn }
}

// WithDirExists overrides the marker directory check.
func WithDirExists(fn func(path string) (bool, error)) Option {
	return func(d *Detector) { d.dirExists = fn }
}

// WithGlob overrides the site-packages glob.
func WithGlob(fn func(pattern string) ([]string, error)) Option {
	return func(d *Detector) { d.glob = fn }
}

// WithRunner overrides the version-probe process spawner.
func WithRunner(r Runner) Option {
	return func(d *Detector) { d.runner = r }
}

// WithResolve overrides symlink resolution.
func WithResolve(fn func(path string) (string, error)) Option {
	return func(d *Detector) { d.resolve = fn }
}

// New returns a Detector bound to the real host, adjusted by opts.
func New(opts ...Option) *Detector {
	d := &Detector{
		family:    platform.Detect(),
		timeout:   config.ProbeTimeout(),
		logger:    log.Default(),
		lookPath:  exec.LookPath,
		getenv:    os.Getenv,
		dirExists: defaultDirExists,
		glob:      filepath.Glob,
		runner:    defaultRunner,
		resolve:   defaultResolve,
	}

	if home, err := os.UserHomeDir(); err == nil {
		d.home = home
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.home == "" {
		d.logger.Debug("no home directory; home-relative rules disabled")
	}

	return d
}

// Detect locates name on PATH and classifies its installation channel.
// Returns ErrNotInstalled (wrapped) when name is not resolvable; in
// that case no probe context is built and no process is spawned.
func (d *Detector) Detect(ctx context.Context, name string) (*Result, error) {
	if name == "" {
		name = DefaultCommand
	}

	found, err := d.lookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}

	resolved, err := d.resolve(found)
	if err != nil {
		// Classification still works on the unresolved path; shim
		// indirection just won't be seen through.
		d.logger.Warn("could not resolve executable path", "path", found, "error", err)
		resolved = found
	}

	probeCtx := d.buildProbeContext(name)

	method, matched := classify(resolved, name, probeCtx)
	d.logger.Debug("classified installation",
		"path", resolved, "method", method.String(), "rule", matched)

	version, sv := d.probeVersion(ctx, resolved)

	return &Result{
		Name:           name,
		Path:           resolved,
		Version:        version,
		SemVer:         sv,
		Method:         method,
		UpgradeCommand: method.UpgradeCommand(probeCtx.Family, name),
	}, nil
}

func defaultDirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// defaultResolve yields the absolute, symlink-free location. Rules
// match real install trees (a Homebrew Cellar, a pipx venv), not the
// shims and symlinks that front them.
func defaultResolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
