package detect

import (
	"fmt"
	"path/filepath"

	"github.com/uvhow-dev/uvhow/internal/platform"
)

// Marker identifies a filesystem location whose existence signals that
// a particular package manager is in play on this host.
type Marker int

const (
	// MarkerCargoBin is the Cargo home's bin directory
	// ($CARGO_HOME/bin, default ~/.cargo/bin).
	MarkerCargoBin Marker = iota

	// MarkerPipxVenvs is the root under which pipx keeps its managed
	// virtual environments.
	MarkerPipxVenvs

	// MarkerScoopRoot is the Scoop install root (Windows).
	MarkerScoopRoot

	// MarkerChocolateyRoot is the Chocolatey install root (Windows).
	MarkerChocolateyRoot

	// MarkerUserSite is the target package's directory under the
	// per-user site-packages root, signalling a `pip install --user`.
	MarkerUserSite

	// MarkerSystemSite is the target package's directory under a
	// system-wide site-packages root.
	MarkerSystemSite
)

var markerNames = map[Marker]string{
	MarkerCargoBin:       "cargo-bin",
	MarkerPipxVenvs:      "pipx-venvs",
	MarkerScoopRoot:      "scoop-root",
	MarkerChocolateyRoot: "chocolatey-root",
	MarkerUserSite:       "user-site-packages",
	MarkerSystemSite:     "system-site-packages",
}

func (m Marker) String() string {
	if name, ok := markerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Marker(%d)", int(m))
}

// ProbeContext carries the ambient signals the classification rules
// consume. Built fresh per detection call and read-only afterwards.
type ProbeContext struct {
	// Family is the host operating system family.
	Family platform.Family

	// Home is the user's home (Unix) or profile (Windows) directory.
	Home string

	// VirtualEnv is the root of the activated virtual environment
	// ($VIRTUAL_ENV), or empty when none is active.
	VirtualEnv string

	// Markers maps each detected marker to the existing path that
	// triggered it. Absent markers have no entry.
	Markers map[Marker]string
}

// HasMarker reports whether the marker was found on disk.
func (c *ProbeContext) HasMarker(m Marker) bool {
	_, ok := c.Markers[m]
	return ok
}

// MarkerPath returns the detected path for the marker, or "" when
// absent.
func (c *ProbeContext) MarkerPath(m Marker) string {
	return c.Markers[m]
}

// buildProbeContext gathers environment signals for one detection run.
// Individual marker checks never fail the probe: an errored stat or
// glob degrades to "marker absent" with a debug log entry.
func (d *Detector) buildProbeContext(name string) *ProbeContext {
	ctx := &ProbeContext{
		Family:     d.family,
		Home:       d.home,
		VirtualEnv: d.getenv("VIRTUAL_ENV"),
		Markers:    make(map[Marker]string),
	}

	cargoHome := d.getenv("CARGO_HOME")
	if cargoHome == "" && d.home != "" {
		cargoHome = filepath.Join(d.home, ".cargo")
	}
	if cargoHome != "" {
		d.noteMarker(ctx, MarkerCargoBin, filepath.Join(cargoHome, "bin"))
	}

	for _, root := range d.pipxVenvRoots() {
		if d.noteMarker(ctx, MarkerPipxVenvs, root) {
			break
		}
	}

	if d.family.IsWindows() {
		scoop := d.getenv("SCOOP")
		if scoop == "" && d.home != "" {
			scoop = filepath.Join(d.home, "scoop")
		}
		if scoop != "" {
			d.noteMarker(ctx, MarkerScoopRoot, scoop)
		}

		choco := d.getenv("ChocolateyInstall")
		if choco == "" {
			choco = `C:\ProgramData\chocolatey`
		}
		d.noteMarker(ctx, MarkerChocolateyRoot, choco)
	}

	d.noteSiteMarker(ctx, MarkerUserSite, d.userSitePatterns(name))
	d.noteSiteMarker(ctx, MarkerSystemSite, d.systemSitePatterns(name))

	return ctx
}

// noteMarker records the marker if the directory exists. Returns
// whether it was recorded.
func (d *Detector) noteMarker(ctx *ProbeContext, m Marker, path string) bool {
	ok, err := d.dirExists(path)
	if err != nil {
		d.logger.Debug("marker check failed, treating as absent",
			"marker", m.String(), "path", path, "error", err)
		return false
	}
	if !ok {
		return false
	}
	ctx.Markers[m] = path
	return true
}

// noteSiteMarker records the marker at the first glob pattern with a
// match. Site-packages roots embed a Python version, so these are
// patterns rather than fixed paths.
func (d *Detector) noteSiteMarker(ctx *ProbeContext, m Marker, patterns []string) {
	for _, pattern := range patterns {
		matches, err := d.glob(pattern)
		if err != nil {
			d.logger.Debug("marker glob failed, treating as absent",
				"marker", m.String(), "pattern", pattern, "error", err)
			continue
		}
		if len(matches) > 0 {
			ctx.Markers[m] = matches[0]
			return
		}
	}
}

// pipxVenvRoots lists candidate pipx venv roots in precedence order:
// the explicit $PIPX_HOME first, then the platform defaults.
func (d *Detector) pipxVenvRoots() []string {
	var roots []string
	if pipxHome := d.getenv("PIPX_HOME"); pipxHome != "" {
		roots = append(roots, filepath.Join(pipxHome, "venvs"))
	}
	if d.home == "" {
		return roots
	}
	if d.family.IsWindows() {
		roots = append(roots,
			filepath.Join(d.home, "pipx", "venvs"),
			filepath.Join(d.home, "AppData", "Local", "pipx", "venvs"),
		)
	} else {
		roots = append(roots,
			filepath.Join(d.home, ".local", "share", "pipx", "venvs"),
			filepath.Join(d.home, ".local", "pipx", "venvs"),
		)
	}
	return roots
}

func (d *Detector) userSitePatterns(name string) []string {
	if d.home == "" {
		return nil
	}
	if d.family.IsWindows() {
		return []string{
			filepath.Join(d.home, "AppData", "Roaming", "Python", "Python*", "site-packages", name),
		}
	}
	return []string{
		filepath.Join(d.home, ".local", "lib", "python*", "site-packages", name),
	}
}

func (d *Detector) systemSitePatterns(name string) []string {
	if d.family.IsWindows() {
		return []string{
			filepath.Join(`C:\`, "Python*", "Lib", "site-packages", name),
			filepath.Join(`C:\`, "Program Files", "Python*", "Lib", "site-packages", name),
		}
	}
	return []string{
		filepath.Join("/usr/lib", "python3*", "dist-packages", name),
		filepath.Join("/usr/lib", "python3*", "site-packages", name),
		filepath.Join("/usr/local/lib", "python3*", "site-packages", name),
	}
}
