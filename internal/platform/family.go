// Package platform identifies the host operating system family.
//
// Installation channels are family-specific: Homebrew exists only on
// Unix-like systems, Scoop and Chocolatey only on Windows, and the
// filesystem layout of pip and pipx differs between the two. The
// classification rules are therefore keyed by Family.
package platform

import "runtime"

// Family groups operating systems by their installation-channel
// conventions.
type Family string

const (
	Linux   Family = "linux"
	Darwin  Family = "darwin"
	Windows Family = "windows"
)

// Detect returns the family for the current host. Unix-like systems
// without a family of their own (the BSDs, illumos) report Linux,
// whose filesystem conventions they share.
func Detect() Family {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	default:
		return Linux
	}
}

// IsWindows reports whether the family uses Windows path and
// installation conventions.
func (f Family) IsWindows() bool {
	return f == Windows
}

// Label returns the human-readable name of the family.
func (f Family) Label() string {
	switch f {
	case Linux:
		return "Linux"
	case Darwin:
		return "macOS"
	case Windows:
		return "Windows"
	}
	return string(f)
}
