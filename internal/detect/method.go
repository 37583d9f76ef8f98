package detect

import (
	"fmt"

	"github.com/uvhow-dev/uvhow/internal/platform"
)

// Method is the installation channel that placed the target executable
// on disk. Exactly one value is produced per detection run.
type Method int

const (
	MethodUnknown Method = iota
	MethodStandalone
	MethodCargo
	MethodHomebrew
	MethodScoop
	MethodChocolatey
	MethodPipx
	MethodPipVirtualEnv
	MethodPipUser
	MethodPipSystem
	MethodPipWindowsStore

	methodCount // sentinel, keep last
)

var methodLabels = map[Method]string{
	MethodUnknown:         "Unknown",
	MethodStandalone:      "Standalone installer",
	MethodCargo:           "Cargo",
	MethodHomebrew:        "Homebrew",
	MethodScoop:           "Scoop",
	MethodChocolatey:      "Chocolatey",
	MethodPipx:            "pipx",
	MethodPipVirtualEnv:   "pip (virtual environment)",
	MethodPipUser:         "pip (user)",
	MethodPipSystem:       "pip (system)",
	MethodPipWindowsStore: "pip (Windows Store Python)",
}

// String returns the human-readable channel name.
func (m Method) String() string {
	if label, ok := methodLabels[m]; ok {
		return label
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// advisory holds the upgrade instruction for a channel. The same
// logical channel can need different phrasing per family: system pip
// wants sudo on Unix but not on Windows. %[1]s is the executable name.
type advisory struct {
	unix    string
	windows string
}

var advisories = map[Method]advisory{
	MethodUnknown: {
		unix:    "Cannot determine the upgrade method. Try: %[1]s self update, or reinstall with the standalone installer",
		windows: "Cannot determine the upgrade method. Try: %[1]s self update, or reinstall with the standalone installer",
	},
	MethodStandalone: {
		unix:    "%[1]s self update",
		windows: "%[1]s self update",
	},
	MethodCargo: {
		unix:    "cargo install --git https://github.com/astral-sh/uv %[1]s --force",
		windows: "cargo install --git https://github.com/astral-sh/uv %[1]s --force",
	},
	MethodHomebrew: {
		unix:    "brew upgrade %[1]s",
		windows: "brew upgrade %[1]s",
	},
	MethodScoop: {
		unix:    "scoop update %[1]s",
		windows: "scoop update %[1]s",
	},
	MethodChocolatey: {
		unix:    "choco upgrade %[1]s",
		windows: "choco upgrade %[1]s",
	},
	MethodPipx: {
		unix:    "pipx upgrade %[1]s",
		windows: "pipx upgrade %[1]s",
	},
	MethodPipVirtualEnv: {
		unix:    "pip install --upgrade %[1]s",
		windows: "pip install --upgrade %[1]s",
	},
	MethodPipUser: {
		unix:    "pip install --upgrade --user %[1]s",
		windows: "pip install --upgrade --user %[1]s",
	},
	MethodPipSystem: {
		unix:    "sudo pip install --upgrade %[1]s",
		windows: "pip install --upgrade %[1]s",
	},
	MethodPipWindowsStore: {
		unix:    "pip install --upgrade %[1]s",
		windows: "pip install --upgrade %[1]s",
	},
}

// The advisory table must be total over the enum. A gap is a
// programming error, caught at startup rather than surfacing as an
// empty instruction at detection time.
func init() {
	for m := MethodUnknown; m < methodCount; m++ {
		adv, ok := advisories[m]
		if !ok || adv.unix == "" || adv.windows == "" {
			panic(fmt.Sprintf("detect: no upgrade advisory for %s", m))
		}
		if _, ok := methodLabels[m]; !ok {
			panic(fmt.Sprintf("detect: no label for Method(%d)", int(m)))
		}
	}
}

// UpgradeCommand returns the upgrade instruction for the channel,
// phrased for the given family, with name substituted for the
// executable.
func (m Method) UpgradeCommand(family platform.Family, name string) string {
	adv := advisories[m]
	if family.IsWindows() {
		return fmt.Sprintf(adv.windows, name)
	}
	return fmt.Sprintf(adv.unix, name)
}
