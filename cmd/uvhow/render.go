package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/uvhow-dev/uvhow/internal/detect"
	"github.com/uvhow-dev/uvhow/internal/userconfig"
)

// payload is the --json shape. Stable field names; absent values are
// omitted rather than null.
type payload struct {
	Installed      bool   `json:"installed"`
	Name           string `json:"name"`
	Path           string `json:"path,omitempty"`
	Version        string `json:"version,omitempty"`
	SemVer         string `json:"semver,omitempty"`
	Method         string `json:"method,omitempty"`
	UpgradeCommand string `json:"upgrade_command,omitempty"`
}

func resultPayload(r *detect.Result) payload {
	p := payload{
		Installed:      true,
		Name:           r.Name,
		Path:           r.Path,
		Version:        r.Version,
		Method:         r.Method.String(),
		UpgradeCommand: r.UpgradeCommand,
	}
	if r.SemVer != nil {
		p.SemVer = r.SemVer.String()
	}
	return p
}

func notInstalledPayload(name string) payload {
	return payload{Installed: false, Name: name}
}

func emitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// useEmoji resolves the emoji setting: an explicit --plain flag wins,
// then the config value, with "auto" meaning "only on a terminal".
func useEmoji(setting string, plainFlag bool) bool {
	if plainFlag {
		return false
	}
	switch setting {
	case userconfig.EmojiAlways:
		return true
	case userconfig.EmojiNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

func renderResult(w io.Writer, r *detect.Result, emoji bool) {
	version := r.Version
	if version == "" {
		version = "unknown"
	}

	if emoji {
		fmt.Fprintf(w, "🔍 %s installation detected\n\n", r.Name)
		fmt.Fprintf(w, "✅ Found %s: %s\n", r.Name, version)
		fmt.Fprintf(w, "📍 Location: %s\n\n", r.Path)
		fmt.Fprintf(w, "🎯 Installation method: %s\n", r.Method)
		fmt.Fprintf(w, "💡 To upgrade: %s\n", r.UpgradeCommand)
	} else {
		fmt.Fprintf(w, "%s installation detected\n\n", r.Name)
		fmt.Fprintf(w, "Found %s: %s\n", r.Name, version)
		fmt.Fprintf(w, "Location: %s\n\n", r.Path)
		fmt.Fprintf(w, "Installation method: %s\n", r.Method)
		fmt.Fprintf(w, "To upgrade: %s\n", r.UpgradeCommand)
	}
}

func renderNotInstalled(w io.Writer, name string, emoji bool) {
	if emoji {
		fmt.Fprintf(w, "❌ %s is not installed or not in PATH\n", name)
	} else {
		fmt.Fprintf(w, "%s is not installed or not in PATH\n", name)
	}
	fmt.Fprintf(w, "Install %s: curl -LsSf https://astral.sh/uv/install.sh | sh\n", name)
}
