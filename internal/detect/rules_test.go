package detect

import (
	"testing"

	"github.com/uvhow-dev/uvhow/internal/platform"
)

func unixCtx(mods ...func(*ProbeContext)) *ProbeContext {
	ctx := &ProbeContext{
		Family:  platform.Linux,
		Home:    "/home/alice",
		Markers: make(map[Marker]string),
	}
	for _, mod := range mods {
		mod(ctx)
	}
	return ctx
}

func windowsCtx(mods ...func(*ProbeContext)) *ProbeContext {
	ctx := &ProbeContext{
		Family:  platform.Windows,
		Home:    `C:\Users\alice`,
		Markers: make(map[Marker]string),
	}
	for _, mod := range mods {
		mod(ctx)
	}
	return ctx
}

func withMarker(m Marker, path string) func(*ProbeContext) {
	return func(ctx *ProbeContext) { ctx.Markers[m] = path }
}

func withVirtualEnv(root string) func(*ProbeContext) {
	return func(ctx *ProbeContext) { ctx.VirtualEnv = root }
}

func TestClassifyUnix(t *testing.T) {
	tests := []struct {
		name string
		path string
		ctx  *ProbeContext
		want Method
	}{
		{
			name: "standalone installer",
			path: "/home/alice/.local/bin/uv",
			ctx:  unixCtx(),
			want: MethodStandalone,
		},
		{
			name: "cargo bin",
			path: "/home/alice/.cargo/bin/uv",
			ctx:  unixCtx(),
			want: MethodCargo,
		},
		{
			name: "cargo via CARGO_HOME marker",
			path: "/opt/rust/bin/uv",
			ctx:  unixCtx(withMarker(MarkerCargoBin, "/opt/rust/bin")),
			want: MethodCargo,
		},
		{
			name: "homebrew apple silicon prefix",
			path: "/opt/homebrew/bin/uv",
			ctx:  unixCtx(),
			want: MethodHomebrew,
		},
		{
			name: "homebrew cellar",
			path: "/usr/local/Cellar/uv/0.5.9/bin/uv",
			ctx:  unixCtx(),
			want: MethodHomebrew,
		},
		{
			name: "linuxbrew prefix",
			path: "/home/linuxbrew/.linuxbrew/bin/uv",
			ctx:  unixCtx(),
			want: MethodHomebrew,
		},
		{
			name: "pipx venv",
			path: "/home/alice/.local/share/pipx/venvs/uv/bin/uv",
			ctx:  unixCtx(),
			want: MethodPipx,
		},
		{
			name: "active virtualenv",
			path: "/home/alice/project/.venv/bin/uv",
			ctx:  unixCtx(withVirtualEnv("/home/alice/project/.venv")),
			want: MethodPipVirtualEnv,
		},
		{
			name: "named venv without activation",
			path: "/srv/app/venv/bin/uv",
			ctx:  unixCtx(),
			want: MethodPipVirtualEnv,
		},
		{
			name: "pip user overrides standalone when user site present",
			path: "/home/alice/.local/bin/uv",
			ctx:  unixCtx(withMarker(MarkerUserSite, "/home/alice/.local/lib/python3.12/site-packages/uv")),
			want: MethodPipUser,
		},
		{
			name: "pip system",
			path: "/usr/local/bin/uv",
			ctx:  unixCtx(withMarker(MarkerSystemSite, "/usr/local/lib/python3.12/site-packages/uv")),
			want: MethodPipSystem,
		},
		{
			name: "system bin without site marker stays unknown",
			path: "/usr/local/bin/uv",
			ctx:  unixCtx(),
			want: MethodUnknown,
		},
		{
			name: "other home bin with user site",
			path: "/home/alice/tools/bin/uv",
			ctx:  unixCtx(withMarker(MarkerUserSite, "/home/alice/.local/lib/python3.12/site-packages/uv")),
			want: MethodPipUser,
		},
		{
			name: "unrecognized location",
			path: "/srv/shared/uv",
			ctx:  unixCtx(),
			want: MethodUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.path, "uv", tt.ctx); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifyWindows(t *testing.T) {
	tests := []struct {
		name string
		path string
		ctx  *ProbeContext
		want Method
	}{
		{
			name: "windows store python",
			path: `C:\Users\alice\AppData\Local\Microsoft\WindowsApps\PythonSoftwareFoundation.Python.3.12\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodPipWindowsStore,
		},
		{
			name: "standalone installer",
			path: `C:\Users\alice\AppData\Local\Programs\uv\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodStandalone,
		},
		{
			name: "cargo bin",
			path: `C:\Users\alice\.cargo\bin\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodCargo,
		},
		{
			name: "scoop app",
			path: `C:\Users\alice\scoop\apps\uv\current\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodScoop,
		},
		{
			name: "scoop shim",
			path: `C:\Users\alice\scoop\shims\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodScoop,
		},
		{
			name: "chocolatey bin",
			path: `C:\ProgramData\chocolatey\bin\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodChocolatey,
		},
		{
			name: "pipx venv",
			path: `C:\Users\alice\pipx\venvs\uv\Scripts\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodPipx,
		},
		{
			name: "named venv scripts",
			path: `C:\projects\app\.venv\Scripts\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodPipVirtualEnv,
		},
		{
			name: "active virtualenv scripts",
			path: `D:\work\env2\Scripts\uv.exe`,
			ctx:  windowsCtx(withVirtualEnv(`D:\work\env2`)),
			want: MethodPipVirtualEnv,
		},
		{
			name: "system python scripts",
			path: `C:\Python312\Scripts\uv.exe`,
			ctx:  windowsCtx(withMarker(MarkerSystemSite, `C:\Python312\Lib\site-packages\uv`)),
			want: MethodPipSystem,
		},
		{
			name: "system python scripts without marker stays unknown",
			path: `C:\Python312\Scripts\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodUnknown,
		},
		{
			name: "roaming python user scripts",
			path: `C:\Users\alice\AppData\Roaming\Python\Python312\Scripts\uv.exe`,
			ctx: windowsCtx(withMarker(MarkerUserSite,
				`C:\Users\alice\AppData\Roaming\Python\Python312\site-packages\uv`)),
			want: MethodPipUser,
		},
		{
			name: "case-insensitive matching",
			path: `c:\users\alice\SCOOP\Apps\uv\current\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodScoop,
		},
		{
			name: "unrecognized location",
			path: `C:\tools\uv.exe`,
			ctx:  windowsCtx(),
			want: MethodUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.path, "uv", tt.ctx); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

// Ordering is load-bearing: a pipx venv path is also under the home
// directory, and may sit inside an activated virtualenv. The specific
// rule must win over every general one.
func TestClassifyPrecedence(t *testing.T) {
	t.Run("pipx beats pip user marker", func(t *testing.T) {
		ctx := unixCtx(withMarker(MarkerUserSite, "/home/alice/.local/lib/python3.12/site-packages/uv"))
		path := "/home/alice/.local/share/pipx/venvs/uv/bin/uv"

		if got := Classify(path, "uv", ctx); got != MethodPipx {
			t.Errorf("Classify(%q) = %s, want %s", path, got, MethodPipx)
		}
	})

	t.Run("pipx beats active virtualenv", func(t *testing.T) {
		ctx := unixCtx(withVirtualEnv("/home/alice/project/.venv"))
		path := "/home/alice/.local/share/pipx/venvs/uv/bin/uv"

		if got := Classify(path, "uv", ctx); got != MethodPipx {
			t.Errorf("Classify(%q) = %s, want %s", path, got, MethodPipx)
		}
	})

	t.Run("windows store beats user profile pip", func(t *testing.T) {
		ctx := windowsCtx(withMarker(MarkerUserSite,
			`C:\Users\alice\AppData\Roaming\Python\Python312\site-packages\uv`))
		path := `C:\Users\alice\AppData\Local\Microsoft\WindowsApps\uv.exe`

		if got := Classify(path, "uv", ctx); got != MethodPipWindowsStore {
			t.Errorf("Classify(%q) = %s, want %s", path, got, MethodPipWindowsStore)
		}
	})
}

// Every non-Unknown method must be reachable from at least one
// synthetic fixture on some family.
func TestEveryMethodHasAFixture(t *testing.T) {
	fixtures := []struct {
		path string
		ctx  *ProbeContext
	}{
		{"/home/alice/.local/bin/uv", unixCtx()},
		{"/home/alice/.cargo/bin/uv", unixCtx()},
		{"/opt/homebrew/bin/uv", unixCtx()},
		{"/home/alice/.local/share/pipx/venvs/uv/bin/uv", unixCtx()},
		{"/srv/app/venv/bin/uv", unixCtx()},
		{"/home/alice/.local/bin/uv", unixCtx(withMarker(MarkerUserSite, "/x"))},
		{"/usr/local/bin/uv", unixCtx(withMarker(MarkerSystemSite, "/x"))},
		{`C:\Users\alice\scoop\apps\uv\current\uv.exe`, windowsCtx()},
		{`C:\ProgramData\chocolatey\bin\uv.exe`, windowsCtx()},
		{`C:\Users\alice\AppData\Local\Microsoft\WindowsApps\uv.exe`, windowsCtx()},
	}

	covered := make(map[Method]bool)
	for _, f := range fixtures {
		covered[Classify(f.path, "uv", f.ctx)] = true
	}

	for m := MethodUnknown + 1; m < methodCount; m++ {
		if !covered[m] {
			t.Errorf("no fixture classifies as %s", m)
		}
	}
}
