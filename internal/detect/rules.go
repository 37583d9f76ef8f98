package detect

import "strings"

// rule pairs a predicate with the channel it proves. Rules are
// evaluated top to bottom and the first match wins.
type rule struct {
	method Method
	desc   string
	match  func(q *pathQuery) bool
}

// Rule ordering is a structural invariant, not an accident: several
// patterns are ancestors or substrings of later ones, so the specific
// rule must run before the general one. A pipx venv lives under the
// home directory, so pipx precedes every home-relative pip rule; a
// user-site marker must flip ~/.local/bin to pip (user) before the
// standalone-installer rule claims it; scoop and chocolatey trees sit
// under paths the generic Windows pip rules would also accept.
var unixRules = []rule{
	{MethodCargo, "cargo home bin", func(q *pathQuery) bool {
		return q.underRoot(q.ctx.MarkerPath(MarkerCargoBin)) || q.hasSeq(".cargo", "bin")
	}},
	{MethodPipx, "pipx-managed venv", func(q *pathQuery) bool {
		return q.hasSeq("pipx", "venvs", q.name) || q.underRoot(q.ctx.MarkerPath(MarkerPipxVenvs))
	}},
	{MethodHomebrew, "homebrew prefix or cellar", func(q *pathQuery) bool {
		return q.hasSegFold("Cellar") ||
			q.underRoot("/opt/homebrew") ||
			q.underRoot("/home/linuxbrew/.linuxbrew")
	}},
	{MethodPipVirtualEnv, "active or named virtualenv bin", func(q *pathQuery) bool {
		if q.ctx.VirtualEnv != "" && q.underRoot(q.ctx.VirtualEnv) && q.parentIs("bin") {
			return true
		}
		return q.namedVenv("bin")
	}},
	{MethodPipUser, "~/.local/bin with user site-packages", func(q *pathQuery) bool {
		return q.ctx.HasMarker(MarkerUserSite) && q.underHome(".local", "bin")
	}},
	{MethodStandalone, "~/.local/bin", func(q *pathQuery) bool {
		return q.underHome(".local", "bin") && q.lastIsName()
	}},
	{MethodPipSystem, "system bin with system site-packages", func(q *pathQuery) bool {
		return q.ctx.HasMarker(MarkerSystemSite) &&
			(q.underRoot("/usr/local/bin") || q.underRoot("/usr/bin"))
	}},
	{MethodPipUser, "other home bin with user site-packages", func(q *pathQuery) bool {
		return q.ctx.HasMarker(MarkerUserSite) && q.underRoot(q.ctx.Home) && q.parentIs("bin")
	}},
}

var windowsRules = []rule{
	{MethodPipWindowsStore, "windows store python alias", func(q *pathQuery) bool {
		return q.hasSeq("microsoft", "windowsapps")
	}},
	{MethodStandalone, "appdata local programs", func(q *pathQuery) bool {
		return q.hasSeq("appdata", "local", "programs", q.name)
	}},
	{MethodCargo, "cargo home bin", func(q *pathQuery) bool {
		return q.underRoot(q.ctx.MarkerPath(MarkerCargoBin)) || q.hasSeq(".cargo", "bin")
	}},
	{MethodScoop, "scoop apps or shims", func(q *pathQuery) bool {
		return q.hasSeq("scoop", "apps", q.name) ||
			q.hasSeq("scoop", "shims") ||
			q.underRoot(q.ctx.MarkerPath(MarkerScoopRoot))
	}},
	{MethodChocolatey, "chocolatey root", func(q *pathQuery) bool {
		return q.hasSeq("chocolatey", "bin") ||
			q.hasSeq("programdata", "chocolatey") ||
			q.underRoot(q.ctx.MarkerPath(MarkerChocolateyRoot))
	}},
	{MethodPipx, "pipx-managed venv", func(q *pathQuery) bool {
		return q.hasSeq("pipx", "venvs", q.name) || q.underRoot(q.ctx.MarkerPath(MarkerPipxVenvs))
	}},
	{MethodPipVirtualEnv, "active or named virtualenv scripts", func(q *pathQuery) bool {
		if q.ctx.VirtualEnv != "" && q.underRoot(q.ctx.VirtualEnv) && q.parentIs("scripts") {
			return true
		}
		return q.namedVenv("scripts")
	}},
	{MethodPipSystem, "python scripts outside user profiles", func(q *pathQuery) bool {
		return q.ctx.HasMarker(MarkerSystemSite) && q.pythonScripts() && !q.hasSeg("users")
	}},
	{MethodPipUser, "roaming python or user profile with user site-packages", func(q *pathQuery) bool {
		return q.ctx.HasMarker(MarkerUserSite) &&
			(q.hasSeq("appdata", "roaming", "python") || q.hasSeg("users"))
	}},
}

// Classify maps a resolved executable path plus probe signals to
// exactly one Method. Pure: same inputs, same answer.
func Classify(path, name string, ctx *ProbeContext) Method {
	method, _ := classify(path, name, ctx)
	return method
}

func classify(path, name string, ctx *ProbeContext) (Method, string) {
	q := newPathQuery(path, name, ctx)

	rules := unixRules
	if ctx.Family.IsWindows() {
		rules = windowsRules
	}

	for _, r := range rules {
		if r.match(q) {
			return r.method, r.desc
		}
	}
	return MethodUnknown, "no rule matched"
}

// pathQuery is a pre-split view of the resolved path. Matching works
// on path components rather than substrings so that a directory named
// "scoophouse" never matches a "scoop" rule. Windows comparisons fold
// case and both separators are accepted, which also lets the engine
// classify foreign-family fixture paths in tests.
type pathQuery struct {
	segs []string
	name string
	ctx  *ProbeContext
	fold bool
}

func newPathQuery(path, name string, ctx *ProbeContext) *pathQuery {
	q := &pathQuery{
		segs: splitPath(path),
		name: name,
		ctx:  ctx,
		fold: ctx.Family.IsWindows(),
	}
	if q.fold {
		for i, s := range q.segs {
			q.segs[i] = strings.ToLower(s)
		}
		q.name = strings.ToLower(name)
	}
	return q
}

func splitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

func (q *pathQuery) eq(a, b string) bool {
	if q.fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// hasSeq reports whether want occurs as consecutive path components.
func (q *pathQuery) hasSeq(want ...string) bool {
	if len(want) == 0 || len(q.segs) < len(want) {
		return false
	}
outer:
	for i := 0; i <= len(q.segs)-len(want); i++ {
		for j, w := range want {
			if !q.eq(q.segs[i+j], w) {
				continue outer
			}
		}
		return true
	}
	return false
}

func (q *pathQuery) hasSeg(s string) bool {
	return q.hasSeq(s)
}

// hasSegFold is a case-insensitive single-component check regardless
// of family. Homebrew's Cellar appears capitalized on macOS and
// lowercased through some symlink layouts.
func (q *pathQuery) hasSegFold(s string) bool {
	for _, seg := range q.segs {
		if strings.EqualFold(seg, s) {
			return true
		}
	}
	return false
}

// underRoot reports whether the path lies strictly below root.
func (q *pathQuery) underRoot(root string) bool {
	if root == "" {
		return false
	}
	rs := splitPath(root)
	if len(rs) == 0 || len(q.segs) <= len(rs) {
		return false
	}
	for i, r := range rs {
		if !q.eq(q.segs[i], r) {
			return false
		}
	}
	return true
}

// underHome reports whether the path lies below home joined with rel.
func (q *pathQuery) underHome(rel ...string) bool {
	if q.ctx.Home == "" {
		return false
	}
	rs := append(splitPath(q.ctx.Home), rel...)
	if len(q.segs) <= len(rs) {
		return false
	}
	for i, r := range rs {
		if !q.eq(q.segs[i], r) {
			return false
		}
	}
	return true
}

// parentIs reports whether the executable's containing directory has
// the given name.
func (q *pathQuery) parentIs(dir string) bool {
	return len(q.segs) >= 2 && q.eq(q.segs[len(q.segs)-2], dir)
}

// lastIsName reports whether the final component is the target
// executable, ignoring a Windows .exe suffix.
func (q *pathQuery) lastIsName() bool {
	if len(q.segs) == 0 {
		return false
	}
	last := q.segs[len(q.segs)-1]
	if q.fold {
		last = strings.TrimSuffix(last, ".exe")
	}
	return q.eq(last, q.name)
}

// namedVenv matches conventional virtualenv directory names holding
// the executable in their bin/Scripts directory, covering venvs that
// are not currently activated.
func (q *pathQuery) namedVenv(binDir string) bool {
	for i := 0; i+2 < len(q.segs); i++ {
		switch q.segs[i] {
		case "venv", ".venv", "env", ".env":
			if q.eq(q.segs[i+1], binDir) && q.lastIsName() {
				return true
			}
		}
	}
	return false
}

// pythonScripts matches a pythonNN/Scripts component pair, the layout
// of system-wide Python installs on Windows.
func (q *pathQuery) pythonScripts() bool {
	for i := 0; i+1 < len(q.segs); i++ {
		if strings.HasPrefix(q.segs[i], "python") && q.eq(q.segs[i+1], "scripts") {
			return true
		}
	}
	return false
}
