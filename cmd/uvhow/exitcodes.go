package main

import "os"

// Exit codes. "Not installed" is an informative result, not a failure,
// and exits with ExitSuccess.
const (
	// ExitSuccess indicates detection completed (including "not installed")
	ExitSuccess = 0

	// ExitGeneral indicates an unexpected internal failure
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments
	ExitUsage = 2
)

// exitWithCode exits with the specified exit code
func exitWithCode(code int) {
	os.Exit(code)
}
