package functional

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// aFakeHomeDirectory is a no-op because the Before hook already
// creates the home. This step exists so feature files read naturally.
func aFakeHomeDirectory(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

// aUvExecutableAt drops a stub uv at rel inside the fake home that
// prints the given version line, and puts its directory on the
// scenario PATH.
func aUvExecutableAt(ctx context.Context, rel, version string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	target := filepath.Join(state.homeDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ctx, err
	}

	script := fmt.Sprintf("#!/bin/sh\necho \"%s\"\n", version)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		return ctx, err
	}

	state.pathDirs = append(state.pathDirs, filepath.Dir(target))
	return ctx, nil
}

// iRun executes a command string, replacing "uvhow" with the test
// binary path, in a scrubbed environment rooted at the fake home.
func iRun(ctx context.Context, command string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	args := strings.Fields(command)
	if len(args) > 0 && args[0] == "uvhow" {
		args[0] = state.binPath
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = []string{
		"HOME=" + state.homeDir,
		"PATH=" + strings.Join(state.pathDirs, string(os.PathListSeparator)),
		"UVHOW_CONFIG=" + filepath.Join(state.homeDir, "uvhow-config.toml"),
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	state.stdout = stdout.String()
	state.stderr = stderr.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			state.exitCode = exitErr.ExitCode()
		} else {
			return ctx, fmt.Errorf("command execution failed: %w", err)
		}
	} else {
		state.exitCode = 0
	}

	return ctx, nil
}

func theExitCodeIs(ctx context.Context, expected int) error {
	state := getState(ctx)
	if state.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, state.exitCode, state.stdout, state.stderr)
	}
	return nil
}

func theOutputContains(ctx context.Context, expected string) error {
	state := getState(ctx)
	if !strings.Contains(state.stdout, expected) {
		return fmt.Errorf("stdout does not contain %q\nstdout: %s\nstderr: %s",
			expected, state.stdout, state.stderr)
	}
	return nil
}

func theJSONOutputReports(ctx context.Context, field, expected string) error {
	state := getState(ctx)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(state.stdout), &decoded); err != nil {
		return fmt.Errorf("stdout is not JSON: %w\nstdout: %s", err, state.stdout)
	}

	got, ok := decoded[field]
	if !ok {
		return fmt.Errorf("JSON output has no %q field\nstdout: %s", field, state.stdout)
	}
	if fmt.Sprintf("%v", got) != expected {
		return fmt.Errorf("JSON %s = %v, want %s", field, got, expected)
	}
	return nil
}
