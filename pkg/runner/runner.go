// Package runner executes manifest scripts inside a toolchain's environment.
package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/manifest"
)

// EnvironmentFile is the script every toolchain ships to set up its variables
const EnvironmentFile = "oss-cad-suite/environment"

// Options configures a script run
type Options struct {
	Manifest *manifest.Manifest
	Script   string
	// ToolchainDir is the installed toolchain the script runs with
	ToolchainDir string
	// Dir is the working directory; empty means the manifest's directory
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command returns the shell command line that runs script with the
// toolchain environment sourced first.
func Command(toolchainDir, script string) string {
	env := filepath.Join(toolchainDir, filepath.FromSlash(EnvironmentFile))
	return fmt.Sprintf("source %s && %s", quote(env), script)
}

// Run executes a named script. A script that runs and exits non-zero
// returns a SCRIPT_FAILED error carrying the exit code.
func Run(ctx context.Context, opts Options) error {
	logger := logging.GetLogger("runner")

	m := opts.Manifest
	script, ok := m.Scripts[opts.Script]
	if !ok {
		available := m.ScriptNames()
		quoted := make([]string, len(available))
		for i, name := range available {
			quoted[i] = "'" + name + "'"
		}
		msg := fmt.Sprintf("unknown script '%s'", opts.Script)
		if len(quoted) > 0 {
			msg += ". Available scripts are " + strings.Join(quoted, ", ")
		} else {
			msg += ". The manifest defines no scripts"
		}
		return errors.New(errors.ErrInvalidInput, msg).WithDetail(errors.DetailPath, m.Path)
	}

	envFile := filepath.Join(opts.ToolchainDir, filepath.FromSlash(EnvironmentFile))
	if _, err := os.Stat(envFile); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidState, "toolchain environment '%s' is missing", envFile).
			WithDetail(errors.DetailPath, envFile)
	}

	shell := m.Shell
	if shell == "" {
		shell = manifest.DefaultShell
	}

	dir := opts.Dir
	if dir == "" && m.Path != "" {
		dir = filepath.Dir(m.Path)
	}

	cmd := exec.CommandContext(ctx, shell, "-c", Command(opts.ToolchainDir, script))
	cmd.Dir = dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	logger.Debug().
		Str("script", opts.Script).
		Str("shell", shell).
		Str("toolchain", opts.ToolchainDir).
		Msg("Running script")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Newf(errors.ErrScriptFailed, "script '%s' exited with status %d",
				opts.Script, exitErr.ExitCode()).
				WithDetail(errors.DetailExitCode, exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrIO, "failed to run script '%s' with '%s'", opts.Script, shell)
	}
	return nil
}

// quote wraps s in single quotes for POSIX shells and fish
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
