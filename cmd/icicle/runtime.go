package icicle

import (
	"os"
	"time"

	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/paths"
	"github.com/arthur-debert/icicle/pkg/ui"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags of the root command
type globalOptions struct {
	verbosity int
	format    string
	dir       string
}

// loadRuntime builds the Runtime for a command. Bootstrap mode does not
// need a session link and falls back to ~/.icicle for ICICLE_HOME.
func (g *globalOptions) loadRuntime(mode paths.Mode) (*core.Runtime, error) {
	return core.Load(core.LoadOptions{
		Mode:    mode,
		WorkDir: g.dir,
	})
}

// render prints result in the format chosen by --format, or the
// configured one when the flag is not set.
func (g *globalOptions) render(cmd *cobra.Command, rt *core.Runtime, result interface{}) error {
	format := g.format
	if format == "" {
		format = rt.Config.Output.Format
	}
	renderer, err := ui.NewRendererFor(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

// progressWriter returns stderr when a download progress bar can be shown
func (g *globalOptions) progressWriter() *os.File {
	if g.format == "json" || !isTerminal(os.Stderr) {
		return nil
	}
	return os.Stderr
}

// ExitCode maps an error returned by the root command to a process exit
// status. A failed script passes its own status through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.IsErrorCode(err, errors.ErrScriptFailed) {
		if code, ok := errors.GetErrorDetails(err)[errors.DetailExitCode].(int); ok && code > 0 {
			return code
		}
	}
	return 1
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidInput, "invalid duration '%s'", s)
	}
	if d < 0 {
		return 0, errors.Newf(errors.ErrInvalidInput, "duration must not be negative: '%s'", s)
	}
	return d, nil
}
