package run

import (
	"context"
	"io"

	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/manifest"
	"github.com/arthur-debert/icicle/pkg/runner"
	"github.com/arthur-debert/icicle/pkg/store"
	"github.com/arthur-debert/icicle/pkg/types"
)

// RunOptions defines the options for the Run command.
type RunOptions struct {
	Runtime *core.Runtime
	Script  string
	// Toolchain overrides the pin file and the manifest's toolchain
	Toolchain string
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
}

// Run executes a script from the project manifest with its toolchain's
// environment sourced.
func Run(ctx context.Context, opts RunOptions) (*types.ScriptResult, error) {
	log := logging.GetLogger("commands.run")
	log.Debug().Str("command", "Run").Str("script", opts.Script).Msg("Executing command")

	rt := opts.Runtime
	m, found, err := manifest.LoadFrom(rt.FS, rt.Env.WorkDir())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Newf(errors.ErrConfig, "no icicle.yml found in '%s'", rt.Env.WorkDir()).
			WithDetail(errors.DetailPath, rt.Env.WorkDir())
	}

	res, err := rt.Resolver.Resolve(opts.Toolchain)
	if err != nil {
		return nil, err
	}
	toolchainDir, err := toolchainDir(rt, res.Version)
	if err != nil {
		return nil, err
	}

	logger := logging.WithFields(map[string]interface{}{
		"script":    opts.Script,
		"toolchain": res.Version,
		"source":    res.Source.String(),
	})
	logger.Debug().Str("dir", toolchainDir).Msg("Running script")

	result := &types.ScriptResult{Script: opts.Script, Toolchain: res.Version}
	err = runner.Run(ctx, runner.Options{
		Manifest:     m,
		Script:       opts.Script,
		ToolchainDir: toolchainDir,
		Stdin:        opts.Stdin,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
	})
	if err != nil {
		if code, ok := errors.GetErrorDetails(err)[errors.DetailExitCode].(int); ok {
			result.ExitCode = code
		}
		return result, err
	}

	log.Info().Str("command", "Run").Str("script", opts.Script).Str("toolchain", res.Version).Msg("Command finished")
	return result, nil
}

// toolchainDir accepts an installed version or an alias name
func toolchainDir(rt *core.Runtime, name string) (string, error) {
	if rt.Store.Exists(name) {
		return rt.Store.PathFor(name), nil
	}
	if rt.Aliases.Exists(name) {
		path, _, err := rt.Aliases.Resolve(name)
		return path, err
	}
	return "", store.NotInstalled(name)
}
