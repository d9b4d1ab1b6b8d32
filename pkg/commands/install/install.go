package install

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// InstallOptions defines the options for the Install command.
type InstallOptions struct {
	Runtime *core.Runtime
	// Version to install; empty resolves from the pin file or manifest
	Version string
	// Progress receives a download progress bar when non-nil
	Progress io.Writer
}

// Install downloads and installs a toolchain version.
func Install(ctx context.Context, opts InstallOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "Install").Msg("Executing command")

	res, err := opts.Runtime.Resolver.Resolve(opts.Version)
	if err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(log, "install "+res.Version)
	installed, err := opts.Runtime.Installer(ctx, opts.Progress).Install(ctx, res.Version)
	if err != nil {
		return nil, err
	}
	done()

	result := &types.CommandResult{
		Command: "install",
		Version: res.Version,
		Changed: !installed.AlreadyInstalled,
		Message: fmt.Sprintf("Installed %s", res.Version),
	}
	if installed.AlreadyInstalled {
		result.Message = fmt.Sprintf("%s is already installed", res.Version)
	}

	log.Info().Str("command", "Install").Str("version", res.Version).Bool("changed", result.Changed).Msg("Command finished")
	return result, nil
}
