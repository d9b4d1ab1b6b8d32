package uninstall

import (
	"context"
	"fmt"

	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// UninstallOptions defines the options for the Uninstall command.
type UninstallOptions struct {
	Runtime *core.Runtime
	// Version to remove; empty resolves from the pin file or manifest
	Version string
}

// Uninstall removes an installed toolchain. Aliases and sessions pointing
// at it are left dangling; they fail loudly on their next use.
func Uninstall(ctx context.Context, opts UninstallOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.uninstall")
	log.Debug().Str("command", "Uninstall").Msg("Executing command")

	rt := opts.Runtime
	res, err := rt.Resolver.Resolve(opts.Version)
	if err != nil {
		return nil, err
	}

	wasDefault := false
	err = rt.Locked(ctx, func() error {
		wasDefault = isDefault(rt, res.Version)
		return rt.Store.Remove(res.Version)
	})
	if err != nil {
		return nil, err
	}

	result := &types.CommandResult{
		Command: "uninstall",
		Version: res.Version,
		Changed: true,
		Message: fmt.Sprintf("Uninstalled %s", res.Version),
	}
	if wasDefault {
		log.Warn().Str("version", res.Version).Msg("Removed the default toolchain")
		result.Message += ". It was the default; choose a new one with 'icicle default <version>'"
	}

	log.Info().Str("command", "Uninstall").Str("version", res.Version).Msg("Command finished")
	return result, nil
}

func isDefault(rt *core.Runtime, version string) bool {
	canonical, err := rt.FS.EvalSymlinks(rt.Store.PathFor(version))
	if err != nil {
		return false
	}
	defaultPath, ok, err := rt.Aliases.ResolveDefault()
	return err == nil && ok && defaultPath == canonical
}
