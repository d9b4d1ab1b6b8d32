package use

import (
	"context"
	"fmt"

	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// UseOptions defines the options for the Use command.
type UseOptions struct {
	Runtime *core.Runtime
	// Version or alias name; empty resolves from the pin file or manifest
	Version string
}

// Use repoints the session link at a toolchain. The name is looked up as
// an installed version first and as an alias second.
func Use(ctx context.Context, opts UseOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.use")
	log.Debug().Str("command", "Use").Msg("Executing command")

	rt := opts.Runtime
	res, err := rt.Resolver.Resolve(opts.Version)
	if err != nil {
		return nil, err
	}

	ptr, err := Target(rt, res.Version)
	if err != nil {
		return nil, err
	}

	err = rt.Locked(ctx, func() error {
		return rt.Linker.Point(rt.Env.ShellPath(), ptr)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("command", "Use").
		Str("version", res.Version).
		Str("source", res.Source.String()).
		Str("pointer", ptr.String()).
		Msg("Command finished")
	return &types.CommandResult{
		Command: "use",
		Version: res.Version,
		Changed: true,
		Message: fmt.Sprintf("Now using %s", res.Version),
	}, nil
}

// Target picks the pointer a name refers to: an installed toolchain, or
// failing that an alias.
func Target(rt *core.Runtime, name string) (types.Pointer, error) {
	if rt.Store.Exists(name) {
		return types.ToolchainRef(name), nil
	}
	if rt.Aliases.Exists(name) {
		return types.AliasRef(name), nil
	}
	return types.Pointer{}, errors.Newf(errors.ErrNotInstalled,
		"unable to find toolchain '%s'. Did you install it with 'icicle install'?", name).
		WithDetail(errors.DetailVersion, name)
}
