package setdefault

import (
	"context"
	"fmt"

	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// SetDefaultOptions defines the options for the SetDefault command.
type SetDefaultOptions struct {
	Runtime *core.Runtime
	// Version is required; the pin file is not consulted
	Version string
}

// SetDefault points the default alias at an installed version.
func SetDefault(ctx context.Context, opts SetDefaultOptions) (*types.CommandResult, error) {
	log := logging.GetLogger("commands.setdefault")
	log.Debug().Str("command", "SetDefault").Msg("Executing command")

	if opts.Version == "" {
		return nil, errors.New(errors.ErrMissingVersion, "a version is required to set the default")
	}

	rt := opts.Runtime
	err := rt.Locked(ctx, func() error {
		return rt.Aliases.SetDefault(opts.Version)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "SetDefault").Str("version", opts.Version).Msg("Command finished")
	return &types.CommandResult{
		Command: "default",
		Version: opts.Version,
		Changed: true,
		Message: fmt.Sprintf("Default set to %s", opts.Version),
	}, nil
}
