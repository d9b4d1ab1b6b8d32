package current

import (
	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/current"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// CurrentOptions defines the options for the Current command.
type CurrentOptions struct {
	Runtime *core.Runtime
}

// Current reports the version the session link resolves to.
func Current(opts CurrentOptions) (*types.CurrentResult, error) {
	log := logging.GetLogger("commands.current")
	log.Debug().Str("command", "Current").Msg("Executing command")

	rt := opts.Runtime
	session := rt.Env.ShellPath()

	version, err := current.Current(rt.FS, session, rt.Env.ToolchainsDir())
	if err != nil {
		return nil, err
	}

	result := &types.CurrentResult{Version: version, Session: session}
	if state, err := rt.Linker.Inspect(session); err == nil && state.Set && state.Pointer.Kind == types.PointerAlias {
		result.Via = state.Pointer.Name
	}

	log.Info().Str("command", "Current").Str("version", version).Msg("Command finished")
	return result, nil
}
