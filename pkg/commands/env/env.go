package env

import (
	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/linker"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/paths"
	"github.com/arthur-debert/icicle/pkg/shell"
	"github.com/arthur-debert/icicle/pkg/types"
)

// EnvOptions defines the options for the Env command.
type EnvOptions struct {
	Runtime *core.Runtime
	// Shell selects the export syntax; empty means bash
	Shell string
	// OwnerPID is the shell the session belongs to, recorded for prune
	OwnerPID int
}

// Env creates a fresh session link pointing at the default alias and
// returns the statements a shell evaluates to use it.
func Env(opts EnvOptions) (*types.EnvResult, error) {
	log := logging.GetLogger("commands.env")
	log.Debug().Str("command", "Env").Msg("Executing command")

	sh, err := shell.Parse(opts.Shell)
	if err != nil {
		return nil, err
	}

	rt := opts.Runtime
	session, err := rt.Linker.Bootstrap(linker.BootstrapOptions{
		Alias:       rt.Aliases.DefaultName(),
		PathEntries: rt.Config.Toolchain.BinSubpaths,
		OwnerPID:    opts.OwnerPID,
	})
	if err != nil {
		return nil, err
	}

	exports := shell.SessionExports(
		paths.EnvShellPath, session.LinkPath,
		paths.EnvIcicleHome, rt.Env.Home(),
		session.PathEntries,
	)
	script, err := shell.Render(sh, exports)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "Env").Str("session", session.LinkPath).Msg("Command finished")
	return &types.EnvResult{
		Session: session.LinkPath,
		Shell:   string(sh),
		Script:  script,
	}, nil
}
