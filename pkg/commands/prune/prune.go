package prune

import (
	"context"
	"time"

	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/linker"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// PruneOptions defines the options for the Prune command.
type PruneOptions struct {
	Runtime *core.Runtime
	// MaxAge removes sessions with no recorded owner once they are older
	MaxAge time.Duration
	DryRun bool
	// Alive overrides the process check, for tests
	Alive func(pid int) bool
}

// Prune removes session links left behind by shells that have exited.
// The calling shell's own session is always kept.
func Prune(ctx context.Context, opts PruneOptions) (*types.PruneResult, error) {
	log := logging.GetLogger("commands.prune")
	log.Debug().Str("command", "Prune").Msg("Executing command")

	rt := opts.Runtime
	var pruned *linker.PruneResult
	err := rt.Locked(ctx, func() error {
		var err error
		pruned, err = rt.Linker.Prune(linker.PruneOptions{
			Keep:   rt.Env.ShellPath(),
			MaxAge: opts.MaxAge,
			Alive:  opts.Alive,
			DryRun: opts.DryRun,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &types.PruneResult{Removed: pruned.Removed, Kept: pruned.Kept}
	if result.Removed == nil {
		result.Removed = []string{}
	}

	log.Info().Str("command", "Prune").Int("removed", len(result.Removed)).Msg("Command finished")
	return result, nil
}
