package list

import (
	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	Runtime *core.Runtime
}

// List enumerates installed toolchains, marking the default and the one
// the session currently resolves to. Entries are compared by canonical
// path, so an alias reached through any chain of links still matches.
//
// A default alias that no longer resolves is an error.
func List(opts ListOptions) (*types.ListResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Msg("Executing command")

	rt := opts.Runtime
	versions, err := rt.Store.List()
	if err != nil {
		return nil, err
	}

	defaultPath, hasDefault, err := rt.Aliases.ResolveDefault()
	if err != nil {
		return nil, err
	}

	currentPath := ""
	if session := rt.Env.ShellPath(); session != "" {
		if resolved, err := rt.FS.EvalSymlinks(session); err == nil {
			currentPath = resolved
		}
	}

	result := &types.ListResult{Toolchains: make([]types.ToolchainInfo, 0, len(versions))}
	for _, v := range versions {
		info := types.ToolchainInfo{Version: v, Path: rt.Store.PathFor(v)}
		if canonical, err := rt.FS.EvalSymlinks(info.Path); err == nil {
			info.Default = hasDefault && canonical == defaultPath
			info.Current = currentPath != "" && canonical == currentPath
		}
		result.Toolchains = append(result.Toolchains, info)
	}

	log.Info().Str("command", "List").Int("count", len(result.Toolchains)).Msg("Command finished")
	return result, nil
}
