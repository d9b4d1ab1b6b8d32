// Package commands provides the high-level command implementations for icicle.
//
// This package is the orchestration layer between the CLI and the toolchain
// store, aliases and session links. Each command lives in its own
// subdirectory:
//   - install/    - Install command
//   - uninstall/  - Uninstall command
//   - setdefault/ - SetDefault command (icicle default)
//   - use/        - Use command
//   - current/    - Current command
//   - list/       - List command
//   - env/        - Env command
//   - run/        - Run command
//   - prune/      - Prune command
//   - genconfig/  - GenConfig command
//
// This file re-exports the command functions so callers need a single import.
package commands

import (
	"context"

	"github.com/arthur-debert/icicle/pkg/commands/current"
	"github.com/arthur-debert/icicle/pkg/commands/env"
	"github.com/arthur-debert/icicle/pkg/commands/genconfig"
	"github.com/arthur-debert/icicle/pkg/commands/install"
	"github.com/arthur-debert/icicle/pkg/commands/list"
	"github.com/arthur-debert/icicle/pkg/commands/prune"
	"github.com/arthur-debert/icicle/pkg/commands/run"
	"github.com/arthur-debert/icicle/pkg/commands/setdefault"
	"github.com/arthur-debert/icicle/pkg/commands/uninstall"
	"github.com/arthur-debert/icicle/pkg/commands/use"
	"github.com/arthur-debert/icicle/pkg/types"
)

// Install downloads and installs a toolchain version.
type InstallOptions = install.InstallOptions

func Install(ctx context.Context, opts InstallOptions) (*types.CommandResult, error) {
	return install.Install(ctx, opts)
}

// Uninstall removes an installed toolchain.
type UninstallOptions = uninstall.UninstallOptions

func Uninstall(ctx context.Context, opts UninstallOptions) (*types.CommandResult, error) {
	return uninstall.Uninstall(ctx, opts)
}

// SetDefault points the default alias at an installed version.
type SetDefaultOptions = setdefault.SetDefaultOptions

func SetDefault(ctx context.Context, opts SetDefaultOptions) (*types.CommandResult, error) {
	return setdefault.SetDefault(ctx, opts)
}

// Use repoints the current session at a toolchain.
type UseOptions = use.UseOptions

func Use(ctx context.Context, opts UseOptions) (*types.CommandResult, error) {
	return use.Use(ctx, opts)
}

// Current reports the version the current session resolves to.
type CurrentOptions = current.CurrentOptions

func Current(opts CurrentOptions) (*types.CurrentResult, error) {
	return current.Current(opts)
}

// List enumerates installed toolchains.
type ListOptions = list.ListOptions

func List(opts ListOptions) (*types.ListResult, error) {
	return list.List(opts)
}

// Env creates a new session and returns its shell setup.
type EnvOptions = env.EnvOptions

func Env(opts EnvOptions) (*types.EnvResult, error) {
	return env.Env(opts)
}

// Run executes a manifest script with its toolchain.
type RunOptions = run.RunOptions

func Run(ctx context.Context, opts RunOptions) (*types.ScriptResult, error) {
	return run.Run(ctx, opts)
}

// Prune removes session links left by exited shells.
type PruneOptions = prune.PruneOptions

func Prune(ctx context.Context, opts PruneOptions) (*types.PruneResult, error) {
	return prune.Prune(ctx, opts)
}

// GenConfig outputs or writes the configuration file.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
