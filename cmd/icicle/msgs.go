package icicle

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Per-shell OSS CAD Suite toolchain manager"
	MsgInstallShort    = "Download and install a toolchain version"
	MsgUninstallShort  = "Remove an installed toolchain"
	MsgDefaultShort    = "Set the toolchain new shells start with"
	MsgUseShort        = "Switch this shell to a toolchain"
	MsgCurrentShort    = "Print the toolchain this shell uses"
	MsgListShort       = "List installed toolchains"
	MsgEnvShort        = "Print shell setup for a new session"
	MsgRunShort        = "Run a script from icicle.yml with its toolchain"
	MsgPruneShort      = "Remove sessions of shells that have exited"
	MsgGenConfigShort  = "Output or write the configuration file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	MsgInstallLong   = "Install downloads the release archive for a version, extracts it and\nadds it to the toolchain store. Without an argument the version is read\nfrom .icicle-toolchain or icicle.yml."
	MsgUninstallLong = "Uninstall removes a toolchain from the store. Aliases and sessions that\npoint at it stop working until they are moved to another toolchain."
	MsgDefaultLong   = "Default points the default alias at an installed version. New shells\nstart on it, and shells that never ran 'icicle use' follow it."
	MsgCurrentLong   = "Current prints the version the current shell's session resolves to."
	MsgListLong      = "List prints installed toolchains, marking the default."

	MsgInstallExample = `  icicle install 2023-06-10
  echo 2023-06-10 > .icicle-toolchain && icicle install`
	MsgUseExample = `  icicle use 2023-06-10
  icicle use default
  icicle use              # reads .icicle-toolchain`
	MsgRunExample = `  icicle run synth
  icicle run synth --toolchain 2023-01-05`

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: auto, term, text or json (default from config)"
	MsgFlagDir       = "Run as if icicle was started in this directory"
	MsgFlagShell     = "Shell syntax to print: bash, zsh or fish"
	MsgFlagPID       = "Process id of the shell owning the session (default: parent process)"
	MsgFlagToolchain = "Toolchain to run with, overriding .icicle-toolchain and icicle.yml"
	MsgFlagDryRun    = "Show what would be removed without removing it"
	MsgFlagMaxAge    = "Remove sessions with no recorded shell once older than this (0 keeps them)"
	MsgFlagWrite     = "Write to $ICICLE_HOME/config.toml instead of stdout"
	MsgFlagForce     = "Overwrite an existing config file"
	MsgFlagEffective = "Show the configuration in force instead of the defaults"

	// Version output
	MsgVersionFormat = "icicle version %s\n  commit: %s\n  built:  %s\n  log:    %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/env-long.txt
	msgEnvLongRaw string
	MsgEnvLong    = strings.TrimSpace(msgEnvLongRaw)

	//go:embed msgs/use-long.txt
	msgUseLongRaw string
	MsgUseLong    = strings.TrimSpace(msgUseLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/prune-long.txt
	msgPruneLongRaw string
	MsgPruneLong    = strings.TrimSpace(msgPruneLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
