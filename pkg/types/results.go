package types

// ToolchainInfo describes one installed toolchain for display
type ToolchainInfo struct {
	Version string `json:"version"`
	Path    string `json:"path"`
	Default bool   `json:"default"`
	// Current is true when the session link resolves to this toolchain
	Current bool `json:"current"`
}

// ListResult holds the result of the 'list' command
type ListResult struct {
	Toolchains []ToolchainInfo `json:"toolchains"`
}

// CurrentResult holds the result of the 'current' command
type CurrentResult struct {
	Version string `json:"version"`
	Session string `json:"session"`
	// Via names the alias the session resolves through, if any
	Via string `json:"via,omitempty"`
}

// CommandResult holds the result of commands that change state
type CommandResult struct {
	Command string `json:"command"`
	Version string `json:"version,omitempty"`
	// Changed is false when the command found nothing to do
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

// ScriptResult holds the result of the 'run' command
type ScriptResult struct {
	Script    string `json:"script"`
	Toolchain string `json:"toolchain"`
	ExitCode  int    `json:"exitCode"`
}

// PruneResult holds the result of the 'prune' command
type PruneResult struct {
	Removed []string `json:"removed"`
	Kept    int      `json:"kept"`
}

// EnvResult holds the result of the 'env' command
type EnvResult struct {
	Session string `json:"session"`
	Shell   string `json:"shell"`
	// Script is the text for the shell to evaluate
	Script string `json:"script"`
}

// GenConfigResult holds the result of the 'gen-config' command
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}
