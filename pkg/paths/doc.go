// Package paths resolves the Environment every icicle command runs in.
//
// The Environment is built once per invocation from the process environment
// and passed to every component. Components never call os.Getenv themselves.
//
// # Environment Variables
//
//   - ICICLE_HOME: root directory (required; `icicle env` defaults it to ~/.icicle)
//   - ICICLE_SHELL_PATH: this shell session's link (required except for `icicle env`)
//   - HOME: only consulted by `icicle env` to compute the default root
//
// # Layout
//
//	$ICICLE_HOME/
//	  toolchains/<version>/          one directory per installed version
//	  aliases/default                -> toolchains/<version>
//	  caches/icicle_<uuid>           -> aliases/default (one per shell session)
//	  staging/<version>-<uuid>/      installs in progress
//	  locks/                         advisory lock files
//	  config.toml                    optional user configuration
//
// # Usage
//
//	env, err := paths.FromProcess(paths.ModeCommand, paths.Options{})
//	if err != nil {
//	    return err
//	}
//	dir := filepath.Join(env.ToolchainsDir(), "2023-01-05")
package paths
