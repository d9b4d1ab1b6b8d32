// Package config loads icicle's layered configuration: embedded defaults,
// then $ICICLE_HOME/config.toml, then ICICLE_CFG_* environment variables.
package config
