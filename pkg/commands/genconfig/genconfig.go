package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/icicle/pkg/config"
	"github.com/arthur-debert/icicle/pkg/core"
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/arthur-debert/icicle/pkg/types"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	Runtime *core.Runtime
	// Effective renders the configuration currently in force instead of
	// the commented defaults
	Effective bool
	// Write saves the content to $ICICLE_HOME/config.toml
	Write bool
	// Force overwrites an existing config file
	Force bool
}

// GenConfig outputs or writes a configuration file
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.DefaultsContent()
	if opts.Effective {
		var err error
		content, err = config.Generate(opts.Runtime.Config)
		if err != nil {
			return nil, err
		}
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	target := opts.Runtime.Env.ConfigFilePath()
	if _, err := os.Stat(target); err == nil && !opts.Force {
		return nil, errors.Newf(errors.ErrInvalidState, "'%s' already exists. Use --force to overwrite it", target).
			WithDetail(errors.DetailPath, target)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to create directory '%s'", filepath.Dir(target))
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to write '%s'", target).
			WithDetail(errors.DetailPath, target)
	}

	logger.Info().Str("path", target).Msg("Wrote config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
