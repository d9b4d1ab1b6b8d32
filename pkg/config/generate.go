package config

import (
	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

type fileConfig struct {
	Download struct {
		URLTemplate string `toml:"url_template"`
		Timeout     string `toml:"timeout"`
		CacheDir    string `toml:"cache_dir"`
	} `toml:"download"`
	Toolchain struct {
		PinFile      string   `toml:"pin_file"`
		DefaultAlias string   `toml:"default_alias"`
		BinSubpaths  []string `toml:"bin_subpaths"`
	} `toml:"toolchain"`
	Locking struct {
		Enabled bool   `toml:"enabled"`
		Timeout string `toml:"timeout"`
	} `toml:"locking"`
	Sessions struct {
		MaxAge string `toml:"max_age"`
	} `toml:"sessions"`
	Output struct {
		Format string `toml:"format"`
	} `toml:"output"`
}

// Generate renders cfg as a TOML document that Load reads back to an
// equal Config.
func Generate(cfg *Config) (string, error) {
	var fc fileConfig
	fc.Download.URLTemplate = cfg.Download.URLTemplate
	fc.Download.Timeout = cfg.Download.Timeout.String()
	fc.Download.CacheDir = cfg.Download.CacheDir
	fc.Toolchain.PinFile = cfg.Toolchain.PinFile
	fc.Toolchain.DefaultAlias = cfg.Toolchain.DefaultAlias
	fc.Toolchain.BinSubpaths = cfg.Toolchain.BinSubpaths
	fc.Locking.Enabled = cfg.Locking.Enabled
	fc.Locking.Timeout = cfg.Locking.Timeout.String()
	fc.Sessions.MaxAge = cfg.Sessions.MaxAge.String()
	fc.Output.Format = cfg.Output.Format

	data, err := toml.Marshal(fc)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}

// GenerateDefault renders the embedded defaults as TOML
func GenerateDefault() (string, error) {
	return Generate(Default())
}
