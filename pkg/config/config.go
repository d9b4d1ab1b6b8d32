package config

import (
	"time"
)

// Config is the effective icicle configuration
type Config struct {
	Download  Download  `koanf:"download"`
	Toolchain Toolchain `koanf:"toolchain"`
	Locking   Locking   `koanf:"locking"`
	Sessions  Sessions  `koanf:"sessions"`
	Output    Output    `koanf:"output"`
}

// Download configures how toolchain archives are fetched
type Download struct {
	URLTemplate string        `koanf:"url_template"`
	Timeout     time.Duration `koanf:"timeout"`
	CacheDir    string        `koanf:"cache_dir"`
}

// Toolchain configures version resolution and toolchain layout
type Toolchain struct {
	PinFile      string   `koanf:"pin_file"`
	DefaultAlias string   `koanf:"default_alias"`
	BinSubpaths  []string `koanf:"bin_subpaths"`
}

// Locking configures the advisory lock around link mutations
type Locking struct {
	Enabled bool          `koanf:"enabled"`
	Timeout time.Duration `koanf:"timeout"`
}

// Sessions configures how prune treats per-shell session links
type Sessions struct {
	// MaxAge expires sessions whose owning shell was never recorded.
	// Zero keeps them forever.
	MaxAge time.Duration `koanf:"max_age"`
}

// Output configures how results are rendered
type Output struct {
	Format string `koanf:"format"`
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// The embedded defaults are part of the binary; failing here is a build defect
		panic(err)
	}
	return cfg
}
