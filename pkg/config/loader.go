package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/arthur-debert/icicle/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "ICICLE_CFG_"

// Load builds the configuration. userConfigPath may be empty or point at a
// file that does not exist; both mean "no user config".
func Load(userConfigPath string) (*Config, error) {
	return LoadWithOverrides(userConfigPath, nil)
}

// LoadWithOverrides is Load with a final layer of dotted-key overrides,
// used for command-line flags.
func LoadWithOverrides(userConfigPath string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	// 2. User config file
	if userConfigPath != "" {
		if _, err := os.Stat(userConfigPath); err == nil {
			if err := k.Load(file.Provider(userConfigPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfig, "failed to load config from '%s'", userConfigPath).
					WithDetail(errors.DetailPath, userConfigPath)
			}
			logger.Debug().Str("path", userConfigPath).Msg("Loaded user config")
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfig, "failed to stat config '%s'", userConfigPath).
				WithDetail(errors.DetailPath, userConfigPath)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to load environment overrides")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ICICLE_CFG_DOWNLOAD_URL_TEMPLATE to download.url_template:
// the first underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func validate(cfg *Config) error {
	if cfg.Download.URLTemplate == "" {
		return errors.New(errors.ErrConfig, "download.url_template must not be empty")
	}
	if !strings.Contains(cfg.Download.URLTemplate, "{date}") {
		return errors.Newf(errors.ErrConfig, "download.url_template must contain {date}: '%s'", cfg.Download.URLTemplate)
	}
	if cfg.Download.Timeout < 0 {
		return errors.New(errors.ErrConfig, "download.timeout must not be negative")
	}
	if cfg.Locking.Timeout < 0 {
		return errors.New(errors.ErrConfig, "locking.timeout must not be negative")
	}
	if cfg.Sessions.MaxAge < 0 {
		return errors.New(errors.ErrConfig, "sessions.max_age must not be negative")
	}
	if cfg.Toolchain.PinFile == "" || strings.ContainsAny(cfg.Toolchain.PinFile, `/\`) {
		return errors.Newf(errors.ErrConfig, "toolchain.pin_file must be a file name: '%s'", cfg.Toolchain.PinFile)
	}
	if cfg.Toolchain.DefaultAlias == "" || strings.ContainsAny(cfg.Toolchain.DefaultAlias, `/\`) {
		return errors.Newf(errors.ErrConfig, "toolchain.default_alias must be a name: '%s'", cfg.Toolchain.DefaultAlias)
	}
	if len(cfg.Toolchain.BinSubpaths) == 0 {
		return errors.New(errors.ErrConfig, "toolchain.bin_subpaths must not be empty")
	}
	switch strings.ToLower(cfg.Output.Format) {
	case "", "auto", "term", "terminal", "text", "plain", "json":
	default:
		return errors.Newf(errors.ErrConfig, "unknown output.format '%s'", cfg.Output.Format)
	}
	return nil
}
