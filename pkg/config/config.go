// Package config defines the persisted tool configuration and its loading
// rules. Values are layered: built-in defaults, then the config file, then
// DOTFILES_CFG_* environment variables.
package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/paths"
)

// LanguageManager identifies the version manager used to install language
// runtimes.
type LanguageManager string

const (
	ManagerAsdf LanguageManager = "asdf"
	ManagerMise LanguageManager = "mise"
	ManagerRtx  LanguageManager = "rtx"
	ManagerNone LanguageManager = "none"
)

// SymlinkMethod identifies how configuration files are linked into the home
// directory.
type SymlinkMethod string

const (
	MethodStow   SymlinkMethod = "stow"
	MethodManual SymlinkMethod = "manual"
)

// Config holds the persisted tool configuration
type Config struct {
	DotfilesDir     string          `koanf:"dotfiles_dir" toml:"dotfiles_dir"`
	XDGConfigHome   string          `koanf:"xdg_config_home" toml:"xdg_config_home"`
	LanguageManager LanguageManager `koanf:"language_manager" toml:"language_manager"`
	SymlinkMethod   SymlinkMethod   `koanf:"symlink_method" toml:"symlink_method"`
	InstallOhMyZsh  bool            `koanf:"install_oh_my_zsh" toml:"install_oh_my_zsh"`
}

// EnvPrefix is the prefix for environment variable overrides,
// e.g. DOTFILES_CFG_SYMLINK_METHOD=manual.
const EnvPrefix = "DOTFILES_CFG_"

// defaults returns the built-in configuration values
func defaults() (map[string]interface{}, error) {
	home, err := paths.GetHomeDirectory()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"dotfiles_dir":      home + "/dotfiles",
		"xdg_config_home":   home + "/.config",
		"language_manager":  string(ManagerNone),
		"symlink_method":    string(MethodStow),
		"install_oh_my_zsh": false,
	}, nil
}

// Load reads configuration from the given path, layered over the defaults
// and under DOTFILES_CFG_* environment variables. A missing file is not an
// error; the remaining layers still apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	base, err := defaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(confmap.Provider(base, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default config")
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the given path as TOML, overwriting any
// previous contents.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := gotoml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to serialize configuration")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write config file %s", path)
	}

	return nil
}

// Validate checks enum fields for known values
func (c *Config) Validate() error {
	switch c.LanguageManager {
	case ManagerAsdf, ManagerMise, ManagerRtx, ManagerNone:
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown language manager %q", c.LanguageManager)
	}

	switch c.SymlinkMethod {
	case MethodStow, MethodManual:
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown symlink method %q", c.SymlinkMethod)
	}

	return nil
}
