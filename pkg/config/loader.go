package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. DOTLINK_PATHS_REPO_ROOT
	EnvPrefix = "DOTLINK_"

	// EnvConfigFile points at an alternative user config file
	EnvConfigFile = "DOTLINK_CONFIG"

	appDirName     = "dotlink"
	configFileName = "config.toml"
)

// Config is the fully merged dotlink configuration
type Config struct {
	Paths   PathsConfig   `koanf:"paths"`
	Backup  BackupConfig  `koanf:"backup"`
	UI      UIConfig      `koanf:"ui"`
	Hotspot HotspotConfig `koanf:"hotspot"`
}

type PathsConfig struct {
	RepoRoot  string `koanf:"repo_root"`
	Home      string `koanf:"home"`
	Manifest  string `koanf:"manifest"`
	BackupDir string `koanf:"backup_dir"`
}

type BackupConfig struct {
	// TimestampFormat is a Go reference-time layout
	TimestampFormat string `koanf:"timestamp_format"`
}

type UIConfig struct {
	Format string `koanf:"format"`
}

// HotspotConfig names the interfaces and services the hotspot toggler drives
type HotspotConfig struct {
	APInterface     string `koanf:"ap_interface"`
	UplinkInterface string `koanf:"uplink_interface"`
	Address         string `koanf:"address"`
	DNSService      string `koanf:"dns_service"`
	APService       string `koanf:"ap_service"`
	ShareService    string `koanf:"share_service"`
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile overrides the user config location. Empty uses
	// DOTLINK_CONFIG, then $XDG_CONFIG_HOME/dotlink/config.toml.
	ConfigFile string

	// Overrides are dotted keys (e.g. "paths.repo_root") applied last,
	// typically from command-line flags. Empty string values are ignored.
	Overrides map[string]interface{}
}

// Load merges, in increasing priority: embedded defaults, the user config
// file, DOTLINK_* environment variables and explicit overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config file, optional unless explicitly requested
	configFile, explicit := userConfigPath(opts.ConfigFile)
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile).
				WithDetail("path", configFile)
		}
		logger.Debug().Str("path", configFile).Msg("Loaded user config")
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", configFile).
			WithDetail("path", configFile)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Explicit overrides
	if overrides := nonEmpty(opts.Overrides); len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		return errors.New(errors.ErrConfigInvalid, "paths.backup_dir must not be empty")
	}
	if strings.TrimSpace(c.Backup.TimestampFormat) == "" {
		return errors.New(errors.ErrConfigInvalid, "backup.timestamp_format must not be empty")
	}
	switch strings.ToLower(c.UI.Format) {
	case "", "auto", "term", "terminal", "text", "plain", "json":
	default:
		return errors.Newf(errors.ErrConfigInvalid, "ui.format %q is not one of auto, term, text, json", c.UI.Format)
	}
	return nil
}

// UserConfigPath returns the user config file Load reads when none is given
func UserConfigPath() string {
	path, _ := userConfigPath("")
	return path
}

func userConfigPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if fromEnv := os.Getenv(EnvConfigFile); fromEnv != "" {
		return fromEnv, true
	}
	return filepath.Join(xdg.ConfigHome, appDirName, configFileName), false
}

// envKey maps DOTLINK_PATHS_REPO_ROOT to paths.repo_root: the first
// underscore separates the section, the rest belong to the key name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func nonEmpty(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}
