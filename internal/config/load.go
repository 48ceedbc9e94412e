package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. SPRINTER_WRAP
const EnvPrefix = "SPRINTER"

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"label":           "label",
	"title":           "title",
	"geometry":        "geometry",
	"style":           "style",
	"wrap":            "wrap",
	"size":            "size",
	"minimal":         "minimal",
	"sort":            "sort",
	"strict":          "strict",
	"command":         "command",
	"no-color":        "no_color",
	"fullscreen":      "fullscreen",
	"space-wildcard":  "space_wildcard",
	"filter-delay-ms": "filter_delay_ms",
	"log":             "log.file",
	"log-level":       "log.level",
}

// Load reads configuration from the provided path, the environment and the
// flags, in increasing priority. If path is empty, DefaultPath is used and a
// missing file is not an error. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("label", cfg.Label)
	v.SetDefault("title", cfg.Title)
	v.SetDefault("geometry", cfg.Geometry)
	v.SetDefault("style", cfg.Style)
	v.SetDefault("wrap", cfg.Wrap)
	v.SetDefault("size", cfg.Size)
	v.SetDefault("minimal", cfg.Minimal)
	v.SetDefault("sort", cfg.Sort)
	v.SetDefault("strict", cfg.Strict)
	v.SetDefault("command", cfg.Command)
	v.SetDefault("no_color", cfg.NoColor)
	v.SetDefault("fullscreen", cfg.Fullscreen)
	v.SetDefault("space_wildcard", cfg.SpaceWildcard)
	v.SetDefault("filter_delay_ms", cfg.FilterDelayMS)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Style = os.ExpandEnv(cfg.Style)
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
