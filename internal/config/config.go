// Package config resolves treedit settings from flags, TREEDIT_* environment
// variables, an optional .treedit.yaml and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idilsaglam/treedit/internal/tree"
)

// Config keys, as used in .treedit.yaml and with the TREEDIT_ env prefix.
const (
	KeyRootTitle  = "root_title"
	KeyTheme      = "theme"
	KeyFormat     = "format"
	KeyLogEnabled = "log.enabled"
	KeyLogDir     = "log.dir"
	KeyLogLevel   = "log.level"
)

// Log controls the debug log file. It is off unless Enabled is set.
type Log struct {
	Enabled bool `mapstructure:"enabled"`
	// Dir holds the daily log files; empty means ~/.treedit/logs.
	Dir string `mapstructure:"dir"`
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level"`
}

// Config is the resolved configuration for one invocation.
//
// RootTitle names the seed root of every new tree, Theme picks a ui theme
// (classic, neon or mono) and Format is the default output format of the
// run command.
type Config struct {
	RootTitle string `mapstructure:"root_title"`
	Theme     string `mapstructure:"theme"`
	Format    string `mapstructure:"format"`
	Log       Log    `mapstructure:"log"`
}

// Source says where to look. All fields are optional; the zero value
// searches $TREEDIT_CONFIG_PATH, the working directory and $HOME for a
// .treedit.yaml.
type Source struct {
	// File is an explicit config file. When set it must exist.
	File string
	// Flags maps config keys to command line flags that override them.
	Flags map[string]*pflag.Flag
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRootTitle, tree.DefaultRootTitle)
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyLogEnabled, false)
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Load resolves a Config from src. Precedence, highest first: changed flags,
// TREEDIT_* environment variables (dots become underscores, so log.level is
// TREEDIT_LOG_LEVEL), the config file, then defaults. A missing searched
// file is fine; a missing explicit File or a malformed file is an error.
func Load(src Source) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TREEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if src.File != "" {
		v.SetConfigFile(src.File)
	} else {
		v.SetConfigName(".treedit") // .yaml is implicit
		if override := os.Getenv("TREEDIT_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	for key, f := range src.Flags {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if src.File != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
