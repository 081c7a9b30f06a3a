// Package config loads installer settings from defaults, an optional config
// file, MCENV_* environment variables, and command-line flags, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName names the config directory under $XDG_CONFIG_HOME.
	AppName = "mcenv"

	envPrefix = "MCENV"

	// DefaultServer is the remote location cloned from when -g is not given.
	// The trailing slash means project names are appended directly.
	DefaultServer = "https://github.com/archsim-mirrors/"
)

// Config carries every knob the installer needs. It is built once in the CLI
// entry point and threaded through explicitly; nothing reads ambient state.
type Config struct {
	// Prefix is the install root. Set from the positional argument, never
	// from the config file.
	Prefix string `mapstructure:"-"`
	// Server is the remote location project names are appended to.
	Server string `mapstructure:"server"`
	// Jobs is the parallelism handed to the build toolchains.
	Jobs int `mapstructure:"jobs"`
	// Include restricts installation to the named projects.
	Include []string `mapstructure:"include"`
	// Exclude drops the named projects from the default set.
	Exclude []string `mapstructure:"exclude"`
	// Verbose echoes build output to the console and lowers the log level.
	Verbose bool `mapstructure:"verbose"`
	// Builders overrides a project's registered builder with a shell command
	// string, keyed by project name.
	Builders map[string]string `mapstructure:"builders"`
}

// Dir returns the mcenv configuration directory: $XDG_CONFIG_HOME/mcenv,
// defaulting to ~/.config/mcenv.
func Dir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Load builds the configuration. file forces a specific config file; when
// empty, config.yaml under Dir() is read if present. flags, when non-nil,
// contributes the jobs, server, and verbose flags with highest precedence.
func Load(flags *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server", DefaultServer)
	v.SetDefault("jobs", 1)
	v.SetDefault("verbose", false)

	if file != "" {
		v.SetConfigFile(file)
	} else if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for _, name := range []string{"jobs", "server", "verbose"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
