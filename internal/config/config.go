// SPDX-License-Identifier: MPL-2.0

// Package config loads the optional tfocus configuration file and exposes
// the settings the pipeline needs: which terraform binary to run, extra
// directories to exclude from scanning, and the default verbosity.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "tfocus"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

type (
	// Config holds all user-tunable settings. Every field has a working
	// default; a missing config file is not an error.
	Config struct {
		// TerraformBin is the executable invoked for plan/apply.
		TerraformBin string
		// Verbose enables debug logging by default.
		Verbose bool
		// ExcludeDirs are extra directory names the scanner prunes, on
		// top of the built-in .terraform and .git exclusions.
		ExcludeDirs []string
	}
)

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{TerraformBin: "terraform"}
}

// ConfigDir returns the tfocus configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the config file and environment overrides (TFOCUS_*). When the
// file is absent the defaults are returned with a nil error; a malformed
// file returns the defaults alongside the error so the caller can warn and
// continue.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("terraform_bin", "terraform")
	v.SetDefault("verbose", false)
	v.SetDefault("exclude_dirs", []string{})
	v.SetEnvPrefix("TFOCUS")
	v.AutomaticEnv()

	if configFilePathOverride != "" {
		v.SetConfigFile(configFilePathOverride)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return DefaultConfig(), err
		}
		v.AddConfigPath(dir)
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return DefaultConfig(), nil
		}
		if configFilePathOverride == "" && os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to load config: %w", err)
	}

	return &Config{
		TerraformBin: v.GetString("terraform_bin"),
		Verbose:      v.GetBool("verbose"),
		ExcludeDirs:  v.GetStringSlice("exclude_dirs"),
	}, nil
}
