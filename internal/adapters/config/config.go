// Package config loads tool settings from the user config file with
// environment overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/bmaertens/upkeep/internal/adapters/catalog/dotnet"
	"github.com/bmaertens/upkeep/internal/adapters/catalog/nodejs"
	"github.com/bmaertens/upkeep/internal/adapters/manager/dotnetsdk"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/upkeep"

	keyNodeNvmDir       = "node.nvm_dir"
	keyNodeIndexURL     = "node.index_url"
	keyDotnetRoot       = "dotnet.root"
	keyDotnetIndexURL   = "dotnet.index_url"
	keyDotnetInstallURL = "dotnet.install_script_url"
	keyLogFile          = "log.file"
)

// Config carries every tunable the commands need. Zero string values mean
// "resolve the platform default at use time".
type Config struct {
	NodeNvmDir       string
	NodeIndexURL     string
	DotnetRoot       string
	DotnetIndexURL   string
	DotnetInstallURL string
	LogFile          string
}

// Load reads the config file if present and applies env overrides. A
// missing file is not an error; every key has a default.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	cfg.SetDefault(keyNodeNvmDir, "")
	cfg.SetDefault(keyNodeIndexURL, nodejs.DefaultIndexURL)
	cfg.SetDefault(keyDotnetRoot, "")
	cfg.SetDefault(keyDotnetIndexURL, dotnet.DefaultIndexURL)
	cfg.SetDefault(keyDotnetInstallURL, dotnetsdk.DefaultInstallScriptURL)
	cfg.SetDefault(keyLogFile, defaultLogFile(homeDir))

	bindings := map[string]string{
		keyNodeNvmDir:     "NVM_DIR",
		keyNodeIndexURL:   "UPKEEP_NODE_INDEX_URL",
		keyDotnetRoot:     "DOTNET_ROOT",
		keyDotnetIndexURL: "UPKEEP_DOTNET_INDEX_URL",
		keyLogFile:        "UPKEEP_LOG_FILE",
	}
	for key, env := range bindings {
		if err := cfg.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return Config{
		NodeNvmDir:       cfg.GetString(keyNodeNvmDir),
		NodeIndexURL:     cfg.GetString(keyNodeIndexURL),
		DotnetRoot:       cfg.GetString(keyDotnetRoot),
		DotnetIndexURL:   cfg.GetString(keyDotnetIndexURL),
		DotnetInstallURL: cfg.GetString(keyDotnetInstallURL),
		LogFile:          cfg.GetString(keyLogFile),
	}, nil
}

// Path returns the canonical config file location.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir, configName+"."+configType), nil
}

// DefaultLogFile returns the log location used when neither the flag nor
// the config file names one. Callers that fail before Load can still log
// there.
func DefaultLogFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return defaultLogFile(homeDir), nil
}

func defaultLogFile(homeDir string) string {
	return filepath.Join(homeDir, ".local", "state", "upkeep", "upkeep.log")
}
