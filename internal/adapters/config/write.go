package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type fileSchema struct {
	Node struct {
		NvmDir   string `toml:"nvm_dir"`
		IndexURL string `toml:"index_url"`
	} `toml:"node"`
	Dotnet struct {
		Root             string `toml:"root"`
		IndexURL         string `toml:"index_url"`
		InstallScriptURL string `toml:"install_script_url"`
	} `toml:"dotnet"`
	Log struct {
		File string `toml:"file"`
	} `toml:"log"`
}

// WriteFile persists cfg to path atomically, creating parent directories.
// An existing file is left untouched and reported to the caller.
func WriteFile(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	var schema fileSchema
	schema.Node.NvmDir = cfg.NodeNvmDir
	schema.Node.IndexURL = cfg.NodeIndexURL
	schema.Dotnet.Root = cfg.DotnetRoot
	schema.Dotnet.IndexURL = cfg.DotnetIndexURL
	schema.Dotnet.InstallScriptURL = cfg.DotnetInstallURL
	schema.Log.File = cfg.LogFile

	data, err := toml.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	return nil
}
