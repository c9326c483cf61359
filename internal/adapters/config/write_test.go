package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Config{
		NodeNvmDir: "/home/u/.nvm",
		DotnetRoot: "/home/u/.dotnet",
		LogFile:    "/home/u/.local/state/upkeep/upkeep.log",
	}
	require.NoError(t, WriteFile(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[node]")
	assert.Contains(t, content, "nvm_dir = '/home/u/.nvm'")
	assert.Contains(t, content, "[dotnet]")
	assert.Contains(t, content, "root = '/home/u/.dotnet'")
	assert.Contains(t, content, "[log]")
}

func TestWriteFileRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[node]\n"), 0o644))

	err := WriteFile(path, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
