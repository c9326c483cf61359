package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmaertens/upkeep/internal/adapters/catalog/nodejs"
)

func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	// Clear every bound variable so the host environment cannot leak into
	// the assertions.
	for _, env := range []string{"NVM_DIR", "DOTNET_ROOT", "UPKEEP_NODE_INDEX_URL", "UPKEEP_DOTNET_INDEX_URL", "UPKEEP_LOG_FILE"} {
		t.Setenv(env, "")
	}

	return home
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	home := withTempHome(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.NodeNvmDir)
	assert.Equal(t, nodejs.DefaultIndexURL, cfg.NodeIndexURL)
	assert.Equal(t, "", cfg.DotnetRoot)
	assert.Equal(t, filepath.Join(home, ".local", "state", "upkeep", "upkeep.log"), cfg.LogFile)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := withTempHome(t)
	dir := filepath.Join(home, ".config", "upkeep")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	body := "[node]\nnvm_dir = \"/opt/nvm\"\n\n[dotnet]\nroot = \"/opt/dotnet\"\n\n[log]\nfile = \"/var/log/upkeep.log\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "/opt/nvm", cfg.NodeNvmDir)
	assert.Equal(t, "/opt/dotnet", cfg.DotnetRoot)
	assert.Equal(t, "/var/log/upkeep.log", cfg.LogFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := withTempHome(t)
	dir := filepath.Join(home, ".config", "upkeep")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[node]\nnvm_dir = \"/opt/nvm\"\n"), 0o644))

	t.Setenv("NVM_DIR", "/home/u/.nvm")
	t.Setenv("DOTNET_ROOT", "/home/u/.dotnet")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "/home/u/.nvm", cfg.NodeNvmDir)
	assert.Equal(t, "/home/u/.dotnet", cfg.DotnetRoot)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := withTempHome(t)
	dir := filepath.Join(home, ".config", "upkeep")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0o644))

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestPathPointsInsideHome(t *testing.T) {
	home := withTempHome(t)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "upkeep", "config.toml"), path)
}
