package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodeIndexFixture = `[
  {"version": "v24.17.1", "lts": false},
  {"version": "v23.0.0", "lts": false},
  {"version": "v22.17.1", "lts": "Jod"},
  {"version": "v21.0.0", "lts": false},
  {"version": "v20.17.1", "lts": "Iron"}
]`

const dotnetIndexFixture = `{
  "releases-index": [
    {"channel-version": "9.0", "latest-release": "9.0.3", "latest-sdk": "9.0.303", "release-type": "sts", "support-phase": "active"},
    {"channel-version": "8.0", "latest-release": "8.0.12", "latest-sdk": "8.0.412", "release-type": "lts", "support-phase": "active"}
  ]
}`

func TestVersionCommandPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestVersionFlagPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "--version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownFlagSuggestsHelp(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "node", "--bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
	assert.Contains(t, err.Error(), "--help")
}

func TestConfigInitWritesFileOnce(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote")

	configPath := filepath.Join(home, ".config", "upkeep", "config.toml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[node]")
	assert.Contains(t, string(content), "[dotnet]")

	_, _, err = executeCLI(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigPathPrintsLocation(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "upkeep", "config.toml")+"\n", stdout)
}

func TestNodeDryRunPlansWithoutChanges(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, nodeIndexFixture)
	}))
	defer server.Close()
	t.Setenv("UPKEEP_NODE_INDEX_URL", server.URL)

	home := t.TempDir()
	nvmDir := writeNvmFixture(t, home, "v18.20.0", "v22.17.1")

	stdout, _, err := executeCLI(t, home, "node", "--dry-run", "--nvm-dir", nvmDir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "dry-run: no changes will be applied")
	assert.Contains(t, stdout, "will install 24.17.1")
	assert.Contains(t, stdout, "will remove 18.20.0")

	_, statErr := os.Stat(filepath.Join(nvmDir, "versions", "node", "v18.20.0"))
	assert.NoError(t, statErr, "dry-run must not remove anything")
}

func TestNodeDryRunWritesLogFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, nodeIndexFixture)
	}))
	defer server.Close()
	t.Setenv("UPKEEP_NODE_INDEX_URL", server.URL)

	home := t.TempDir()
	nvmDir := writeNvmFixture(t, home)
	logPath := filepath.Join(home, "custom", "upkeep.log")

	_, _, err := executeCLI(t, home, "node", "--dry-run", "--nvm-dir", nvmDir, "--log-file", logPath)
	require.NoError(t, err)

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Regexp(t, `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - INFO: `, string(content))
	assert.Contains(t, string(content), "- DEBUG: exit status 0")
}

func TestConfigLoadFailureStillLogsExitStatus(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".config", "upkeep")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0o644))

	_, _, err := executeCLI(t, home, "node", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load configuration")

	content, err := os.ReadFile(filepath.Join(home, ".local", "state", "upkeep", "upkeep.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "- ERROR: load configuration")
	assert.Contains(t, string(content), "- DEBUG: exit status 1")
}

func TestNodeJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, nodeIndexFixture)
	}))
	defer server.Close()
	t.Setenv("UPKEEP_NODE_INDEX_URL", server.URL)

	home := t.TempDir()
	nvmDir := writeNvmFixture(t, home)

	stdout, _, err := executeCLI(t, home, "node", "--dry-run", "--json", "--nvm-dir", nvmDir)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"24.17.1"`)
	assert.Contains(t, stdout, `"22.17.1"`)
}

func TestNodeFailsWhenCatalogUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	t.Setenv("UPKEEP_NODE_INDEX_URL", server.URL)

	home := t.TempDir()
	nvmDir := writeNvmFixture(t, home)

	_, _, err := executeCLI(t, home, "node", "--dry-run", "--quiet", "--nvm-dir", nvmDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch node release catalog")
}

func TestDotnetDryRunPlansInstalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, dotnetIndexFixture)
	}))
	defer server.Close()
	t.Setenv("UPKEEP_DOTNET_INDEX_URL", server.URL)

	home := t.TempDir()
	root := filepath.Join(home, ".dotnet")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sdk", "8.0.400"), 0o755))

	stdout, _, err := executeCLI(t, home, "dotnet", "--dry-run", "--dotnet-root", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, ".NET SDK sync")
	assert.Contains(t, stdout, "will install 8.0.412")
	assert.Contains(t, stdout, "will install 9.0.303")

	_, statErr := os.Stat(filepath.Join(root, "sdk", "8.0.400"))
	assert.NoError(t, statErr, "dry-run must not remove anything")
}

func TestDotnetQuietSuppressesStdout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, dotnetIndexFixture)
	}))
	defer server.Close()
	t.Setenv("UPKEEP_DOTNET_INDEX_URL", server.URL)

	home := t.TempDir()
	root := filepath.Join(home, ".dotnet")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sdk"), 0o755))

	stdout, _, err := executeCLI(t, home, "dotnet", "--dry-run", "--quiet", "--dotnet-root", root)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeNvmFixture(t *testing.T, home string, versions ...string) string {
	t.Helper()

	nvmDir := filepath.Join(home, ".nvm")
	require.NoError(t, os.MkdirAll(nvmDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nvmDir, "nvm.sh"), []byte("# nvm stub\n"), 0o644))

	for _, v := range versions {
		require.NoError(t, os.MkdirAll(filepath.Join(nvmDir, "versions", "node", v), 0o755))
	}

	return nvmDir
}
