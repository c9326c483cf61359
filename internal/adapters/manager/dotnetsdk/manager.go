// Package dotnetsdk drives .NET SDK installs through the official
// dotnet-install.sh script and reads the installed set from the managed
// dotnet root.
package dotnetsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmaertens/upkeep/internal/domain"
	"github.com/bmaertens/upkeep/internal/ports"
)

const DefaultInstallScriptURL = "https://dot.net/v1/dotnet-install.sh"

const maxScriptBytes = 1 << 20

type Manager struct {
	root       string
	runner     ports.CommandRunner
	httpClient *http.Client
	scriptURL  string

	scriptPath string
}

var _ ports.SDKManager = (*Manager)(nil)

// NewManager uses root when set, then $DOTNET_ROOT, then ~/.dotnet.
func NewManager(root string, runner ports.CommandRunner, httpClient *http.Client, scriptURL string) (*Manager, error) {
	if root == "" {
		root = os.Getenv("DOTNET_ROOT")
	}
	if root == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		root = filepath.Join(homeDir, ".dotnet")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if scriptURL == "" {
		scriptURL = DefaultInstallScriptURL
	}

	return &Manager{
		root:       filepath.Clean(root),
		runner:     runner,
		httpClient: httpClient,
		scriptURL:  scriptURL,
	}, nil
}

// BinDir reports the managed dotnet root for PATH exports.
func (m *Manager) BinDir() string {
	return m.root
}

// Installed prefers `dotnet --list-sdks` when the managed binary exists and
// falls back to listing the sdk directory, so a half-provisioned root still
// reconciles. Output is sorted ascending either way.
func (m *Manager) Installed(ctx context.Context) ([]domain.InstalledVersion, error) {
	dotnetBin := filepath.Join(m.root, "dotnet")
	if _, err := os.Stat(dotnetBin); err == nil {
		result, err := m.runner.Run(ctx, dotnetBin, []string{"--list-sdks"}, ports.RunOptions{
			Env: []string{"DOTNET_ROOT=" + m.root, "DOTNET_CLI_TELEMETRY_OPTOUT=1"},
		})
		if err == nil {
			return parseListSDKs(string(result.Stdout)), nil
		}
	}

	return m.installedFromDisk()
}

func (m *Manager) installedFromDisk() ([]domain.InstalledVersion, error) {
	sdkDir := filepath.Join(m.root, "sdk")
	entries, err := os.ReadDir(sdkDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sdk directory: %w", err)
	}

	installed := make([]domain.InstalledVersion, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version, err := domain.ParseVersion(entry.Name())
		if err != nil {
			continue
		}
		installed = append(installed, domain.InstalledVersion{
			Version: version,
			Path:    filepath.Join(sdkDir, entry.Name()),
		})
	}

	sortInstalled(installed)
	return installed, nil
}

// parseListSDKs reads `dotnet --list-sdks` lines, one SDK per line in the
// form "8.0.412 [/usr/share/dotnet/sdk]".
func parseListSDKs(output string) []domain.InstalledVersion {
	var installed []domain.InstalledVersion
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rawVersion, rawDir, found := strings.Cut(line, " [")
		version, err := domain.ParseVersion(rawVersion)
		if err != nil {
			continue
		}

		path := ""
		if found {
			path = filepath.Join(strings.TrimSuffix(rawDir, "]"), version.String())
		}
		installed = append(installed, domain.InstalledVersion{Version: version, Path: path})
	}

	sortInstalled(installed)
	return installed
}

// Install downloads dotnet-install.sh once per run and executes it for the
// exact version into the managed root.
func (m *Manager) Install(ctx context.Context, v domain.Version) error {
	scriptPath, err := m.ensureInstallScript(ctx)
	if err != nil {
		return err
	}

	args := []string{scriptPath, "--version", v.String(), "--install-dir", m.root, "--no-path"}
	result, err := m.runner.Run(ctx, "bash", args, ports.RunOptions{})
	if err != nil {
		detail := strings.TrimSpace(string(result.Stderr))
		if detail != "" {
			return fmt.Errorf("dotnet-install.sh: %s: %w", detail, err)
		}
		return fmt.Errorf("dotnet-install.sh: %w", err)
	}

	return nil
}

// Uninstall removes the SDK's version directory under the managed root. An
// unlocatable directory is an error so the executor can report it, but the
// caller treats removal errors as best-effort.
func (m *Manager) Uninstall(ctx context.Context, removal domain.Removal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := removal.Path
	if target == "" {
		target = filepath.Join(m.root, "sdk", removal.Version.String())
	}
	target = filepath.Clean(target)

	// Only ever delete inside the managed root.
	if !strings.HasPrefix(target, m.root+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s outside dotnet root %s", target, m.root)
	}

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("locate sdk %s: %w", removal.Version, err)
	}

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove sdk %s: %w", removal.Version, err)
	}

	return nil
}

func (m *Manager) ensureInstallScript(ctx context.Context) (string, error) {
	if m.scriptPath != "" {
		return m.scriptPath, nil
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, m.scriptURL, nil)
	if err != nil {
		return "", fmt.Errorf("create install script request: %w", err)
	}

	response, err := m.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("download dotnet-install.sh: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("download dotnet-install.sh: status %d", response.StatusCode)
	}

	file, err := os.CreateTemp("", "dotnet-install-*.sh")
	if err != nil {
		return "", fmt.Errorf("create install script file: %w", err)
	}

	if _, err := io.Copy(file, io.LimitReader(response.Body, maxScriptBytes)); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("write install script: %w", err)
	}
	if err := file.Chmod(0o700); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("chmod install script: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close install script: %w", err)
	}

	m.scriptPath = file.Name()
	return m.scriptPath, nil
}

func sortInstalled(installed []domain.InstalledVersion) {
	sort.Slice(installed, func(i, j int) bool {
		return installed[i].Version.Less(installed[j].Version)
	})
}
