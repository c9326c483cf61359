// Package nvm drives Node.js installs through an nvm tree. Installed
// versions are read straight from $NVM_DIR/versions/node; the install,
// uninstall and alias primitives go through nvm itself, sourced into a
// bash child because nvm is a shell function, not a binary.
package nvm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmaertens/upkeep/internal/domain"
	"github.com/bmaertens/upkeep/internal/ports"
)

const versionsSubdir = "versions/node"

type Manager struct {
	nvmDir string
	runner ports.CommandRunner
}

var _ ports.NodeManager = (*Manager)(nil)

// NewManager uses nvmDir when set, then $NVM_DIR, then ~/.nvm.
func NewManager(nvmDir string, runner ports.CommandRunner) (*Manager, error) {
	if nvmDir == "" {
		nvmDir = os.Getenv("NVM_DIR")
	}
	if nvmDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		nvmDir = filepath.Join(homeDir, ".nvm")
	}

	if _, err := os.Stat(filepath.Join(nvmDir, "nvm.sh")); err != nil {
		return nil, fmt.Errorf("nvm not found under %s: %w", nvmDir, err)
	}

	return &Manager{nvmDir: nvmDir, runner: runner}, nil
}

// Installed lists the version directories under the nvm tree, sorted
// ascending.
func (m *Manager) Installed(ctx context.Context) ([]domain.InstalledVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	versionsDir := filepath.Join(m.nvmDir, versionsSubdir)
	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read nvm versions directory: %w", err)
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
			Path:    filepath.Join(versionsDir, entry.Name()),
		})
	}

	sort.Slice(installed, func(i, j int) bool {
		return installed[i].Version.Less(installed[j].Version)
	})

	return installed, nil
}

func (m *Manager) Install(ctx context.Context, v domain.Version) error {
	if _, err := m.nvm(ctx, fmt.Sprintf("nvm install %s", v)); err != nil {
		return err
	}
	return nil
}

func (m *Manager) Uninstall(ctx context.Context, removal domain.Removal) error {
	if _, err := m.nvm(ctx, fmt.Sprintf("nvm uninstall %s", removal.Version)); err != nil {
		return err
	}
	return nil
}

// SetDefault points the default alias at the version and switches the
// current shell's selection so Active can verify it.
func (m *Manager) SetDefault(ctx context.Context, v domain.Version) error {
	if _, err := m.nvm(ctx, fmt.Sprintf("nvm alias default %s && nvm use default", v)); err != nil {
		return err
	}
	return nil
}

// Active reports the version the default alias resolves to.
func (m *Manager) Active(ctx context.Context) (domain.Version, error) {
	result, err := m.nvm(ctx, "nvm version default")
	if err != nil {
		return domain.Version{}, err
	}

	raw := strings.TrimSpace(string(result.Stdout))
	version, parseErr := domain.ParseVersion(raw)
	if parseErr != nil {
		return domain.Version{}, fmt.Errorf("parse active node version %q: %w", raw, parseErr)
	}

	return version, nil
}

// nvm sources nvm.sh and runs the given snippet in a bash child.
func (m *Manager) nvm(ctx context.Context, script string) (ports.RunResult, error) {
	wrapped := fmt.Sprintf(`. "$NVM_DIR/nvm.sh" && %s`, script)
	result, err := m.runner.Run(ctx, "bash", []string{"-c", wrapped}, ports.RunOptions{
		Env: []string{"NVM_DIR=" + m.nvmDir},
	})
	if err != nil {
		detail := strings.TrimSpace(string(result.Stderr))
		if detail == "" {
			detail = strings.TrimSpace(string(result.Stdout))
		}
		if detail != "" {
			return result, fmt.Errorf("nvm: %s: %w", detail, err)
		}
		return result, fmt.Errorf("nvm: %w", err)
	}

	return result, nil
}
