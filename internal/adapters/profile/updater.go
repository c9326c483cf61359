// Package profile persists the managed dotnet root into the user's shell
// profile so future sessions resolve the tool-managed SDKs.
package profile

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmaertens/upkeep/internal/domain"
	"github.com/bmaertens/upkeep/internal/ports"
)

const (
	markerBegin = "# >>> upkeep dotnet env >>>"
	markerEnd   = "# <<< upkeep dotnet env <<<"
)

type Updater struct {
	homeDir string
	shell   string

	// lookPath is swapped in tests to fake a foreign dotnet on PATH.
	lookPath func(string) (string, error)
}

var _ ports.ProfileUpdater = (*Updater)(nil)

func NewUpdater(homeDir, shell string) (*Updater, error) {
	if homeDir == "" {
		resolved, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		homeDir = resolved
	}
	if shell == "" {
		shell = os.Getenv("SHELL")
	}

	return &Updater{homeDir: homeDir, shell: shell, lookPath: exec.LookPath}, nil
}

// EnsurePath appends exactly one PATH-export block for binDir to the
// detected shell profile. The marker line makes the write idempotent: once
// present, later runs never touch the file again. A dotnet installation
// outside binDir that is already on PATH skips the update entirely so the
// tool does not fight another package manager's configuration.
func (u *Updater) EnsurePath(binDir string) (ports.ProfileResult, error) {
	if foreign, ok := u.foreignInstall(binDir); ok {
		return ports.ProfileResult{
			State:   ports.ProfileSkippedOther,
			Message: fmt.Sprintf("dotnet already on PATH at %s (not managed by upkeep), leaving profile unchanged", foreign),
		}, nil
	}

	profilePath, err := u.selectProfile()
	if err != nil {
		return ports.ProfileResult{State: ports.ProfileNotConfigured}, err
	}

	content, err := os.ReadFile(profilePath)
	if err != nil && !os.IsNotExist(err) {
		return ports.ProfileResult{State: ports.ProfileNotConfigured}, fmt.Errorf("read shell profile: %w", err)
	}

	if strings.Contains(string(content), markerBegin) {
		return ports.ProfileResult{State: ports.ProfileAlreadySet, Profile: profilePath}, nil
	}

	block := fmt.Sprintf("\n%s\nexport DOTNET_ROOT=%q\nexport PATH=\"$DOTNET_ROOT:$DOTNET_ROOT/tools:$PATH\"\n%s\n", markerBegin, binDir, markerEnd)

	file, err := os.OpenFile(profilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ports.ProfileResult{State: ports.ProfileNotConfigured}, fmt.Errorf("%w: open %s: %v", domain.ErrNoProfileFound, profilePath, err)
	}
	defer file.Close()

	if _, err := file.WriteString(block); err != nil {
		return ports.ProfileResult{State: ports.ProfileNotConfigured}, fmt.Errorf("append to shell profile: %w", err)
	}

	return ports.ProfileResult{State: ports.ProfileUpdated, Profile: profilePath}, nil
}

// selectProfile picks the first existing candidate for the detected shell,
// falling back to the shell's conventional default when none exist yet.
func (u *Updater) selectProfile() (string, error) {
	candidates := u.candidates()
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: unrecognized shell %q", domain.ErrNoProfileFound, u.shell)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}

	return candidates[0], nil
}

func (u *Updater) candidates() []string {
	join := func(name string) string { return filepath.Join(u.homeDir, name) }

	switch filepath.Base(u.shell) {
	case "zsh":
		return []string{join(".zshrc"), join(".zprofile"), join(".profile")}
	case "bash":
		return []string{join(".bashrc"), join(".bash_profile"), join(".profile")}
	case "":
		return []string{join(".profile")}
	default:
		return []string{join(".profile")}
	}
}

// foreignInstall reports a dotnet binary on PATH that lives outside the
// managed root.
func (u *Updater) foreignInstall(binDir string) (string, bool) {
	found, err := u.lookPath("dotnet")
	if err != nil {
		return "", false
	}

	resolved := filepath.Clean(found)
	managed := filepath.Clean(binDir)
	if resolved == filepath.Join(managed, "dotnet") || strings.HasPrefix(resolved, managed+string(filepath.Separator)) {
		return "", false
	}

	return resolved, true
}
