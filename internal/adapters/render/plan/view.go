// Package plan renders the outcome of a sync pass for the terminal.
package plan

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bmaertens/upkeep/internal/application"
)

type RenderOptions struct {
	// Applied switches the wording from "will install" to "installed".
	Applied bool
}

func Render(outcome application.Outcome, opts RenderOptions) (string, error) {
	return renderView(outcome, opts, newStyles()), nil
}

func renderView(outcome application.Outcome, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(titleFor(outcome.Runtime)),
		s.header.Render(fmt.Sprintf("supported: %d  installed: %d", len(outcome.Supported.Versions), len(outcome.Installed))),
	}

	if outcome.DryRun {
		lines = append(lines, s.dryRun.Render("dry-run: no changes will be applied"))
	}

	lines = append(lines, s.section.Render(renderSupported(outcome, s)))
	lines = append(lines, s.section.Render(renderActions(outcome, opts, s)))

	if extra := renderNotes(outcome, s); extra != "" {
		lines = append(lines, s.section.Render(extra))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func titleFor(runtime string) string {
	switch runtime {
	case "node":
		return "Node.js version sync"
	case "dotnet":
		return ".NET SDK sync"
	default:
		return "Runtime version sync"
	}
}

func renderSupported(outcome application.Outcome, s styles) string {
	if len(outcome.Supported.Versions) == 0 {
		return s.empty.Render("No supported versions resolved.")
	}

	parts := make([]string, 0, len(outcome.Supported.Versions))
	for _, sv := range outcome.Supported.Versions {
		line := fmt.Sprintf("%s %s", s.version.Render(sv.Version.String()), s.tier.Render("("+string(sv.Tier)+")"))
		if !outcome.Default.IsZero() && sv.Version == outcome.Default {
			line += " " + s.tier.Render("[default]")
		}
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderActions(outcome application.Outcome, opts RenderOptions, s styles) string {
	if outcome.Plan.Empty() {
		return s.empty.Render("Nothing to do; installed versions already match the supported set.")
	}

	installVerb := "will install"
	removeVerb := "will remove"
	if opts.Applied {
		installVerb = "installed"
		removeVerb = "removed"
	}

	parts := make([]string, 0, len(outcome.Plan.Installs)+len(outcome.Plan.Removals))
	for _, version := range outcome.Plan.Installs {
		parts = append(parts, s.install.Render(fmt.Sprintf("+ %s %s", installVerb, version)))
	}
	for _, removal := range outcome.Plan.Removals {
		line := s.remove.Render(fmt.Sprintf("- %s %s", removeVerb, removal.Version))
		line += " " + s.reason.Render("("+string(removal.Reason)+")")
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderNotes(outcome application.Outcome, s styles) string {
	var parts []string

	if outcome.Profile != nil {
		note := fmt.Sprintf("profile: %s", outcome.Profile.State)
		if outcome.Profile.Profile != "" {
			note += " " + outcome.Profile.Profile
		}
		if outcome.Profile.Message != "" {
			note += ": " + outcome.Profile.Message
		}
		parts = append(parts, s.infoNote.Render(note))
	}

	for _, warning := range outcome.Warnings {
		parts = append(parts, s.warning.Render("warning: ")+s.infoNote.Render(warning))
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "\n")
}
