package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// elapsedThreshold is how long a sync runs before the spinner starts
// showing wall-clock time; catalog fetches are usually quicker, installs
// are not.
const elapsedThreshold = 3 * time.Second

type syncDoneMsg struct {
	err error
}

type syncClockMsg time.Time

type syncSpinnerModel struct {
	spinner spinner.Model
	label   string
	work    tea.Cmd
	started time.Time
	elapsed time.Duration
	err     error
	done    bool
}

func newSyncSpinnerModel(label string, work tea.Cmd) syncSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return syncSpinnerModel{
		spinner: s,
		label:   label,
		work:    work,
		started: time.Now(),
	}
}

func (m syncSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, syncClock(), m.work)
}

func syncClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return syncClockMsg(t)
	})
}

func (m syncSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case syncClockMsg:
		m.elapsed = time.Time(msg).Sub(m.started)
		return m, syncClock()
	case syncDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m syncSpinnerModel) View() string {
	if m.done {
		return ""
	}

	view := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if m.elapsed >= elapsedThreshold {
		view += fmt.Sprintf(" (%ds)", int(m.elapsed.Seconds()))
	}
	return view
}

func runSyncSpinner(ctx context.Context, output io.Writer, label string, work func(context.Context) error) error {
	workCmd := func() tea.Msg {
		return syncDoneMsg{err: work(ctx)}
	}

	p := tea.NewProgram(
		newSyncSpinnerModel(label, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(syncSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
