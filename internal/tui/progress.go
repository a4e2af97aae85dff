// Package tui renders the terminal side of a run: the fetch spinner, the
// run summary and single-keystroke input.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/tui/styles"
)

// fetchProgressMsg carries the number of items fetched so far
type fetchProgressMsg int

// fetchDoneMsg stops the spinner
type fetchDoneMsg struct{}

type fetchModel struct {
	spinner spinner.Model
	label   string
	count   int
	done    bool
}

func newFetchModel(label string) fetchModel {
	return fetchModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		label: label,
	}
}

func (m fetchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m fetchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchProgressMsg:
		m.count = int(msg)
		return m, nil

	case fetchDoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m fetchModel) View() string {
	if m.done {
		return ""
	}
	line := m.spinner.View() + " " + m.label
	if m.count > 0 {
		line += " " + styles.DimStyle.Render(fmt.Sprintf("%d items", m.count))
	}
	return line + "\n"
}

// Track runs fn with a progress callback. On a terminal a spinner shows the
// item count reported so far; elsewhere nothing is drawn. The spinner is gone
// by the time Track returns.
func Track[T any](
	ctx context.Context,
	out io.Writer,
	label string,
	fn func(onProgress domain.ProgressFunc) (T, error),
) (T, error) {
	return track(ctx, out, label, IsTerminal(out), fn)
}

func track[T any](
	ctx context.Context,
	out io.Writer,
	label string,
	animate bool,
	fn func(onProgress domain.ProgressFunc) (T, error),
) (T, error) {
	if !animate {
		return fn(nil)
	}

	p := tea.NewProgram(
		newFetchModel(label),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = p.Run()
	}()

	result, err := fn(func(count int) {
		p.Send(fetchProgressMsg(count))
	})

	p.Send(fetchDoneMsg{})
	<-finished

	return result, err
}
