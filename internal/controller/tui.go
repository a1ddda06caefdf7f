package controller

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

var (
	phaseStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle = lipgloss.NewStyle().Faint(true)
	spinStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// TUI implements UI with a Bubble Tea spinner that advances on supervisor
// ticks while a cargo phase runs.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.program = tea.NewProgram(newRunModel(), tea.WithOutput(t.output))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close stops the program and waits for it to release the terminal.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
}

// Tick advances the elapsed-time display.
func (t *TUI) Tick(_ context.Context) {
	if t.program != nil {
		t.program.Send(tickMsg{})
	}
}

// PhaseStarted switches the spinner line to the new phase.
func (t *TUI) PhaseStarted(_ context.Context, phase m.Phase) {
	if t.program != nil {
		t.program.Send(phaseStartedMsg{phase: phase})
	}
}

// PhaseFinished freezes the phase line with its terminal status.
func (t *TUI) PhaseFinished(_ context.Context, phase m.Phase, status m.ProcessStatus) {
	if t.program != nil {
		t.program.Send(phaseFinishedMsg{phase: phase, status: status})
	}
}

// DisplayRoot prints the located workspace root.
func (t *TUI) DisplayRoot(ctx context.Context, root m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	_, _ = fmt.Fprintf(t.output, "%s\n", root)
}

// DisplaySources reuses the plain table; source listings need no animation.
func (t *TUI) DisplaySources(ctx context.Context, root m.Path, files []m.SourceFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(t.output, "workspace root: %s\n\n%s", root, renderSourcesTable(files))

	return nil
}

type tickMsg struct{}

type phaseStartedMsg struct {
	phase m.Phase
}

type phaseFinishedMsg struct {
	phase  m.Phase
	status m.ProcessStatus
}

type runModel struct {
	spinner  spinner.Model
	phase    string
	started  time.Time
	elapsed  time.Duration
	running  bool
	finished []string
}

func newRunModel() runModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinStyle

	return runModel{spinner: s}
}

func (r runModel) Init() tea.Cmd {
	return r.spinner.Tick
}

func (r runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)

		return r, cmd
	case tickMsg:
		if r.running {
			r.elapsed = time.Since(r.started)
		}

		return r, nil
	case phaseStartedMsg:
		r.phase = msg.phase.String()
		r.started = time.Now()
		r.elapsed = 0
		r.running = true

		return r, nil
	case phaseFinishedMsg:
		r.running = false

		label := okStyle.Render(msg.status.String())
		if !msg.status.Success() {
			label = failStyle.Render(msg.status.String())
		}

		r.finished = append(r.finished, fmt.Sprintf(
			"cargo %s: %s %s",
			msg.phase,
			label,
			mutedStyle.Render(fmt.Sprintf("(%.1fs)", msg.status.Elapsed.Seconds())),
		))

		return r, nil
	case tea.KeyMsg:
		// Interruption arrives through the signal context, not the TUI.
		return r, nil
	}

	return r, nil
}

func (r runModel) View() string {
	view := ""
	for _, line := range r.finished {
		view += line + "\n"
	}

	if r.running {
		view += fmt.Sprintf(
			"%s %s %s\n",
			r.spinner.View(),
			phaseStyle.Render("cargo "+r.phase),
			mutedStyle.Render(fmt.Sprintf("%.0fs", r.elapsed.Seconds())),
		)
	}

	return view
}
