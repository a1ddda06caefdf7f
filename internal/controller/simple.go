package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer. It prints one
// line per event and stays silent between them, which suits logs and CI.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Tick is a no-op; the simple UI has no live progress indicator.
func (s *SimpleUI) Tick(_ context.Context) {}

// PhaseStarted announces a cargo phase beginning.
func (s *SimpleUI) PhaseStarted(ctx context.Context, phase m.Phase) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("cargo %s ...\n", phase)
}

// PhaseFinished reports a cargo phase's terminal status.
func (s *SimpleUI) PhaseFinished(ctx context.Context, phase m.Phase, status m.ProcessStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("cargo %s: %s in %.1fs\n", phase, status, status.Elapsed.Seconds())
}

// DisplayRoot prints the located workspace root.
func (s *SimpleUI) DisplayRoot(ctx context.Context, root m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", root)
}

// DisplaySources renders the discovered mutation targets as a table.
func (s *SimpleUI) DisplaySources(ctx context.Context, root m.Path, files []m.SourceFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("workspace root: %s\n\n%s", root, renderSourcesTable(files))

	return nil
}

func renderSourcesTable(files []m.SourceFile) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Package"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	packages := map[string]bool{}

	for _, file := range files {
		table.Append([]string{string(file.Rel), file.Package})
		packages[file.Package] = true
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		fmt.Sprintf("%d package(s)", len(packages)),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
