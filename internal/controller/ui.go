// Package controller provides output adapters for progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

// UI is the capability the pipeline holds for talking to the user.
// The supervisor only ever calls Tick; the workflow drives the rest.
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)

	// Tick is the single "still running" notification, invoked once per
	// supervisor poll so a progress indicator can advance.
	Tick(ctx context.Context)

	PhaseStarted(ctx context.Context, phase m.Phase)
	PhaseFinished(ctx context.Context, phase m.Phase, status m.ProcessStatus)

	DisplayRoot(ctx context.Context, root m.Path)
	DisplaySources(ctx context.Context, root m.Path, files []m.SourceFile) error
}

// NewUI picks the interactive TUI on a terminal and the plain console
// implementation everywhere else.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
