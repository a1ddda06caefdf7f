package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rustmut.dev/pkg/rustmut/internal/adapter"
	"rustmut.dev/pkg/rustmut/internal/controller"
	m "rustmut.dev/pkg/rustmut/internal/model"
)

// BaselineArgs configures one baseline run.
type BaselineArgs struct {
	// Dir is the directory the user pointed rustmut at; the workspace root
	// is located from here.
	Dir m.Path
	// Package restricts cargo to one package; empty means the whole
	// workspace.
	Package string
	// Options carries the user's extra cargo arguments.
	Options m.Options
	// Timeout bounds each supervised cargo phase.
	Timeout time.Duration
	// Output is the directory log files are written under.
	Output m.Path
}

// Workflow is the top-level entry point the CLI calls into.
type Workflow interface {
	// Baseline locates the workspace, discovers mutation targets, snapshots
	// the tree into a scratch build dir and runs the check/build/test phases
	// there to prove the unmutated tree is green.
	Baseline(ctx context.Context, args BaselineArgs) error

	// Discover locates the workspace enclosing dir and returns its root and
	// the mutation-eligible source files.
	Discover(ctx context.Context, dir m.Path) (m.Path, []m.SourceFile, error)

	// Locate returns the workspace root enclosing dir.
	Locate(ctx context.Context, dir m.Path) (m.Path, error)
}

// cargoRunner is the slice of Supervisor the workflow needs; it exists so
// workflow tests can script phase outcomes.
type cargoRunner interface {
	RunCargo(ctx context.Context, buildDir m.Path, argv []string, rustflags string, timeout time.Duration, logFile *adapter.LogFile) (m.ProcessStatus, error)
}

type workflow struct {
	tool      Tool
	buildDirs adapter.BuildDirAdapter
	runner    cargoRunner
	ui        controller.UI
}

// NewWorkflow wires the pipeline together.
func NewWorkflow(tool Tool, buildDirs adapter.BuildDirAdapter, runner cargoRunner, ui controller.UI) Workflow {
	return &workflow{tool: tool, buildDirs: buildDirs, runner: runner, ui: ui}
}

func (w *workflow) Locate(ctx context.Context, dir m.Path) (m.Path, error) {
	return w.tool.FindRoot(ctx, dir)
}

func (w *workflow) Discover(ctx context.Context, dir m.Path) (m.Path, []m.SourceFile, error) {
	root, err := w.tool.FindRoot(ctx, dir)
	if err != nil {
		return "", nil, err
	}

	files, err := w.tool.DiscoverSources(ctx, root)
	if err != nil {
		return "", nil, err
	}

	return root, files, nil
}

func (w *workflow) Baseline(ctx context.Context, args BaselineArgs) error {
	root, files, err := w.Discover(ctx, args.Dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no mutation targets found in %s", root)
	}

	slog.Info("discovered mutation targets", "root", root, "count", len(files))

	buildDir, err := w.buildDirs.Create(ctx, root)
	if err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}

	defer func() {
		if err := w.buildDirs.Remove(buildDir); err != nil {
			slog.Warn("failed to remove build dir", "buildDir", buildDir, "error", err)
		}
	}()

	if err := w.ui.Start(ctx); err != nil {
		return err
	}

	defer w.ui.Close(ctx)

	rustflags := w.tool.Rustflags()

	for _, phase := range m.BaselinePhases() {
		status, err := w.runPhase(ctx, buildDir, phase, rustflags, args)
		if err != nil {
			return err
		}

		if !status.Success() {
			return fmt.Errorf("baseline cargo %s failed: %s", phase, status)
		}
	}

	return nil
}

func (w *workflow) runPhase(ctx context.Context, buildDir m.Path, phase m.Phase, rustflags string, args BaselineArgs) (m.ProcessStatus, error) {
	logFile, err := adapter.CreateLogFile(args.Output, "baseline_"+phase.String())
	if err != nil {
		return m.ProcessStatus{}, err
	}

	defer func() {
		if err := logFile.Close(); err != nil {
			slog.Warn("failed to close log file", "path", logFile.Path(), "error", err)
		}
	}()

	w.ui.PhaseStarted(ctx, phase)

	argv := w.tool.Argv(args.Package, phase, args.Options)

	status, err := w.runner.RunCargo(ctx, buildDir, argv, rustflags, args.Timeout, logFile)
	if err != nil {
		return m.ProcessStatus{}, err
	}

	w.ui.PhaseFinished(ctx, phase, status)

	return status, nil
}
