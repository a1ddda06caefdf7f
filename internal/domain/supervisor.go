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

// waitPollInterval is how frequently the supervisor checks whether cargo
// finished.
const waitPollInterval = 50 * time.Millisecond

// instaUpdateEnv forces snapshot-testing crates into read-only mode inside
// the child: a mutant's test run must never rewrite snapshots in the source
// under test, and certainly must not rewrite them and then pass.
const instaUpdateEnv = "INSTA_UPDATE=no"

// Supervisor runs one cargo child at a time to completion or timeout and
// reports its terminal status while honoring cancellation.
type Supervisor struct {
	processes adapter.ProcessAdapter
	ui        controller.UI
}

// NewSupervisor constructs a Supervisor over the given process adapter and
// progress UI.
func NewSupervisor(processes adapter.ProcessAdapter, ui controller.UI) *Supervisor {
	return &Supervisor{processes: processes, ui: ui}
}

// RunCargo spawns argv in buildDir with the resolved rustflags injected and
// polls it until it reaches a terminal status, notifying the UI once per
// poll. The status is logged to logFile. When cancellation is observed after
// the child terminates, the status is discarded and ErrInterrupted returned
// instead; cancellation always wins over a merely-completed child.
func (s *Supervisor) RunCargo(ctx context.Context, buildDir m.Path, argv []string, rustflags string, timeout time.Duration, logFile *adapter.LogFile) (m.ProcessStatus, error) {
	env := []string{
		encodedRustflagsEnvVar + "=" + rustflags,
		instaUpdateEnv,
	}

	slog.Debug("running cargo", "argv", argv, "env", env, "dir", buildDir, "timeout", timeout)
	logFile.Message(fmt.Sprintf("run %v", argv))

	child, err := s.processes.Start(ctx, argv, env, buildDir, timeout, logFile.Writer())
	if err != nil {
		return m.ProcessStatus{}, fmt.Errorf("spawn cargo: %w", err)
	}

	var status m.ProcessStatus

	for {
		terminal, err := child.Poll()
		if err != nil {
			return m.ProcessStatus{}, err
		}

		if terminal != nil {
			status = *terminal
			break
		}

		s.ui.Tick(ctx)
		time.Sleep(waitPollInterval)
	}

	message := fmt.Sprintf("cargo result: %s in %.3fs", status, status.Elapsed.Seconds())
	logFile.Message(message)
	slog.Debug("cargo finished", "status", status, "elapsed", status.Elapsed)

	if ctx.Err() != nil {
		return m.ProcessStatus{}, ErrInterrupted
	}

	return status, nil
}
