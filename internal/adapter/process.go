package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

// killGracePeriod is how long a terminated child gets between SIGTERM and
// SIGKILL.
const killGracePeriod = 5 * time.Second

// ProcessAdapter abstracts spawning and supervising the long-running cargo
// child process. Timeout enforcement and termination on cancellation live
// here; callers only interpret the resulting status.
type ProcessAdapter interface {
	// Start spawns argv in dir with extraEnv appended to the parent
	// environment. The child's combined output goes to output. The returned
	// Process is polled until it reports a terminal status.
	Start(ctx context.Context, argv []string, extraEnv []string, dir m.Path, timeout time.Duration, output io.Writer) (Process, error)
}

// Process is a running child owned by a ProcessAdapter.
type Process interface {
	// Poll returns the terminal status if the child has finished, nil if it
	// is still running, or an error if the child could not be supervised at
	// all.
	Poll() (*m.ProcessStatus, error)
}

// LocalProcessAdapter runs children via os/exec.
type LocalProcessAdapter struct{}

// NewLocalProcessAdapter constructs a LocalProcessAdapter.
func NewLocalProcessAdapter() *LocalProcessAdapter {
	return &LocalProcessAdapter{}
}

// Start spawns the child and begins waiting for it in the background.
func (a *LocalProcessAdapter) Start(ctx context.Context, argv []string, extraEnv []string, dir m.Path, timeout time.Duration, output io.Writer) (Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = string(dir)
	cmd.Env = append(os.Environ(), extraEnv...)
	cmd.Stdout = output
	cmd.Stderr = output
	cmd.WaitDelay = killGracePeriod
	setSysProcAttr(cmd)

	// Cancellation must take down the whole process group, not just the
	// direct child, or a hung test binary would outlive us.
	cmd.Cancel = func() error {
		return terminate(cmd.Process)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	slog.Debug("started child process", "pid", cmd.Process.Pid, "argv", argv, "dir", dir, "timeout", timeout)

	p := &localProcess{
		cmd:     cmd,
		started: time.Now(),
		timeout: timeout,
		done:    make(chan error, 1),
	}

	go func() {
		p.done <- cmd.Wait()
	}()

	return p, nil
}

type localProcess struct {
	cmd     *exec.Cmd
	started time.Time
	timeout time.Duration
	done    chan error

	timedOut bool
	status   *m.ProcessStatus
}

// Poll checks the child without blocking. Once the deadline passes it
// terminates the process group and keeps reporting "still running" until the
// wait completes, so no exit information is lost.
func (p *localProcess) Poll() (*m.ProcessStatus, error) {
	if p.status != nil {
		return p.status, nil
	}

	select {
	case waitErr := <-p.done:
		return p.classify(waitErr)
	default:
	}

	if !p.timedOut && time.Since(p.started) > p.timeout {
		p.timedOut = true

		slog.Debug("child process timed out, terminating", "pid", p.cmd.Process.Pid, "timeout", p.timeout)

		if err := terminate(p.cmd.Process); err != nil {
			slog.Warn("failed to terminate timed-out process", "pid", p.cmd.Process.Pid, "error", err)
		}
	}

	return nil, nil
}

func (p *localProcess) classify(waitErr error) (*m.ProcessStatus, error) {
	elapsed := time.Since(p.started)

	if p.timedOut {
		status := m.TimedOut(elapsed)
		p.status = &status

		return p.status, nil
	}

	if waitErr == nil {
		status := m.Exited(0, elapsed)
		p.status = &status

		return p.status, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return nil, fmt.Errorf("wait for %s: %w", p.cmd.Path, waitErr)
	}

	if sig, ok := exitSignal(exitErr.ProcessState); ok {
		status := m.Signalled(sig, elapsed)
		p.status = &status

		return p.status, nil
	}

	status := m.Exited(exitErr.ExitCode(), elapsed)
	p.status = &status

	return p.status, nil
}
