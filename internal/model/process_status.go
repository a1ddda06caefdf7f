package model

import (
	"fmt"
	"time"
)

// ProcessStatusKind distinguishes the three ways a supervised cargo process
// can reach a terminal state. Downstream mutant classification depends on
// telling these apart, so they are never collapsed into a plain error.
type ProcessStatusKind int

const (
	// StatusExited means the child exited on its own with a code.
	StatusExited ProcessStatusKind = iota
	// StatusSignalled means the child was terminated by a signal.
	StatusSignalled
	// StatusTimeout means the child was killed after exceeding its timeout.
	// A timeout is a first-class outcome, not an error: it usually means a
	// mutant introduced an infinite loop.
	StatusTimeout
)

// ProcessStatus is the terminal outcome of one supervised cargo run.
type ProcessStatus struct {
	Kind ProcessStatusKind
	// Code is the exit code; meaningful only when Kind is StatusExited.
	Code int
	// Signal is the terminating signal number; meaningful only when Kind is
	// StatusSignalled.
	Signal int
	// Elapsed is the wall-clock duration of the run, kept for logging.
	Elapsed time.Duration
}

// Exited builds a ProcessStatus for a child that exited with code.
func Exited(code int, elapsed time.Duration) ProcessStatus {
	return ProcessStatus{Kind: StatusExited, Code: code, Elapsed: elapsed}
}

// Signalled builds a ProcessStatus for a child terminated by a signal.
func Signalled(signal int, elapsed time.Duration) ProcessStatus {
	return ProcessStatus{Kind: StatusSignalled, Signal: signal, Elapsed: elapsed}
}

// TimedOut builds a ProcessStatus for a child killed on timeout.
func TimedOut(elapsed time.Duration) ProcessStatus {
	return ProcessStatus{Kind: StatusTimeout, Elapsed: elapsed}
}

// Success reports whether the child exited normally with code zero.
func (s ProcessStatus) Success() bool {
	return s.Kind == StatusExited && s.Code == 0
}

// String renders the status for log lines and the console.
func (s ProcessStatus) String() string {
	switch s.Kind {
	case StatusExited:
		if s.Code == 0 {
			return "ok"
		}

		return fmt.Sprintf("exit %d", s.Code)
	case StatusSignalled:
		return fmt.Sprintf("signal %d", s.Signal)
	case StatusTimeout:
		return "timeout"
	}

	return "unknown"
}
