//go:build unix

package adapter

import (
	"os"
	"os/exec"
	"syscall"
	"time"
)

// setSysProcAttr places the child in its own process group so that signals
// reach the whole cargo/test-binary tree.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate asks the child's process group to stop, escalating to SIGKILL
// after the grace period.
func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}

	if err := syscall.Kill(-p.Pid, syscall.SIGTERM); err != nil {
		return p.Kill()
	}

	time.AfterFunc(killGracePeriod, func() {
		_ = syscall.Kill(-p.Pid, syscall.SIGKILL)
	})

	return nil
}

// exitSignal extracts the terminating signal from a wait status, if any.
func exitSignal(state *os.ProcessState) (int, bool) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if ok && ws.Signaled() {
		return int(ws.Signal()), true
	}

	return 0, false
}
