//go:build windows

package adapter

import (
	"os"
	"os/exec"
)

func setSysProcAttr(_ *exec.Cmd) {}

func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}

	return p.Kill()
}

func exitSignal(_ *os.ProcessState) (int, bool) {
	return 0, false
}
