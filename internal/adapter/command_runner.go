package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

// CommandRunner abstracts one-shot subprocess invocations whose stdout is
// consumed by the caller (cargo locate-project, cargo metadata). These calls
// are expected to return near-instantly and carry no timeout of their own.
type CommandRunner interface {
	// Output runs argv in dir and returns its stdout. A non-zero exit or a
	// missing binary is an error carrying the captured stderr.
	Output(ctx context.Context, argv []string, dir m.Path) (string, error)
}

// LocalCommandRunner is the os/exec-backed CommandRunner.
type LocalCommandRunner struct{}

// NewLocalCommandRunner constructs a LocalCommandRunner.
func NewLocalCommandRunner() *LocalCommandRunner {
	return &LocalCommandRunner{}
}

// Output runs argv in dir and returns its stdout.
func (r *LocalCommandRunner) Output(ctx context.Context, argv []string, dir m.Path) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = string(dir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%s: %w: %s", argv[0], err, detail)
		}

		return "", fmt.Errorf("%s: %w", argv[0], err)
	}

	return stdout.String(), nil
}
