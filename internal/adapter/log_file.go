package adapter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

// LogFile is the append-only sink for one supervised cargo run: the child's
// combined output plus one summary line per invocation. It is owned by a
// single run; no concurrent writers.
type LogFile struct {
	path m.Path
	file *os.File
}

// CreateLogFile creates `<dir>/log/<name>.log`, truncating any previous run's
// file of the same name.
func CreateLogFile(dir m.Path, name string) (*LogFile, error) {
	logDir := filepath.Join(string(dir), "log")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(logDir, sanitizeLogName(name)+".log")

	// #nosec G304 - path is derived from our own output directory
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &LogFile{path: m.Path(path), file: file}, nil
}

// Message appends one human-readable line to the log.
func (l *LogFile) Message(message string) {
	if _, err := fmt.Fprintln(l.file, message); err != nil {
		slog.Warn("failed to write log file message", "path", l.path, "error", err)
	}
}

// Writer exposes the underlying sink for child process output.
func (l *LogFile) Writer() io.Writer {
	return l.file
}

// Path returns the log file's location, for error messages.
func (l *LogFile) Path() m.Path {
	return l.path
}

// Close flushes and closes the file.
func (l *LogFile) Close() error {
	return l.file.Close()
}

func sanitizeLogName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
