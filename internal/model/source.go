package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// TreeRelativePath is a path guaranteed to be relative to a workspace root.
// It is never absolute; construction goes through NewTreeRelativePath.
type TreeRelativePath string

// NewTreeRelativePath strips root from abs and returns the remainder. It
// fails when abs does not lie beneath root; discovery treats that as a
// per-target warning, not a fatal error.
func NewTreeRelativePath(root Path, abs Path) (TreeRelativePath, error) {
	prefix := strings.TrimSuffix(string(root), string(filepath.Separator)) + string(filepath.Separator)

	rel, found := strings.CutPrefix(string(abs), prefix)
	if !found || rel == "" {
		return "", fmt.Errorf("%s is not inside %s", abs, root)
	}

	return TreeRelativePath(rel), nil
}

// SourceFile is one discovered mutation candidate. Identity is the
// tree-relative path; equality and ordering are lexicographic on it.
type SourceFile struct {
	// TreeRoot is the workspace root the relative path hangs off.
	TreeRoot Path
	// Rel is the path relative to TreeRoot.
	Rel TreeRelativePath
	// Package is the name of the cargo package owning the file. Many files
	// share one package name; plain string copies are cheap enough that no
	// interning is needed.
	Package string
}

// FullPath resolves the file's absolute path under its tree root.
func (f SourceFile) FullPath() Path {
	return Path(filepath.Join(string(f.TreeRoot), string(f.Rel)))
}
