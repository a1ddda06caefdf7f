package adapter

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

// BuildDirAdapter manages scratch copies of a workspace. Cargo children run
// inside a copy so their writes never touch the user's tree.
type BuildDirAdapter interface {
	// Create snapshots the tree at root into a fresh temp directory and
	// returns its path.
	Create(ctx context.Context, root m.Path) (m.Path, error)

	// Remove deletes a previously created build directory.
	Remove(path m.Path) error
}

// LocalBuildDirAdapter copies workspaces under os.TempDir.
type LocalBuildDirAdapter struct{}

// NewLocalBuildDirAdapter constructs a LocalBuildDirAdapter.
func NewLocalBuildDirAdapter() *LocalBuildDirAdapter {
	return &LocalBuildDirAdapter{}
}

// Create copies root into a temp directory, skipping cargo output and VCS
// metadata. Files are copied in parallel; directory structure is laid down
// first so the copies never race their parents.
func (a *LocalBuildDirAdapter) Create(ctx context.Context, root m.Path) (m.Path, error) {
	tmpDir, err := os.MkdirTemp("", "rustmut-")
	if err != nil {
		return "", err
	}

	slog.Debug("snapshotting workspace", "root", root, "buildDir", tmpDir)

	var files []string

	err = filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(string(root), path)
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if base := filepath.Base(path); base == "target" || base == ".git" {
				return filepath.SkipDir
			}

			if rel == "." {
				return nil
			}

			info, err := entry.Info()
			if err != nil {
				return err
			}

			return os.MkdirAll(filepath.Join(tmpDir, rel), info.Mode().Perm())
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		files = append(files, rel)

		return nil
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for _, rel := range files {
		rel := rel
		group.Go(func() error {
			return copyFile(filepath.Join(string(root), rel), filepath.Join(tmpDir, rel))
		})
	}

	if err := group.Wait(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}

	return m.Path(tmpDir), nil
}

// Remove deletes the build directory and all its contents.
func (a *LocalBuildDirAdapter) Remove(path m.Path) error {
	return os.RemoveAll(string(path))
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	// #nosec G304 - src comes from walking the user's own workspace
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	// #nosec G304 - dst is inside the temp dir this adapter created
	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	_, err = io.Copy(destFile, sourceFile)

	return err
}
