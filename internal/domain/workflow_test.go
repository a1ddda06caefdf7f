package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rustmut.dev/pkg/rustmut/internal/adapter"
	m "rustmut.dev/pkg/rustmut/internal/model"
)

type fakeTool struct {
	root     m.Path
	rootErr  error
	files    []m.SourceFile
	filesErr error
}

func (f *fakeTool) Bin() string { return "cargo" }

func (f *fakeTool) Argv(packageName string, phase m.Phase, _ m.Options) []string {
	argv := []string{"cargo", phase.String()}
	if packageName != "" {
		argv = append(argv, "--package", packageName)
	}

	return argv
}

func (f *fakeTool) Rustflags() string { return "--cap-lints=allow" }

func (f *fakeTool) FindRoot(_ context.Context, _ m.Path) (m.Path, error) {
	return f.root, f.rootErr
}

func (f *fakeTool) DiscoverSources(_ context.Context, _ m.Path) ([]m.SourceFile, error) {
	return f.files, f.filesErr
}

type fakeBuildDirs struct {
	created m.Path
	removed []m.Path
}

func (b *fakeBuildDirs) Create(_ context.Context, _ m.Path) (m.Path, error) {
	return b.created, nil
}

func (b *fakeBuildDirs) Remove(path m.Path) error {
	b.removed = append(b.removed, path)
	return nil
}

// scriptedCargoRunner returns one status per call, in order.
type scriptedCargoRunner struct {
	statuses []m.ProcessStatus
	err      error
	argvs    [][]string
}

func (r *scriptedCargoRunner) RunCargo(_ context.Context, _ m.Path, argv []string, _ string, _ time.Duration, _ *adapter.LogFile) (m.ProcessStatus, error) {
	r.argvs = append(r.argvs, argv)

	if r.err != nil {
		return m.ProcessStatus{}, r.err
	}

	return r.statuses[len(r.argvs)-1], nil
}

func baselineFixture(t *testing.T, runner *scriptedCargoRunner) (Workflow, *fakeBuildDirs, BaselineArgs) {
	t.Helper()

	tool := &fakeTool{
		root:  "/work/tree",
		files: []m.SourceFile{{TreeRoot: "/work/tree", Rel: "src/lib.rs", Package: "demo"}},
	}
	buildDirs := &fakeBuildDirs{created: m.Path(t.TempDir())}
	workflow := NewWorkflow(tool, buildDirs, runner, &countingUI{})

	args := BaselineArgs{
		Dir:     "/work/tree/src",
		Timeout: time.Minute,
		Output:  m.Path(t.TempDir()),
	}

	return workflow, buildDirs, args
}

func TestBaseline_RunsAllPhasesInOrder(t *testing.T) {
	runner := &scriptedCargoRunner{statuses: []m.ProcessStatus{
		m.Exited(0, time.Second),
		m.Exited(0, time.Second),
		m.Exited(0, time.Second),
	}}

	workflow, buildDirs, args := baselineFixture(t, runner)

	require.NoError(t, workflow.Baseline(context.Background(), args))

	require.Len(t, runner.argvs, 3)
	assert.Equal(t, "check", runner.argvs[0][1])
	assert.Equal(t, "build", runner.argvs[1][1])
	assert.Equal(t, "test", runner.argvs[2][1])

	// The scratch tree is cleaned up afterwards.
	assert.Equal(t, []m.Path{buildDirs.created}, buildDirs.removed)

	// One log file per phase.
	for _, name := range []string{"baseline_check.log", "baseline_build.log", "baseline_test.log"} {
		_, err := os.Stat(filepath.Join(string(args.Output), "log", name))
		assert.NoError(t, err, name)
	}
}

func TestBaseline_StopsAtFirstFailingPhase(t *testing.T) {
	runner := &scriptedCargoRunner{statuses: []m.ProcessStatus{
		m.Exited(101, time.Second),
	}}

	workflow, buildDirs, args := baselineFixture(t, runner)

	err := workflow.Baseline(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseline cargo check failed")
	assert.Len(t, runner.argvs, 1)
	assert.Equal(t, []m.Path{buildDirs.created}, buildDirs.removed)
}

func TestBaseline_NoTargetsIsAnError(t *testing.T) {
	tool := &fakeTool{root: "/work/tree"}
	workflow := NewWorkflow(tool, &fakeBuildDirs{}, &scriptedCargoRunner{}, &countingUI{})

	err := workflow.Baseline(context.Background(), BaselineArgs{Dir: "/work/tree", Output: m.Path(t.TempDir())})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mutation targets")
}

func TestBaseline_InterruptionPropagatesUnwrapped(t *testing.T) {
	runner := &scriptedCargoRunner{err: ErrInterrupted}

	workflow, _, args := baselineFixture(t, runner)

	err := workflow.Baseline(context.Background(), args)
	require.ErrorIs(t, err, ErrInterrupted)
}

func TestBaseline_DiscoveryFailureIsFatal(t *testing.T) {
	discoverErr := errors.New("run cargo metadata: exit status 101")
	tool := &fakeTool{root: "/work/tree", filesErr: discoverErr}
	workflow := NewWorkflow(tool, &fakeBuildDirs{}, &scriptedCargoRunner{}, &countingUI{})

	err := workflow.Baseline(context.Background(), BaselineArgs{Dir: "/work/tree"})
	require.ErrorIs(t, err, discoverErr)
}

func TestDiscover_ReturnsRootAndFiles(t *testing.T) {
	tool := &fakeTool{
		root:  "/work/tree",
		files: []m.SourceFile{{TreeRoot: "/work/tree", Rel: "src/lib.rs", Package: "demo"}},
	}
	workflow := NewWorkflow(tool, &fakeBuildDirs{}, &scriptedCargoRunner{}, &countingUI{})

	root, files, err := workflow.Discover(context.Background(), "/work/tree/src")
	require.NoError(t, err)
	assert.Equal(t, m.Path("/work/tree"), root)
	assert.Len(t, files, 1)
}
