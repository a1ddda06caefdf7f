package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rustmut.dev/pkg/rustmut/internal/adapter"
	m "rustmut.dev/pkg/rustmut/internal/model"
)

const (
	// manifestFileName is cargo's project descriptor.
	manifestFileName = "Cargo.toml"

	// cargoEnvVar overrides which cargo binary to call. When rustmut is run
	// under cargo this points back at the matching toolchain.
	cargoEnvVar = "CARGO"
	// defaultCargoBin is used when no override is set.
	defaultCargoBin = "cargo"

	// encodedRustflagsEnvVar is cargo's encoded flags variable. Its fields
	// are joined by encodedFlagsSeparator, a control byte that cannot appear
	// inside a single flag, so flags containing spaces survive.
	encodedRustflagsEnvVar = "CARGO_ENCODED_RUSTFLAGS"
	// rustflagsEnvVar is the plain, space-separated fallback.
	rustflagsEnvVar       = "RUSTFLAGS"
	encodedFlagsSeparator = "\x1f"

	// capLintsFlag downgrades every lint to non-fatal. Mutated code trips
	// lints all the time and that must not fail the test phase.
	capLintsFlag = "--cap-lints=allow"
)

// Tool abstracts the build tool the pipeline drives. CargoTool is the only
// implementation; the interface exists so the workflow can be tested without
// a cargo binary.
type Tool interface {
	Bin() string
	Argv(packageName string, phase m.Phase, options m.Options) []string
	Rustflags() string
	FindRoot(ctx context.Context, path m.Path) (m.Path, error)
	DiscoverSources(ctx context.Context, root m.Path) ([]m.SourceFile, error)
}

// CargoTool drives the cargo binary.
type CargoTool struct {
	env    adapter.EnvAdapter
	runner adapter.CommandRunner
}

// NewCargoTool constructs a CargoTool over the given environment lookup and
// one-shot command runner.
func NewCargoTool(env adapter.EnvAdapter, runner adapter.CommandRunner) *CargoTool {
	return &CargoTool{env: env, runner: runner}
}

// Bin returns the name of the cargo binary to invoke.
func (t *CargoTool) Bin() string {
	if bin, ok := t.env.Lookup(cargoEnvVar); ok && bin != "" {
		return bin
	}

	return defaultCargoBin
}

// Argv builds the argument vector for one cargo check/build/test invocation,
// including argv[0] as the cargo binary itself. An empty packageName scopes
// the invocation to the whole workspace. Arguments from options are passed
// through verbatim; supplying valid cargo flags is the caller's business.
func (t *CargoTool) Argv(packageName string, phase m.Phase, options m.Options) []string {
	argv := []string{t.Bin(), phase.String()}

	if phase == m.PhaseCheck || phase == m.PhaseBuild {
		argv = append(argv, "--tests")
	}

	if packageName != "" {
		argv = append(argv, "--package", packageName)
	} else {
		argv = append(argv, "--workspace")
	}

	argv = append(argv, options.CargoArgs...)

	if phase == m.PhaseTest {
		argv = append(argv, options.CargoTestArgs...)
	}

	return argv
}

// Rustflags returns the adjusted CARGO_ENCODED_RUSTFLAGS value for the child:
// any pre-existing encoded flags are preserved field by field, else plain
// RUSTFLAGS is preserved token by token, and --cap-lints=allow is appended
// last in every case. Cargo config files are not read; merging their
// target-specific flag tables is out of scope.
func (t *CargoTool) Rustflags() string {
	var flags []string

	if encoded, ok := t.env.Lookup(encodedRustflagsEnvVar); ok {
		flags = strings.Split(encoded, encodedFlagsSeparator)
	} else if plain, ok := t.env.Lookup(rustflagsEnvVar); ok {
		flags = strings.Split(plain, " ")
	}

	flags = append(flags, capLintsFlag)

	slog.Debug("adjusted rustflags", "flags", flags)

	return strings.Join(flags, encodedFlagsSeparator)
}

// FindRoot runs `cargo locate-project` to find the manifest enclosing path
// and returns its parent directory as the workspace root.
func (t *CargoTool) FindRoot(ctx context.Context, path m.Path) (m.Path, error) {
	info, err := os.Stat(string(path))
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotADirectory)
	}

	stdout, err := t.runner.Output(ctx, []string{t.Bin(), "locate-project"}, path)
	if err != nil {
		return "", fmt.Errorf("run cargo locate-project in %s: %w", path, err)
	}

	var located struct {
		Root string `json:"root"`
	}

	if err := json.Unmarshal([]byte(stdout), &located); err != nil {
		return "", fmt.Errorf("parse cargo locate-project output %q: %w", stdout, err)
	}

	if located.Root == "" {
		return "", fmt.Errorf("cargo locate-project output has no root: %q", stdout)
	}

	// The reported manifest must exist; cargo pointing at a missing file
	// means the host environment is broken, not that the user erred.
	if info, err := os.Stat(located.Root); err != nil || info.IsDir() {
		return "", fmt.Errorf("cargo locate-project reported missing manifest %s", located.Root)
	}

	return m.Path(filepath.Dir(located.Root)), nil
}

// cargoMetadata mirrors the slice of `cargo metadata` output the discovery
// scan needs.
type cargoMetadata struct {
	Packages         []cargoPackage `json:"packages"`
	WorkspaceMembers []string       `json:"workspace_members"`
}

type cargoPackage struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ManifestPath string        `json:"manifest_path"`
	Targets      []cargoTarget `json:"targets"`
}

type cargoTarget struct {
	Name    string   `json:"name"`
	Kind    []string `json:"kind"`
	SrcPath string   `json:"src_path"`
}

// DiscoverSources queries workspace metadata for the manifest at root and
// returns the mutation-eligible source files: the entry points of every
// library and executable target of every workspace member, as a sorted,
// duplicate-free, root-relative list. A metadata failure is fatal to the
// whole scan; a partial package list would silently under-mutate the
// workspace.
func (t *CargoTool) DiscoverSources(ctx context.Context, root m.Path) ([]m.SourceFile, error) {
	manifestPath := filepath.Join(string(root), manifestFileName)
	slog.Debug("querying cargo metadata", "manifest", manifestPath)

	if err := ctx.Err(); err != nil {
		return nil, ErrInterrupted
	}

	argv := []string{t.Bin(), "metadata", "--format-version", "1", "--manifest-path", manifestPath}

	stdout, err := t.runner.Output(ctx, argv, root)
	if err != nil {
		return nil, fmt.Errorf("run cargo metadata: %w", err)
	}

	var metadata cargoMetadata
	if err := json.Unmarshal([]byte(stdout), &metadata); err != nil {
		return nil, fmt.Errorf("parse cargo metadata output: %w", err)
	}

	members := make(map[string]bool, len(metadata.WorkspaceMembers))
	for _, id := range metadata.WorkspaceMembers {
		members[id] = true
	}

	var found []m.SourceFile

	for _, pkg := range metadata.Packages {
		if !members[pkg.ID] {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, ErrInterrupted
		}

		slog.Debug("walking package", "package", pkg.Name, "manifest", pkg.ManifestPath)

		found = append(found, packageSources(root, pkg)...)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Rel < found[j].Rel
	})

	// A path can legitimately be referenced by more than one target; keep
	// only the first occurrence.
	deduped := found[:0]

	for _, file := range found {
		if len(deduped) > 0 && file.Rel == deduped[len(deduped)-1].Rel {
			continue
		}

		deduped = append(deduped, file)
	}

	return deduped, nil
}

// packageSources returns the mutation-target entry points declared by a
// single package's manifest.
func packageSources(root m.Path, pkg cargoPackage) []m.SourceFile {
	var found []m.SourceFile

	for _, target := range pkg.Targets {
		if !shouldMutateTarget(target) {
			slog.Debug("skipping target", "target", target.Name, "kinds", target.Kind)
			continue
		}

		rel, err := m.NewTreeRelativePath(root, m.Path(target.SrcPath))
		if err != nil {
			// Build-script-generated or external targets can live outside
			// the tree; skip them rather than failing the scan.
			slog.Warn("target source is outside the workspace, skipping", "target", target.Name, "src", target.SrcPath, "root", root)
			continue
		}

		slog.Debug("found mutation target", "path", rel, "kinds", target.Kind)

		found = append(found, m.SourceFile{TreeRoot: root, Rel: rel, Package: pkg.Name})
	}

	return found
}

// shouldMutateTarget keeps library and executable targets; tests, benches and
// examples are not mutation targets.
func shouldMutateTarget(target cargoTarget) bool {
	for _, kind := range target.Kind {
		if strings.HasSuffix(kind, "lib") || kind == "bin" {
			return true
		}
	}

	return false
}
