// Package model defines the data structures shared by the rustmut pipeline.
package model

// Phase identifies one cargo invocation in the baseline/mutant sequence.
// The phase name doubles as the cargo subcommand.
type Phase int

const (
	// PhaseCheck runs `cargo check` to see whether the tree compiles at all.
	PhaseCheck Phase = iota
	// PhaseBuild runs `cargo build` so test binaries are ready before timing tests.
	PhaseBuild
	// PhaseTest runs `cargo test`, the phase whose outcome classifies a mutant.
	PhaseTest
)

// String returns the cargo subcommand for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCheck:
		return "check"
	case PhaseBuild:
		return "build"
	case PhaseTest:
		return "test"
	}

	return "unknown"
}

// BaselinePhases lists the phases of a baseline run, in execution order.
func BaselinePhases() []Phase {
	return []Phase{PhaseCheck, PhaseBuild, PhaseTest}
}
