package model

// Options holds the user-supplied extra cargo arguments. It is built once per
// top-level invocation and never modified afterwards.
type Options struct {
	// CargoArgs are appended to every cargo invocation, after the built-in
	// arguments and in the order given.
	CargoArgs []string
	// CargoTestArgs are appended only to `cargo test` invocations, after
	// CargoArgs.
	CargoTestArgs []string
}
