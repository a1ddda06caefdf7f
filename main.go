// Package main is the entry point for the rustmut CLI.
package main

import "rustmut.dev/pkg/rustmut/cmd"

func main() {
	cmd.Execute()
}
