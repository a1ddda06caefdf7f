// Package adapter contains infrastructure adapters for the rustmut CLI.
package adapter

import "os"

// EnvAdapter abstracts environment-variable lookup so flag resolution and the
// cargo binary override can be tested without touching the real process
// environment.
type EnvAdapter interface {
	// Lookup returns the value of the variable and whether it is set.
	Lookup(key string) (string, bool)
}

// OSEnvAdapter reads the real process environment.
type OSEnvAdapter struct{}

// NewOSEnvAdapter constructs an OSEnvAdapter.
func NewOSEnvAdapter() *OSEnvAdapter {
	return &OSEnvAdapter{}
}

// Lookup returns the value of the environment variable via os.LookupEnv.
func (a *OSEnvAdapter) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}
