// Package domain holds the cargo-driving pipeline: argv and flag
// construction, workspace discovery, and supervision of cargo children.
package domain

import "errors"

// ErrInterrupted reports that user-requested cancellation was observed. It is
// propagated without wrapping so callers can tell cancellation apart from
// genuine failure; once observed it takes precedence over any other outcome.
var ErrInterrupted = errors.New("interrupted")

// ErrNotADirectory reports that a path given for root location is not an
// existing directory.
var ErrNotADirectory = errors.New("not a directory")
