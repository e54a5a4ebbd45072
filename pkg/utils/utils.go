// Package utils holds small assertion helpers shared across the teardown
// tree packages.
package utils

import "fmt"

// Assert panics with message if condition is false. Used at the
// boundaries the public API documents as programming errors rather than
// recoverable failures (e.g. indexing a nil slot).
func Assert(condition bool, message string) {
	if !condition {
		panic(message)
	}
}

// Assertf is like Assert but formats its message lazily, only when the
// condition actually fails.
func Assertf(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Sprintf(format, args...))
	}
}
