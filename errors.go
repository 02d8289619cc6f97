// Copyright Chrono Technologies LLC
// SPDX-License-Identifier: MIT

package art

import (
	"errors"

	cockroacherrors "github.com/cockroachdb/errors"
)

var (
	// ErrNilKey is returned when an operation is attempted using a nil key.
	ErrNilKey = errors.New("art: key cannot be nil")

	// ErrKeyIsPrefix is returned when inserting a key that is a proper
	// prefix of an already-stored key, or vice versa. This implementation
	// requires that no stored key be a proper prefix of another, since
	// leaves are not marked with an end-of-key sentinel (see doc comment
	// on Tree.Insert).
	ErrKeyIsPrefix = errors.New("art: key is a proper prefix of an existing key")
)

// assertf panics with a diagnostic-rich, stack-trace-carrying error built by
// github.com/cockroachdb/errors when an ART invariant is violated. These are
// programmer errors (corrupt node tag, capacity overflow, grow/shrink called
// outside its contract) and are never returned to callers as a normal error
// value; per the package's error-handling design, invariant violations abort
// the process with a diagnostic rather than being made recoverable.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		err := cockroacherrors.AssertionFailedf(format, args...)
		diagnosticLogger.Error("art: invariant violation", "error", err)
		panic(err)
	}
}
