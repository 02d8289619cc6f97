// Copyright Chrono Technologies LLC
// SPDX-License-Identifier: MIT

package art

import (
	"log/slog"
	"os"
)

// diagnosticLogger emits a single structured record immediately before an
// invariant-violation panic, so that whatever is aggregating process logs
// still captures what went wrong even though the error itself never
// reaches a caller as a normal return value (see errors.go, assertf).
var diagnosticLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
