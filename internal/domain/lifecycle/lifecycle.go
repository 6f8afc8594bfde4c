// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work such as the initial
// database ping and connection teardown.
const DefaultTimeout = 10 * time.Second
