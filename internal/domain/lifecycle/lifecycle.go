// Package lifecycle holds shared constants for process start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds fx OnStart/OnStop hooks and graceful shutdown.
const DefaultTimeout = 10 * time.Second
