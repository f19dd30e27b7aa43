package signals

import "github.com/graphflux/signals/internal"

// CycleError is returned/panicked when a computed reads, directly or
// transitively, its own currently-running self.
type CycleError = internal.CycleError

// WriteAfterDisposeError is returned when Write or Set is called on a
// disposed signal.
type WriteAfterDisposeError = internal.WriteAfterDisposeError

// ComputeError wraps a panic raised from a computed's compute function. It
// is cached on the node and rethrown on every read until the node
// recomputes without error.
type ComputeError = internal.ComputeError

// ErrEffectDidNotSettle is raised when a flush re-schedules effects more
// than the re-entrancy cap allows, guarding against an effect that keeps
// invalidating its own dependencies forever.
var ErrEffectDidNotSettle = internal.ErrEffectDidNotSettle
