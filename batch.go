package signals

import "github.com/graphflux/signals/internal"

// Batch defers effect flushing until fn returns, coalescing multiple writes
// into a single propagation pass. Nested batches coalesce into the
// outermost one.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}
