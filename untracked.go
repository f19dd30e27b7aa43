package signals

import "github.com/graphflux/signals/internal"

// Untracked runs fn without registering any dependency on the signals or
// computeds it reads, even if called from within an active Computed or
// Effect.
func Untracked[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untracked(func() { result = fn() })
	return result
}

// OnCleanup registers fn to run the next time the current owner's node
// recomputes, and exactly once when it is disposed. Outside of any Computed
// or Effect, this is a no-op.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}
