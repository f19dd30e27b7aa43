package signals

import "github.com/graphflux/signals/internal"

// OnSignalCreated registers fn to run every time a Signal is constructed, in
// any goroutine's runtime. Intended for devtools/instrumentation, not for
// application logic.
func OnSignalCreated(fn func(id uint64, label string)) { internal.OnSignalCreated(fn) }

// OnSignalUpdated registers fn to run every time a Signal's write passes the
// equality check and actually changes its value.
func OnSignalUpdated(fn func(id uint64, value any)) { internal.OnSignalUpdated(fn) }

// OnComputedCreated registers fn to run every time a Computed is
// constructed. An Effect is built on an internal computed, so constructing
// an Effect also triggers it, with an empty label.
func OnComputedCreated(fn func(id uint64, label string)) { internal.OnComputedCreated(fn) }

// OnComputedUpdated registers fn to run every time a Computed successfully
// recomputes to a new value. Every successful Effect run also triggers it,
// with the effect's id.
func OnComputedUpdated(fn func(id uint64, value any)) { internal.OnComputedUpdated(fn) }

// OnEffectCreated registers fn to run every time an Effect is constructed.
func OnEffectCreated(fn func(id uint64)) { internal.OnEffectCreated(fn) }

// OnEffectCalled registers fn to run every time an Effect's function
// finishes running.
func OnEffectCalled(fn func(id uint64)) { internal.OnEffectCalled(fn) }

// OnReadAfterDispose registers fn to run whenever a disposed Signal or
// Computed is read. Reading a disposed node is not an error: it returns the
// frozen last value, but this hook lets instrumentation flag the call site.
func OnReadAfterDispose(fn func(id uint64, label string)) { internal.OnReadAfterDispose(fn) }
