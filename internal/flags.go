package internal

// Flags is the status word a Computed or Effect carries (an Effect embeds a
// Computed, so it shares the same word). A Signal has no compute to
// schedule or refresh, so it tracks disposal with a plain bool instead.
type Flags uint8

const (
	// FlagOutdated means the cached value may be stale and must be
	// re-validated on next refresh. Cleared only by a successful refresh.
	FlagOutdated Flags = 1 << iota
	// FlagTracking means the node has at least one live subscriber (direct
	// or, for an effect, the flush loop itself) and therefore maintains
	// live edges into its sources' target lists instead of only polling.
	FlagTracking
	// FlagRunning is set only while the node's own compute call is on the
	// stack. Seeing it set on a re-entrant read means a cycle.
	FlagRunning
	// FlagNotified guards against walking the same subtree twice during a
	// single notify phase.
	FlagNotified
	// FlagHasError means the last compute call panicked; the cached error
	// is rethrown on every read until a refresh succeeds.
	FlagHasError
	// FlagDisposed is terminal: once set, the node is inert.
	FlagDisposed
)

func (f Flags) has(flag Flags) bool { return f&flag != 0 }
