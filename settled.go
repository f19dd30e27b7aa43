package signals

import "github.com/graphflux/signals/internal"

// OnSettled registers fn to run once, when the next flush has fully drained,
// including any effects chained by effects that ran during that flush. It
// never runs immediately, even if nothing is pending when called.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}
