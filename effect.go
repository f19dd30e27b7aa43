package signals

import "github.com/graphflux/signals/internal"

// Dispose stops whatever it was returned from: an effect, a subscription,
// or an OnDispose registration.
type Dispose func()

// NewEffect runs fn immediately, tracking every signal and computed it
// reads. Whenever one of them changes, fn re-runs. If fn returns a non-nil
// cleanup, the cleanup runs before the next re-run and once more when the
// effect is disposed.
//
// A panic from fn that no ancestor Owner.OnError catches propagates
// synchronously out of the write that triggered the re-run (or out of
// NewEffect itself, for the initial run).
func NewEffect(fn func() func()) Dispose {
	e := internal.GetRuntime().NewEffect(fn)
	return Dispose(e.Dispose)
}
