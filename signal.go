package signals

import "github.com/graphflux/signals/internal"

// as converts an internal any-typed value back to T, the way the teacher's
// sig.go crosses the generics/any boundary. A nil value (an undisposed
// zero-valued node) converts to T's zero value rather than panicking.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Signal is a mutable, generically-typed reactive cell.
type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates a signal holding initial, read/write from the calling
// goroutine's runtime.
func NewSignal[T any](initial T, opts ...Option[T]) *Signal[T] {
	o := resolveOptions(opts)
	return &Signal[T]{
		signal: internal.GetRuntime().NewSignal(initial, anyEqual(o.equal), o.label),
	}
}

// Value reads the current value, registering a dependency if called from
// within a Computed or Effect.
func (s *Signal[T]) Value() T { return as[T](s.signal.Read()) }

// Peek reads the current value without registering a dependency.
func (s *Signal[T]) Peek() T { return as[T](s.signal.Peek()) }

// PreviousValue returns the value held immediately before the last write
// that actually changed it.
func (s *Signal[T]) PreviousValue() T { return as[T](s.signal.PreviousValue()) }

// InitialValue returns the value the signal was constructed with.
func (s *Signal[T]) InitialValue() T { return as[T](s.signal.InitialValue()) }

// Version is the number of writes that have passed the equality check.
func (s *Signal[T]) Version() uint64 { return s.signal.Version() }

// Disposed reports whether Dispose has been called.
func (s *Signal[T]) Disposed() bool { return s.signal.Disposed() }

// ID returns this signal's process-unique, stable identifier.
func (s *Signal[T]) ID() uint64 { return s.signal.ID() }

// Write stores v if it differs from the current value under the equality
// predicate, notifying dependents. Returns WriteAfterDisposeError if this
// signal has been disposed.
func (s *Signal[T]) Write(v T) error { return s.signal.Write(v) }

// Set stores v, optionally bypassing the equality predicate when force is
// true.
func (s *Signal[T]) Set(v T, force bool) error {
	if force {
		return s.signal.ForceSet(v)
	}
	return s.signal.Write(v)
}

// Subscribe installs an effect that calls fn with the current value
// immediately and again on every subsequent change. The returned Dispose
// stops the subscription.
func (s *Signal[T]) Subscribe(fn func(T)) Dispose {
	return Dispose(s.signal.Subscribe(func(v any) { fn(as[T](v)) }))
}

// OnDispose registers fn to run exactly once when this signal is disposed.
func (s *Signal[T]) OnDispose(fn func()) Dispose { return Dispose(s.signal.OnDispose(fn)) }

// Dispose marks the signal disposed and runs its dispose callbacks.
func (s *Signal[T]) Dispose() { s.signal.Dispose() }

// ToJSON returns the current value without registering a dependency,
// satisfying the same "serialize the current snapshot" convention every
// node type shares.
func (s *Signal[T]) ToJSON() any { return s.Peek() }
