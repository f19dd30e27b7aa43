package signals

import "github.com/graphflux/signals/internal"

// Computed is a lazily-refreshed, memoized derivation of other signals and
// computeds.
type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a computed deriving its value from fn. fn is not
// invoked until the computed is first read.
func NewComputed[T any](fn func() T, opts ...Option[T]) *Computed[T] {
	o := resolveOptions(opts)
	c := internal.GetRuntime().NewComputed(func(_ *internal.Computed) any {
		return fn()
	}, anyEqual(o.equal), o.label, o.autoDispose)
	return &Computed[T]{computed: c}
}

// Value refreshes the computed if needed and returns its value, registering
// a dependency if called from within another Computed or Effect. Panics
// with a *ComputeError if the compute function last failed; panics with a
// *CycleError if read re-entrantly while already running.
func (c *Computed[T]) Value() T {
	v, err := c.computed.Read()
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// TryValue is Value without the panic: it returns the cached error, if any,
// instead of panicking.
func (c *Computed[T]) TryValue() (T, error) {
	v, err := c.computed.Read()
	if err != nil {
		return as[T](nil), err
	}
	return as[T](v), nil
}

// Peek refreshes and returns the value without registering a dependency.
func (c *Computed[T]) Peek() T {
	v, err := c.computed.Peek()
	if err != nil {
		panic(err)
	}
	return as[T](v)
}

// PreviousValue returns the value held before the most recent change.
func (c *Computed[T]) PreviousValue() T { return as[T](c.computed.PreviousValue()) }

// InitialValue returns the value produced by the first successful compute.
func (c *Computed[T]) InitialValue() T { return as[T](c.computed.InitialValue()) }

// Version is the number of times the compute function has produced a new
// value (including the first run) or failed.
func (c *Computed[T]) Version() uint64 { return c.computed.Version() }

// Disposed reports whether Dispose has been called.
func (c *Computed[T]) Disposed() bool { return c.computed.Disposed() }

// ID returns this computed's process-unique, stable identifier.
func (c *Computed[T]) ID() uint64 { return c.computed.ID() }

// Recompute forces re-evaluation, bypassing the equality predicate.
func (c *Computed[T]) Recompute() (T, error) {
	v, err := c.computed.Recompute()
	return as[T](v), err
}

// OverrideWith is a testing hook: it refreshes the computed, then overwrites
// its current and previous value with v, without touching its edges.
func (c *Computed[T]) OverrideWith(v T) { c.computed.OverrideWith(v) }

// Subscribe installs an effect that calls fn with the current value
// immediately and again on every subsequent change.
func (c *Computed[T]) Subscribe(fn func(T)) Dispose {
	e := internal.GetRuntime().NewEffect(func() func() {
		fn(c.Value())
		return nil
	})
	return Dispose(e.Dispose)
}

// OnDispose registers fn to run exactly once when this computed is
// disposed.
func (c *Computed[T]) OnDispose(fn func()) Dispose { return Dispose(c.computed.OnDispose(fn)) }

// Dispose tears down this computed and unsubscribes it from every source it
// was tracking.
func (c *Computed[T]) Dispose() { c.computed.Dispose() }

// ToJSON returns the current value without registering a dependency.
func (c *Computed[T]) ToJSON() any { return c.Peek() }
