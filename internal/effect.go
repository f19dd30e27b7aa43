package internal

// Effect is an eager observer built directly on top of Computed, exactly
// as the teacher's internal/effect.go wraps a Computed: its compute
// function is the user's function, and the "value" it memoizes is the
// cleanup closure the user function returns (nil cleanup is fine).
//
// Unlike a plain Computed, an Effect is never read by anything else (it is
// not a Source), is always considered TRACKING (the flush loop is its
// permanent subscriber), and is queued the moment Notify marks it rather
// than waiting for a pull. A queued run is skipped when none of its
// sources' versions moved.
type Effect struct {
	*Computed

	userFn func() func()
}

func (r *Runtime) NewEffect(fn func() func()) *Effect {
	e := &Effect{userFn: fn}

	e.Computed = r.NewComputed(func(c *Computed) any {
		return e.userFn()
	}, neverEqual, "", false)
	e.Computed.isEffect = true
	e.Computed.flags |= FlagTracking

	notifyEffectCreated(e.id)

	r.runEffect(e)

	return e
}

// Notify overrides Computed.Notify: effects have no targets of their own
// to recurse into, so being marked simply enqueues a re-run on the
// runtime's effect queue instead of walking downstream.
func (e *Effect) Notify() {
	if e.flags.has(FlagNotified) {
		return
	}
	e.flags |= FlagOutdated | FlagNotified
	e.runtime.scheduleEffect(e)
}

// neverEqual means every successful run is treated as "changed", so the
// returned cleanup is always captured — cleanups are closures, comparing
// them for equality would be meaningless.
func neverEqual(a, b any) bool { return false }

// Dispose tears down the effect: its last cleanup runs, then its owner's
// children/cleanups are disposed, and any edges to its sources are
// removed.
func (e *Effect) Dispose() {
	if e.flags.has(FlagDisposed) {
		return
	}
	if cleanup, ok := e.value.(func()); ok && cleanup != nil {
		e.value = nil
		cleanup()
	}
	e.Computed.Dispose()
}
