package internal

import "sync/atomic"

// maxFlushIterations caps how many times a single flush may re-drain its
// effect queue before giving up, per spec.md §9's open question on an
// effect that mutates one of its own dependencies: rather than livelock,
// a flush that never settles raises ErrEffectDidNotSettle.
const maxFlushIterations = 10_000

// Runtime is one goroutine-scoped reactive graph: the tracker's current-
// evaluator slot, the global version counter used to short-circuit
// diamonds, and the effect queue a write's notify phase feeds into.
//
// Every Signal/Computed/Effect remembers the *Runtime it was created
// under and always operates through it, so graph mutation observed by one
// runtime is never split across two — see tracker.go.
type Runtime struct {
	tracker *Tracker

	globalVersion atomic.Uint64

	batchDepth  int
	effectQueue []*Effect
	flushing    bool

	settled []func()
}

func NewRuntime() *Runtime {
	r := &Runtime{tracker: &Tracker{}}
	// start at 1, not 0, so a freshly constructed Computed's zero-valued
	// globalVersionSnapshot never spuriously matches and short-circuits
	// its very first refresh.
	r.globalVersion.Store(1)
	return r
}

func (r *Runtime) OnCleanup(fn func()) {
	if cur := r.tracker.current; cur != nil {
		cur.Owner().OnCleanup(fn)
	}
}

// scheduleEffect enqueues e for the next flush. It does not flush itself:
// the write whose notify walk reached e flushes once the walk has marked
// every dependent, so no effect runs against a half-marked graph.
func (r *Runtime) scheduleEffect(e *Effect) {
	r.effectQueue = append(r.effectQueue, e)
}

// flush drains the effect queue to a fixed point: running an effect can
// itself write signals that schedule more effects, so the loop keeps
// going until nothing new was enqueued. No-ops while a batch is open or a
// flush is already running further up the call stack (a nested write
// inside an effect just feeds the same drain loop rather than starting a
// second one).
func (r *Runtime) flush() {
	if r.batchDepth > 0 || r.flushing {
		return
	}
	r.flushing = true
	defer func() { r.flushing = false }()

	iterations := 0
	for len(r.effectQueue) > 0 {
		iterations++
		if iterations > maxFlushIterations {
			r.effectQueue = nil
			panic(ErrEffectDidNotSettle)
		}

		queue := r.effectQueue
		r.effectQueue = nil
		for _, e := range queue {
			r.runEffect(e)
		}
	}

	settled := r.settled
	r.settled = nil
	for _, fn := range settled {
		fn()
	}
}

// OnSettled registers fn to run once, the next time a flush fully drains
// (including any effects chained by effects scheduled during it). Unlike a
// subscription, this is one-shot: it fires on the next flush to complete
// after registration, not on every flush thereafter, and not immediately
// even if nothing happens to be pending right now.
func (r *Runtime) OnSettled(fn func()) {
	r.settled = append(r.settled, fn)
}

// Batch defers effect flushing until fn returns. Nested batches coalesce:
// only the outermost call triggers a flush.
func (r *Runtime) Batch(fn func()) {
	r.batchDepth++
	defer func() {
		r.batchDepth--
		if r.batchDepth == 0 {
			r.flush()
		}
	}()
	fn()
}

// Untracked runs fn with the current evaluator cleared, so reads inside
// do not register dependencies.
func (r *Runtime) Untracked(fn func()) {
	r.tracker.runUntracked(fn)
}

func (r *Runtime) runEffect(e *Effect) {
	if e.flags.has(FlagDisposed) {
		return
	}

	// An effect never calls refresh() on itself, so it has to clear the two
	// flags refresh clears for a plain computed itself, or Notify's "already
	// notified" guard would latch permanently after the very first re-run.
	e.flags &^= FlagNotified | FlagOutdated

	// Like refresh, pull the computed sources first and skip the run when
	// no source's version moved (e.g. a computed recomputed to an equal
	// value).
	if e.version > 0 {
		changed := false
		for se := e.sources.head; se != nil; se = se.nextSource {
			if sc, ok := se.source.(*Computed); ok {
				r.refresh(sc)
			}
			if se.sourceVersion != se.source.Version() {
				changed = true
			}
		}
		if !changed {
			return
		}
	}

	// The previous run's returned cleanup fires before the next run, same
	// as on dispose, mirroring the teacher's own pre-compute step.
	if cleanup, ok := e.value.(func()); ok && cleanup != nil {
		e.value = nil
		cleanup()
	}

	recompute(r, e.Computed, e)
}

// refresh implements spec.md §4.3's Computed.refresh algorithm.
func (r *Runtime) refresh(c *Computed) bool {
	c.flags &^= FlagNotified

	if c.flags.has(FlagRunning) {
		return false
	}
	if c.flags&(FlagOutdated|FlagTracking) == FlagTracking {
		return true
	}
	c.flags &^= FlagOutdated

	if c.globalVersionSnapshot == r.globalVersion.Load() {
		return true
	}
	c.globalVersionSnapshot = r.globalVersion.Load()

	c.flags |= FlagRunning
	needsRecompute := c.version == 0 || c.flags.has(FlagHasError)
	for e := c.sources.head; e != nil; e = e.nextSource {
		if sc, ok := e.source.(*Computed); ok {
			r.refresh(sc)
		}
		if e.sourceVersion != e.source.Version() {
			needsRecompute = true
		}
	}

	if !needsRecompute && c.version > 0 {
		c.flags &^= FlagRunning
		return true
	}

	recompute(r, c, c)
	c.flags &^= FlagRunning
	return true
}

// forceRecompute bypasses the change-detection in refresh and invokes
// compute unconditionally, used by Computed.Recompute. The result is
// stored as a new value even if the equality predicate calls it equal.
func (r *Runtime) forceRecompute(c *Computed) {
	equal := c.equal
	c.equal = neverEqual
	defer func() { c.equal = equal }()
	c.flags |= FlagRunning
	recompute(r, c, c)
	c.flags &^= FlagRunning
}

// recompute runs target's owner teardown, prepareSources/cleanupSources,
// and the compute function itself, applying the equality predicate (or
// unconditional acceptance on the first run) and recovering a panic into
// HAS_ERROR. target and c are the same node except when c is an Effect's
// embedded Computed, in which case target is the *Effect so that Notify
// dispatch and the tracker's current-evaluator slot see the right
// concrete type.
func recompute(r *Runtime, c *Computed, target Target) {
	c.owner.teardown()

	prev := r.tracker.current
	prepareSources(target)
	r.tracker.current = target

	func() {
		defer func() {
			r.tracker.current = prev
			cleanupSources(target)
		}()

		// A plain computed's panic is a lazy, pull-model error: contained
		// right here, cached as HAS_ERROR, never re-raised. An effect's
		// panic is the opposite — spec.md §4.4 surfaces it synchronously
		// to whoever's write triggered the flush, so it is only swallowed
		// if some ancestor owner registered OnError; otherwise it
		// continues to unwind exactly like the teacher's Owner.Run does.
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if !c.isEffect {
				c.err = asError(rec)
				c.flags |= FlagHasError
				c.version++
				return
			}
			if c.owner.handlePanic(rec) {
				return
			}
			panic(rec)
		}()

		v := c.compute(c)

		switch {
		case c.version == 0:
			c.value, c.prevValue, c.initialValue = v, v, v
			c.flags &^= FlagHasError
			c.version = 1
			afterCompute(c, v)
		case c.flags.has(FlagHasError) || !safeEqual(c.equal, c.value, v):
			c.prevValue = c.value
			c.value = v
			c.flags &^= FlagHasError
			c.version++
			afterCompute(c, v)
		}
	}()
}

func afterCompute(c *Computed, v any) {
	notifyComputedUpdated(c.id, v)
	if c.isEffect {
		notifyEffectCalled(c.id)
	}
}
