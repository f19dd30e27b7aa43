package internal

// Computed is a lazy, memoized derivation. It is simultaneously a Source
// (other computeds/effects can depend on it) and a Target (it depends on
// whatever it reads).
//
// Grounded on the teacher's internal/computed.go (Owner+Signal embedding,
// OnDispose-driven teardown) but restructured around the spec's flag word
// (OUTDATED/TRACKING/RUNNING/NOTIFIED/HAS_ERROR/DISPOSED) and pull-based
// refresh instead of the teacher's always-eager, height-ordered heap
// recompute. Effect (effect.go) builds directly on this type, the way the
// teacher's Effect wraps a Computed.
type Computed struct {
	id    uint64
	label string

	flags Flags

	equal       func(a, b any) bool
	autoDispose bool

	// isEffect marks a Computed created by NewEffect: its returned value is
	// a cleanup func() rather than a user-visible value, and it is always
	// considered TRACKING since the flush loop is its permanent subscriber.
	isEffect bool

	compute func(c *Computed) any

	value, prevValue, initialValue any
	err                             error
	version                         uint64
	globalVersionSnapshot           uint64

	sources trackingList // this computed's own dependencies
	targets edgeList     // who depends on this computed

	owner *Owner

	onDispose []func()

	runtime *Runtime
}

func (r *Runtime) NewComputed(compute func(c *Computed) any, equal func(a, b any) bool, label string, autoDispose bool) *Computed {
	if equal == nil {
		equal = defaultEqual
	}
	c := &Computed{
		id:          newID(),
		label:       label,
		flags:       FlagOutdated,
		equal:       equal,
		autoDispose: autoDispose,
		compute:     compute,
		sources:     newTrackingList(),
		owner:       NewOwner(),
		runtime:     r,
	}
	if parent := r.tracker.current; parent != nil {
		parent.Owner().addChild(c.owner)
	}
	notifyComputedCreated(c.id, label)
	return c
}

func (c *Computed) ID() uint64      { return c.id }
func (c *Computed) Version() uint64 { return c.version }
func (c *Computed) Disposed() bool  { return c.flags.has(FlagDisposed) }
func (c *Computed) Label() string   { return c.label }
func (c *Computed) Owner() *Owner   { return c.owner }

func (c *Computed) hasFlag(f Flags) bool     { return c.flags.has(f) }
func (c *Computed) trackingList() *trackingList { return &c.sources }

// Read triggers a refresh and returns the current value, or the cached
// error if the last compute failed.
func (c *Computed) Read() (any, error) {
	if c.flags.has(FlagDisposed) {
		notifyReadAfterDispose(c.id, c.label)
		return c.value, nil
	}
	if c.flags.has(FlagRunning) {
		return nil, &CycleError{Label: c.label}
	}

	current := c.runtime.tracker.current
	addDependency(current, c)
	c.runtime.refresh(c)
	// the refresh may have bumped the version: record the one the reader saw
	if current != nil {
		if e, ok := current.trackingList().index[c.id]; ok {
			e.sourceVersion = c.version
		}
	}

	if c.flags.has(FlagHasError) {
		return nil, &ComputeError{Label: c.label, Err: c.err}
	}
	return c.value, nil
}

// Peek refreshes and returns the value without registering a dependency
// on the outer evaluator.
func (c *Computed) Peek() (any, error) {
	if c.flags.has(FlagDisposed) {
		return c.value, nil
	}
	if c.flags.has(FlagRunning) {
		return nil, &CycleError{Label: c.label}
	}
	c.runtime.refresh(c)
	if c.flags.has(FlagHasError) {
		return nil, &ComputeError{Label: c.label, Err: c.err}
	}
	return c.value, nil
}

func (c *Computed) PreviousValue() any { return c.prevValue }
func (c *Computed) InitialValue() any  { return c.initialValue }

// Notify is the eager, mark-only half of propagation: it sets
// OUTDATED|NOTIFIED and recurses into targets, performing no compute.
func (c *Computed) Notify() {
	if c.flags.has(FlagNotified) {
		return
	}
	c.flags |= FlagOutdated | FlagNotified
	c.targets.walk(func(e *Edge) {
		e.target.Notify()
	})
}

// subscribeAsSource is called when e becomes the first or a subsequent
// edge pointing at this computed from some other target. The first such
// edge promotes this computed from polling to push-tracked: it marks
// itself OUTDATED|TRACKING and recursively subscribes to all of its own
// current sources.
func (c *Computed) subscribeAsSource(e *Edge) {
	if c.targets.head == nil {
		c.flags |= FlagOutdated | FlagTracking
		for se := c.sources.head; se != nil; se = se.nextSource {
			se.source.subscribeAsSource(se)
			se.inTargets = true
		}
	}
	c.targets.linkHead(e)
}

// unsubscribeAsSource is the inverse: losing the last target-edge demotes
// this computed back to polling and recursively unsubscribes from its own
// sources. If autoDispose is set and it now has no targets, it disposes.
func (c *Computed) unsubscribeAsSource(e *Edge) {
	c.targets.unlink(e)
	if c.targets.head == nil {
		c.flags &^= FlagTracking
		for se := c.sources.head; se != nil; se = se.nextSource {
			se.source.unsubscribeAsSource(se)
			se.inTargets = false
		}
		if c.autoDispose {
			c.Dispose()
		}
	}
}

// Recompute forces re-evaluation: it first reads the current value (to
// settle any pending refresh and re-register dependencies), then invokes
// compute once more, bypassing the equality predicate.
func (c *Computed) Recompute() (any, error) {
	if _, err := c.Read(); err != nil {
		if _, isCompute := err.(*ComputeError); !isCompute {
			return nil, err
		}
	}
	c.runtime.forceRecompute(c)
	if c.flags.has(FlagHasError) {
		return nil, &ComputeError{Label: c.label, Err: c.err}
	}
	return c.value, nil
}

// OverrideWith is a testing hook: it refreshes the node, then overwrites
// current and previous with v (falling back to the initial value when v
// is nil), preserving the node's id and edges.
func (c *Computed) OverrideWith(v any) {
	c.runtime.refresh(c)
	if v == nil {
		v = c.initialValue
	}
	c.prevValue = v
	c.value = v
}

func (c *Computed) OnDispose(fn func()) func() {
	c.onDispose = append(c.onDispose, fn)
	idx := len(c.onDispose) - 1
	return func() {
		if idx < len(c.onDispose) {
			c.onDispose[idx] = nil
		}
	}
}

// Dispose tears down this computed: it runs its owner's children/cleanups,
// unlinks from every source it was tracking, and fires its own dispose
// callbacks exactly once.
func (c *Computed) Dispose() {
	if c.flags.has(FlagDisposed) {
		return
	}
	c.flags |= FlagDisposed
	c.owner.Dispose()
	cleanupAllSources(c)
	callbacks := c.onDispose
	c.onDispose = nil
	for _, fn := range callbacks {
		if fn != nil {
			fn()
		}
	}
}

// cleanupAllSources unconditionally removes every edge a target currently
// holds, used on final disposal (as opposed to cleanupSources, which only
// sweeps edges not touched during the run that just finished).
func cleanupAllSources(t Target) {
	tl := t.trackingList()
	for e := tl.head; e != nil; e = e.nextSource {
		e.candidate = true
	}
	cleanupSources(t)
}
