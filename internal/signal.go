package internal

// Signal is a mutable leaf cell. It is always authoritative: it carries no
// OUTDATED state and never needs refreshing, only targets that read it do.
//
// Grounded on the teacher's internal/signal.go, with the pending-
// value/Commit machinery dropped: that existed to defer a write's
// visibility until a height-ordered heap drained, which this spec's
// pull-based refresh protocol has no use for (signals apply immediately;
// only effect flushing is deferred by a batch). See DESIGN.md.
type Signal struct {
	id    uint64
	label string

	value, prevValue, initialValue any
	version                        uint64

	equal func(a, b any) bool

	disposed bool
	onDispose []func()

	targets edgeList

	runtime *Runtime
}

func (r *Runtime) NewSignal(initial any, equal func(a, b any) bool, label string) *Signal {
	if equal == nil {
		equal = defaultEqual
	}
	s := &Signal{
		id:           newID(),
		label:        label,
		value:        initial,
		prevValue:    initial,
		initialValue: initial,
		equal:        equal,
		runtime:      r,
	}
	notifySignalCreated(s.id, label)
	return s
}

func (s *Signal) ID() uint64 { return s.id }

// Version returns the local write counter: it increases iff a write
// passed the equality check.
func (s *Signal) Version() uint64 { return s.version }

func (s *Signal) Disposed() bool { return s.disposed }

func (s *Signal) Label() string { return s.label }

// Read registers/refreshes a dependency edge from this signal to the
// runtime's current evaluator (if any) and returns the current value.
func (s *Signal) Read() any {
	if s.disposed {
		notifyReadAfterDispose(s.id, s.label)
		return s.value
	}
	addDependency(s.runtime.tracker.current, s)
	return s.value
}

// Peek returns the current value without registering a dependency.
func (s *Signal) Peek() any { return s.value }

func (s *Signal) PreviousValue() any { return s.prevValue }
func (s *Signal) InitialValue() any { return s.initialValue }

// Write applies the equality predicate between the current and new value;
// if equal it is a no-op. Otherwise it shifts current into previous,
// stores the new value, bumps both the local and global version counters,
// and walks the targets list depth-first notifying every dependent.
func (s *Signal) Write(v any) error {
	if s.disposed {
		return &WriteAfterDisposeError{Label: s.label}
	}
	if safeEqual(s.equal, s.value, v) {
		return nil
	}
	s.set(v)
	return nil
}

// ForceSet is the unconditional equivalent of Write: it bypasses the
// equality predicate.
func (s *Signal) ForceSet(v any) error {
	if s.disposed {
		return &WriteAfterDisposeError{Label: s.label}
	}
	s.set(v)
	return nil
}

func (s *Signal) set(v any) {
	s.prevValue = s.value
	s.value = v
	s.version++
	s.runtime.globalVersion.Add(1)

	notifySignalUpdated(s.id, v)

	s.targets.walk(func(e *Edge) {
		e.target.Notify()
	})

	s.runtime.flush()
}

func (s *Signal) subscribeAsSource(e *Edge) { s.targets.linkHead(e) }
func (s *Signal) unsubscribeAsSource(e *Edge) { s.targets.unlink(e) }

// Subscribe installs an effect that reads this signal and calls fn on
// every change, including the initial run. Returns a dispose token.
func (s *Signal) Subscribe(fn func(value any)) func() {
	e := s.runtime.NewEffect(func() func() {
		fn(s.Read())
		return nil
	})
	return e.Dispose
}

// OnDispose registers fn to run exactly once, in insertion order, when
// this signal is disposed.
func (s *Signal) OnDispose(fn func()) func() {
	s.onDispose = append(s.onDispose, fn)
	idx := len(s.onDispose) - 1
	return func() {
		if idx < len(s.onDispose) {
			s.onDispose[idx] = nil
		}
	}
}

// Dispose marks the signal disposed and runs its dispose callbacks in
// insertion order, exactly once.
func (s *Signal) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	callbacks := s.onDispose
	s.onDispose = nil
	for _, fn := range callbacks {
		if fn != nil {
			fn()
		}
	}
}

func defaultEqual(a, b any) bool { return a == b }

// safeEqual guards against a throwing comparator: a panicking equality
// predicate is treated as "unequal" so a bad comparator fails open toward
// more propagation rather than silently swallowing a write.
func safeEqual(eq func(a, b any) bool, a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return eq(a, b)
}
