package internal

// Edge is one (source, target) dependency link — the "Node" of the data
// model. It sits on two lists at once: the source's targets list (who
// depends on this source) and the target's sources list (what this target
// currently reads). Both lists are plain doubly-linked lists with
// head/tail pointers; an Edge's membership in the source-side list is
// tracked separately (inTargets) since a target that isn't subscribed yet
// keeps edges only on its own sources list.
type Edge struct {
	source Source
	target Target

	// sourceVersion is the source's Version() recorded at the last
	// observation. A refresh compares this against the live value to
	// decide whether the target actually needs to recompute.
	sourceVersion uint64

	// candidate marks an edge as "unless touched again this run, remove
	// it" during prepareSources/cleanupSources.
	candidate bool

	// inTargets is true while this edge is linked into source's targets
	// list (i.e. the target is currently tracking and push-notified).
	inTargets bool

	prevTarget, nextTarget *Edge // position within source's targets list
	prevSource, nextSource *Edge // position within target's sources list
}

// Source is anything that can be read and depended on.
type Source interface {
	ID() uint64
	Version() uint64

	subscribeAsSource(e *Edge)
	unsubscribeAsSource(e *Edge)
}

// Target is anything that depends on sources and can be marked dirty.
type Target interface {
	ID() uint64
	Notify()

	trackingList() *trackingList
	hasFlag(Flags) bool
	Owner() *Owner
}

// edgeList is a source's targets list: who depends on this source.
type edgeList struct {
	head, tail *Edge
}

func (l *edgeList) linkHead(e *Edge) {
	e.prevTarget = nil
	e.nextTarget = l.head
	if l.head != nil {
		l.head.prevTarget = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
}

func (l *edgeList) unlink(e *Edge) {
	if e.prevTarget != nil {
		e.prevTarget.nextTarget = e.nextTarget
	} else {
		l.head = e.nextTarget
	}
	if e.nextTarget != nil {
		e.nextTarget.prevTarget = e.prevTarget
	} else {
		l.tail = e.prevTarget
	}
	e.prevTarget, e.nextTarget = nil, nil
}

// walk visits every edge currently on the list, tolerating edges being
// unlinked mid-walk (it captures next before calling fn).
func (l *edgeList) walk(fn func(*Edge)) {
	for e := l.head; e != nil; {
		next := e.nextTarget
		fn(e)
		e = next
	}
}

// trackingList is a target's sources list: what this target currently
// reads, indexed by source id for the O(1) addDependency lookup described
// in the dynamic-dependency-tracking protocol.
type trackingList struct {
	head, tail *Edge
	index      map[uint64]*Edge
}

func newTrackingList() trackingList {
	return trackingList{index: make(map[uint64]*Edge)}
}

func (l *trackingList) linkHead(e *Edge) {
	e.prevSource = nil
	e.nextSource = l.head
	if l.head != nil {
		l.head.prevSource = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	l.index[e.source.ID()] = e
}

func (l *trackingList) unlink(e *Edge) {
	if e.prevSource != nil {
		e.prevSource.nextSource = e.nextSource
	} else {
		l.head = e.nextSource
	}
	if e.nextSource != nil {
		e.nextSource.prevSource = e.prevSource
	} else {
		l.tail = e.prevSource
	}
	e.prevSource, e.nextSource = nil, nil
	delete(l.index, e.source.ID())
}

// prepareSources marks every currently-tracked source as a removal
// candidate. addDependency clears the marker on sources actually read
// again this run; cleanupSources then sweeps whatever is still marked.
func prepareSources(t Target) {
	tl := t.trackingList()
	for e := tl.head; e != nil; e = e.nextSource {
		e.candidate = true
	}
}

// cleanupSources removes every edge not touched during the run that just
// finished, unlinking it from both lists it participates in.
func cleanupSources(t Target) {
	tl := t.trackingList()
	e := tl.head
	for e != nil {
		next := e.nextSource
		if e.candidate {
			tl.unlink(e)
			if e.inTargets {
				e.source.unsubscribeAsSource(e)
				e.inTargets = false
			}
		}
		e = next
	}
}

// addDependency registers/refreshes an edge from s to the currently
// evaluating target, if any. Called on every read of a Signal or Computed.
func addDependency(current Target, s Source) {
	if current == nil {
		return
	}

	tl := current.trackingList()
	if e, ok := tl.index[s.ID()]; ok {
		e.candidate = false
		e.sourceVersion = s.Version()
		return
	}

	e := &Edge{source: s, target: current, sourceVersion: s.Version()}
	tl.linkHead(e)

	if current.hasFlag(FlagTracking) {
		s.subscribeAsSource(e)
		e.inTargets = true
	}
}
