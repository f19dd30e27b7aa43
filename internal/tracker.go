package internal

// Tracker holds the single "currently evaluating" slot for one runtime.
//
// The teacher's tracker re-derives "am I on the right goroutine" on every
// single read via getGID() plus a mutex, because its nodes look up
// GetRuntime() fresh on every call — so a node can, in principle, be
// touched through a different runtime than the one that created it. This
// version instead has every node remember the *Runtime it was created
// under (see runtime.go) and always operate through that one runtime, so
// the goroutine check only needs to happen once, at node-creation time
// (internal/runtime_default.go), not on every Read/Write. See DESIGN.md.
type Tracker struct {
	current Target
}

// runWithTarget installs t as the current evaluator for the duration of
// fn, restoring the previous evaluator on every exit path including a
// panic — the scoped-acquisition pattern recommended in spec.md §9.
func (tr *Tracker) runWithTarget(t Target, fn func()) {
	prev := tr.current
	tr.current = t
	defer func() { tr.current = prev }()
	fn()
}

// runUntracked clears the current evaluator for the duration of fn, so
// reads inside do not register dependencies, then restores it.
func (tr *Tracker) runUntracked(fn func()) {
	prev := tr.current
	tr.current = nil
	defer func() { tr.current = prev }()
	fn()
}
