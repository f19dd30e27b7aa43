package internal

import "sync/atomic"

var nextID atomic.Uint64

// newID hands out a process-wide, monotonically increasing node id. Ids
// are never reused, so a stale *Edge can always tell a disposed-and-
// recreated node apart from the one it used to point at.
func newID() uint64 {
	return nextID.Add(1)
}
