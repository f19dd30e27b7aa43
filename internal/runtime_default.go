//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// runtimes holds one *Runtime per goroutine, keyed by goid.Get(). A node
// remembers the *Runtime it was created under (see runtime.go), so this
// registry is only ever consulted to find or lazily create the graph for
// the calling goroutine — never re-derived per read/write the way the
// teacher's GetRuntime() is.
var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

func getGID() int64 {
	return goid.Get()
}
