// Package signals implements a dependency-tracked reactive graph: mutable
// signals, lazily-refreshed computed derivations, and eager effects, wired
// together by dynamic dependency tracking so that a write recomputes the
// smallest possible set of downstream nodes exactly once.
//
//	count := signals.NewSignal(0)
//	doubled := signals.NewComputed(func() int { return count.Value() * 2 })
//	dispose := signals.NewEffect(func() func() {
//		fmt.Println("doubled:", doubled.Value())
//		return nil
//	})
//	defer dispose()
//
//	count.Write(21) // prints "doubled: 42"
//
// Every Signal, Computed and Effect belongs to the goroutine-scoped runtime
// of whichever goroutine created it; see Batch and Untracked for controlling
// when effects flush and when reads register dependencies.
package signals
