// Command example demonstrates a diamond dependency batched through a
// single update: two signals feed one computed each, both computeds feed a
// third, and a batched write to the two roots triggers exactly one
// recompute of the shared descendant.
package main

import (
	"fmt"

	"github.com/graphflux/signals"
)

func main() {
	a := signals.NewSignal(1, signals.WithDebugLabel[int]("a"))
	b := signals.NewSignal(2, signals.WithDebugLabel[int]("b"))

	left := signals.NewComputed(func() int {
		return a.Value() * 10
	}, signals.WithDebugLabel[int]("left"))

	right := signals.NewComputed(func() int {
		return b.Value() * 10
	}, signals.WithDebugLabel[int]("right"))

	sum := signals.NewComputed(func() int {
		result := left.Value() + right.Value()
		fmt.Println("  [computed] sum recomputed:", result)
		return result
	}, signals.WithDebugLabel[int]("sum"))

	dispose := signals.NewEffect(func() func() {
		fmt.Println("[effect] sum is:", sum.Value())
		return nil
	})
	defer dispose()

	fmt.Println("\nupdating both a and b in a batch...")
	signals.Batch(func() {
		a.Write(10)
		b.Write(20)
	})

	fmt.Println("\nsum recomputed exactly once despite two upstream writes")
}
