package signals

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleNewEffect() {
	count := NewSignal(0)
	dispose := NewEffect(func() func() {
		fmt.Println("count is", count.Value())
		return nil
	})
	defer dispose()

	count.Write(1)

	// Output:
	// count is 0
	// count is 1
}

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		var log []string

		count := NewSignal(0)
		log = append(log, fmt.Sprintf("%d", count.Value()))

		NewEffect(func() func() {
			log = append(log, fmt.Sprintf("changed %d", count.Value()))
			return func() { log = append(log, "cleanup") }
		})

		count.Write(10)
		log = append(log, fmt.Sprintf("%d", count.Value()))
		count.Write(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		var log []string

		count := NewSignal(0)
		double := NewSignal(0)

		NewEffect(func() func() {
			double.Write(count.Value() * 2)
			return nil
		})

		NewEffect(func() func() {
			log = append(log, fmt.Sprintf("changed %d", double.Value()))
			return func() { log = append(log, "cleanup") }
		})

		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects dispose innermost first", func(t *testing.T) {
		var log []string

		count := NewSignal(0)

		NewEffect(func() func() {
			count.Value()
			log = append(log, "running")

			NewEffect(func() func() {
				log = append(log, "running nested")
				return func() { log = append(log, "cleanup nested") }
			})

			return func() { log = append(log, "cleanup") }
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("diamond dependency settles before effect runs", func(t *testing.T) {
		var log []string

		count := NewSignal(0)
		double := NewComputed(func() int { return count.Value() * 2 })
		quad := NewComputed(func() int { return count.Value() * 4 })

		NewEffect(func() func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Value(), quad.Value()))
			return func() { log = append(log, fmt.Sprintf("cleanup %d %d", double.Value(), quad.Value())) }
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"cleanup 20 40",
			"running 20 40",
		}, log)
	})

	t.Run("dependencies change between runs", func(t *testing.T) {
		var log []string

		count := NewSignal(0)

		initialized := false
		NewEffect(func() func() {
			log = append(log, "running")
			if !initialized {
				count.Value()
			}
			initialized = true
			return nil
		})

		count.Write(1)
		count.Write(2) // no longer a dependency: must not re-trigger

		assert.Equal(t, []string{"running", "running"}, log)
	})

	t.Run("OnCleanup inside effect body", func(t *testing.T) {
		var log []string
		count := NewSignal(0)

		NewEffect(func() func() {
			c := count.Value()
			OnCleanup(func() { log = append(log, fmt.Sprintf("cleanup %d", c)) })
			log = append(log, fmt.Sprintf("run %d", c))
			return nil
		})

		count.Write(1)

		assert.Equal(t, []string{"run 0", "cleanup 0", "run 1"}, log)
	})

	t.Run("panic propagates to the triggering write", func(t *testing.T) {
		count := NewSignal(0)
		NewEffect(func() func() {
			if count.Value() > 0 {
				panic("boom")
			}
			return nil
		})

		assert.PanicsWithValue(t, "boom", func() {
			count.Write(1)
		})
	})

	t.Run("effect stays alive after an uncaught panic", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0
		NewEffect(func() func() {
			runs++
			if count.Value() == 1 {
				panic("boom")
			}
			return nil
		})

		assert.Panics(t, func() { count.Write(1) })
		count.Write(2)

		assert.Equal(t, 3, runs)
	})

	t.Run("dispose stops future runs", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		dispose := NewEffect(func() func() {
			count.Value()
			runs++
			return nil
		})

		count.Write(1)
		dispose()
		count.Write(2)

		assert.Equal(t, 2, runs)
	})
}
