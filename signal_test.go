package signals

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleSignal() {
	count := NewSignal(0)
	fmt.Println(count.Value())

	count.Write(10)
	fmt.Println(count.Value())

	// Output:
	// 0
	// 10
}

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSignal(0)
		assert.Equal(t, 0, count.Value())

		assert.NoError(t, count.Write(10))
		assert.Equal(t, 10, count.Value())
	})

	t.Run("equal writes are no-ops", func(t *testing.T) {
		count := NewSignal(1)
		assert.Equal(t, uint64(0), count.Version())

		assert.NoError(t, count.Write(1))
		assert.Equal(t, uint64(0), count.Version())

		assert.NoError(t, count.Write(2))
		assert.Equal(t, uint64(1), count.Version())
	})

	t.Run("peek does not track", func(t *testing.T) {
		count := NewSignal(0)
		ran := 0

		double := NewComputed(func() int {
			ran++
			return count.Peek() * 2
		})
		assert.Equal(t, 0, double.Value())

		count.Write(10)
		assert.Equal(t, 0, double.Value()) // stale: peek never registered a dependency
		assert.Equal(t, 1, ran)
	})

	t.Run("previous and initial value", func(t *testing.T) {
		count := NewSignal(1)
		assert.Equal(t, 1, count.InitialValue())
		assert.Equal(t, 1, count.PreviousValue())

		count.Write(2)
		assert.Equal(t, 1, count.PreviousValue())
		assert.Equal(t, 1, count.InitialValue())

		count.Write(3)
		assert.Equal(t, 2, count.PreviousValue())
	})

	t.Run("set with force bypasses equality", func(t *testing.T) {
		count := NewSignal(5)
		calls := 0
		count.Subscribe(func(int) { calls++ })

		assert.NoError(t, count.Set(5, true))
		assert.Equal(t, uint64(1), count.Version())
		assert.Equal(t, 2, calls) // initial + forced
	})

	t.Run("write after dispose", func(t *testing.T) {
		count := NewSignal(1)
		count.Dispose()

		err := count.Write(2)
		assert.Error(t, err)
		var target *WriteAfterDisposeError
		assert.ErrorAs(t, err, &target)
	})

	t.Run("read after dispose returns frozen value", func(t *testing.T) {
		count := NewSignal(1)
		count.Write(2)
		count.Dispose()

		assert.Equal(t, 2, count.Value())
	})

	t.Run("dispose callbacks run once in order", func(t *testing.T) {
		var log []string
		count := NewSignal(0)
		count.OnDispose(func() { log = append(log, "first") })
		count.OnDispose(func() { log = append(log, "second") })

		count.Dispose()
		count.Dispose()

		assert.Equal(t, []string{"first", "second"}, log)
	})

	t.Run("concurrent read/write on its own goroutine", func(t *testing.T) {
		var wg sync.WaitGroup
		count := NewSignal(0)

		wg.Add(1)
		go func() {
			defer wg.Done()
			local := NewSignal(0)
			local.Write(local.Value() + 1)
			assert.Equal(t, 1, local.Value())
		}()
		wg.Wait()

		assert.Equal(t, 0, count.Value())
	})
}
