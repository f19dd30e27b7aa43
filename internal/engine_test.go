package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalReadWrite(t *testing.T) {
	r := NewRuntime()
	s := r.NewSignal(1, nil, "count")

	assert.Equal(t, 1, s.Read())
	assert.NoError(t, s.Write(2))
	assert.Equal(t, 2, s.Read())
	assert.Equal(t, uint64(1), s.Version())
}

func TestSignalWriteAfterDispose(t *testing.T) {
	r := NewRuntime()
	s := r.NewSignal(1, nil, "count")
	s.Dispose()

	err := s.Write(2)
	var target *WriteAfterDisposeError
	require.ErrorAs(t, err, &target)
}

func TestComputedGlitchFree(t *testing.T) {
	r := NewRuntime()
	count := r.NewSignal(1, nil, "count")

	runs := 0
	left := r.NewComputed(func(c *Computed) any {
		return count.Read().(int) * 10
	}, nil, "left", false)
	right := r.NewComputed(func(c *Computed) any {
		return count.Read().(int) * 100
	}, nil, "right", false)
	sum := r.NewComputed(func(c *Computed) any {
		runs++
		l, _ := left.Read()
		rr, _ := right.Read()
		return l.(int) + rr.(int)
	}, nil, "sum", false)

	v, err := sum.Read()
	require.NoError(t, err)
	assert.Equal(t, 110, v)

	require.NoError(t, count.Write(2))
	v, err = sum.Read()
	require.NoError(t, err)
	assert.Equal(t, 220, v)
	assert.Equal(t, 2, runs)
}

func TestComputedCycle(t *testing.T) {
	r := NewRuntime()
	var self *Computed
	self = r.NewComputed(func(c *Computed) any {
		v, _ := self.Read()
		return v
	}, nil, "self", false)

	_, err := self.Read()
	var target *CycleError
	require.ErrorAs(t, err, &target)
}

func TestComputedErrorCaching(t *testing.T) {
	r := NewRuntime()
	fail := r.NewSignal(false, nil, "fail")
	boom := r.NewComputed(func(c *Computed) any {
		if fail.Read().(bool) {
			panic(errors.New("boom"))
		}
		return 1
	}, nil, "boom", false)

	v, err := boom.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, fail.Write(true))
	_, err = boom.Read()
	var computeErr *ComputeError
	require.ErrorAs(t, err, &computeErr)
	assert.EqualError(t, computeErr.Unwrap(), "boom")

	// cached: rethrown on every read until the next successful compute
	_, err = boom.Read()
	require.Error(t, err)

	require.NoError(t, fail.Write(false))
	v, err = boom.Read()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestDynamicDependencyTracking(t *testing.T) {
	r := NewRuntime()
	useA := r.NewSignal(true, nil, "useA")
	a := r.NewSignal(1, nil, "a")
	b := r.NewSignal(2, nil, "b")

	runs := 0
	c := r.NewComputed(func(comp *Computed) any {
		runs++
		if toBool(useA.Read()) {
			return a.Read()
		}
		return b.Read()
	}, nil, "c", false)

	v, _ := c.Read()
	assert.Equal(t, 1, v)

	require.NoError(t, useA.Write(false))
	v, _ = c.Read()
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, runs)

	// a is no longer tracked: writing it must not trigger a recompute
	require.NoError(t, a.Write(100))
	v, _ = c.Read()
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, runs)
}

func toBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func TestAutoDisposeOnLastUnsubscribe(t *testing.T) {
	r := NewRuntime()
	count := r.NewSignal(1, nil, "count")
	c := r.NewComputed(func(comp *Computed) any {
		return count.Read()
	}, nil, "c", true)

	e := r.NewEffect(func() func() {
		c.Read()
		return nil
	})
	assert.False(t, c.Disposed())

	e.Dispose()
	assert.True(t, c.Disposed())
}

func TestEffectRerunsOnEachChange(t *testing.T) {
	r := NewRuntime()
	count := r.NewSignal(0, nil, "count")
	runs := 0

	r.NewEffect(func() func() {
		count.Read()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	require.NoError(t, count.Write(1))
	assert.Equal(t, 2, runs)

	require.NoError(t, count.Write(2))
	assert.Equal(t, 3, runs)
}
