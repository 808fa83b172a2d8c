package reactant_test

import (
	"testing"

	"github.com/delaneyj/reactant"
	"github.com/stretchr/testify/assert"
)

// reading an index tracks it; writing that index re-runs the effect, writing another index does not
func TestArrayGetSetTracksIndex(t *testing.T) {
	rt := reactant.New()
	a := reactant.Reactive(reactant.NewArray(rt, 1, 2, 3))

	runs := 0
	reactant.Effect(rt, func() {
		a.Get(1)
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)

	a.Set(1, 20)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 20, a.Get(1))

	// writing a different index shouldn't re-run an effect that only read index 1.
	a.Set(0, 100)
	assert.Equal(t, 2, runs)
}

// shrinking the length fires effects depending on dropped indices
func TestArrayLengthShrinkFiresDroppedIndices(t *testing.T) {
	rt := reactant.New()
	a := reactant.Reactive(reactant.NewArray(rt, 1, 2, 3, 4, 5))

	runs := 0
	reactant.Effect(rt, func() {
		a.Get(4)
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)

	a.SetLength(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, a.Len())
}

// Push triggers ADD for each new index and extends length
func TestArrayPush(t *testing.T) {
	rt := reactant.New()
	a := reactant.Reactive(reactant.NewArray(rt))

	lenRuns := 0
	reactant.Effect(rt, func() {
		a.Len()
		lenRuns++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, lenRuns)

	n := a.Push(1, 2, 3)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, a.Len())
}

// an array of refs preserves ref identity on read (no auto-unwrap)
func TestArrayPreservesRefIdentity(t *testing.T) {
	rt := reactant.New()
	r := reactant.NewRef(rt, 1)
	a := reactant.Reactive(reactant.NewArray(rt, r))

	got := a.Get(0)
	assert.True(t, reactant.IsRef(got))
}

// IndexOf and Includes report a scalar needle's position
func TestArrayIndexOf(t *testing.T) {
	rt := reactant.New()
	a := reactant.Reactive(reactant.NewArray(rt, "a", "b", "c"))

	assert.Equal(t, 1, a.IndexOf("b"))
	assert.Equal(t, -1, a.IndexOf("z"))
	assert.True(t, a.Includes("c"))
	assert.False(t, a.Includes("z"))
}

// Splice removes and returns the requested items
func TestArraySplice(t *testing.T) {
	rt := reactant.New()
	a := reactant.Reactive(reactant.NewArray(rt, 1, 2, 3, 4, 5))

	removed := a.Splice(1, 2, 99)
	assert.Equal(t, []any{2, 3}, removed)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 99, a.Get(1))
}
