package reactant_test

import (
	"math"
	"testing"

	"github.com/delaneyj/reactant"
	"github.com/stretchr/testify/assert"
)

// reading Value tracks the ref; writing a changed value triggers dependents
func TestRefValueTracksAndTriggers(t *testing.T) {
	rt := reactant.New()
	r := reactant.NewRef(rt, 1)

	runs := 0
	var seen int
	reactant.Effect(rt, func() {
		seen = r.Value()
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, seen)

	r.SetValue(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, seen)
}

// setting the same value does not trigger
func TestRefSetSameValueNoop(t *testing.T) {
	rt := reactant.New()
	r := reactant.NewRef(rt, 5)

	runs := 0
	reactant.Effect(rt, func() {
		r.Value()
		runs++
	}, reactant.EffectOptions{})

	r.SetValue(5)
	assert.Equal(t, 1, runs)
}

// two NaN values are considered equal for change-detection purposes
func TestRefNaNDoesNotTrigger(t *testing.T) {
	rt := reactant.New()
	r := reactant.NewRef(rt, math.NaN())

	runs := 0
	reactant.Effect(rt, func() {
		r.Value()
		runs++
	}, reactant.EffectOptions{})

	r.SetValue(math.NaN())
	assert.Equal(t, 1, runs)
}

// Unref returns the plain value for a ref and passes through anything else
func TestUnref(t *testing.T) {
	rt := reactant.New()
	r := reactant.NewRef(rt, 42)
	assert.Equal(t, 42, reactant.Unref(r))
	assert.Equal(t, 7, reactant.Unref(7))
}

// a deep ref created with a plain object holds and returns its reactive proxy
func TestRefDeepWrapsObject(t *testing.T) {
	rt := reactant.New()
	o := reactant.NewObjectFrom(rt, map[string]any{"x": 1})
	r := reactant.NewRef[any](rt, o)

	wrapped := r.Value().(*reactant.Object)
	assert.True(t, reactant.IsReactive(wrapped))
}
