package reactant_test

import (
	"testing"

	"github.com/delaneyj/reactant"
	"github.com/stretchr/testify/assert"
)

// Get tracks a key-specific dependency; Set on a different key doesn't trigger it
func TestMapGetSetTracksKey(t *testing.T) {
	rt := reactant.New()
	m := reactant.Reactive(reactant.NewMap[string, int](rt))
	m.Set("a", 1)

	runs := 0
	reactant.Effect(rt, func() {
		v, _ := m.Get("a")
		_ = v
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)

	m.Set("b", 2)
	assert.Equal(t, 1, runs)

	m.Set("a", 10)
	assert.Equal(t, 2, runs)
}

// Size tracks the iterate dependency, firing on adding a key, Delete and Clear
func TestMapIterateTracksShape(t *testing.T) {
	rt := reactant.New()
	m := reactant.Reactive(reactant.NewMap[string, int](rt))

	runs := 0
	reactant.Effect(rt, func() {
		m.Size()
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)

	m.Set("x", 1)
	assert.Equal(t, 2, runs)

	m.Delete("x")
	assert.Equal(t, 3, runs)

	m.Set("y", 1)
	m.Clear()
	assert.Equal(t, 5, runs)
}

// Clear on an already-empty map is a no-op
func TestMapClearEmptyNoop(t *testing.T) {
	rt := reactant.New()
	m := reactant.Reactive(reactant.NewMap[string, int](rt))

	runs := 0
	reactant.Effect(rt, func() {
		m.Size()
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)

	m.Clear()
	assert.Equal(t, 1, runs)
}

// writes to a readonly map view are ignored
func TestReadonlyMapSetIsNoop(t *testing.T) {
	rt := reactant.New()
	m := reactant.NewMap[string, int](rt)
	m.Set("a", 1)
	ro := reactant.Readonly(m)

	ro.Set("a", 99)
	v, _ := m.Get("a")
	assert.Equal(t, 1, v)
}
