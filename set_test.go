package reactant_test

import (
	"testing"

	"github.com/delaneyj/reactant"
	"github.com/stretchr/testify/assert"
)

// Has tracks membership; Add only triggers when the value is actually new
func TestSetHasAddTriggersOnlyOnNewMember(t *testing.T) {
	rt := reactant.New()
	s := reactant.Reactive(reactant.NewSet[int](rt))
	s.Add(1)

	runs := 0
	reactant.Effect(rt, func() {
		s.Has(1)
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)

	s.Add(1)
	assert.Equal(t, 1, runs)

	s.Add(2)
	assert.Equal(t, 1, runs)
}

// Delete reports whether the value was present and removes it
func TestSetDelete(t *testing.T) {
	rt := reactant.New()
	s := reactant.Reactive(reactant.NewSet[string](rt))
	s.Add("x")

	assert.True(t, s.Delete("x"))
	assert.False(t, s.Delete("x"))
	assert.False(t, s.Has("x"))
}

// ForEach visits every member; Size tracks the set's shape and fires on Clear
func TestSetForEach(t *testing.T) {
	rt := reactant.New()
	s := reactant.Reactive(reactant.NewSet[int](rt))
	s.Add(1)
	s.Add(2)
	s.Add(3)

	seen := map[int]bool{}
	s.ForEach(func(v int) { seen[v] = true })
	assert.Len(t, seen, 3)

	runs := 0
	reactant.Effect(rt, func() {
		s.Size()
		runs++
	}, reactant.EffectOptions{})
	assert.Equal(t, 1, runs)

	s.Clear()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 0, s.Size())
}
