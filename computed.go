package reactant

import "github.com/delaneyj/reactant/internal/engine"

// Computed is a lazily-evaluated derived value (spec ยง4.8): its getter runs
// inside a ReactiveEffect whose scheduler only marks it dirty instead of
// re-running immediately, and Value() re-evaluates on demand the first time
// it's read after a dependency changed.
type Computed[T any] struct {
	rt     *Runtime
	getter func() T
	effect *engine.ReactiveEffect
	dep    *engine.Dep
	dirty  bool
	cached T
}

// NewComputed creates a computed ref wrapping getter. The getter is not run
// until the first call to Value.
func NewComputed[T any](rt *Runtime, getter func() T) *Computed[T] {
	c := &Computed[T]{rt: rt, getter: getter, dep: engine.NewDep(), dirty: true}
	c.effect = engine.NewEffect(rt, func() {
		c.cached = getter()
	}, engine.Options{
		Lazy: true,
		Scheduler: func() {
			if !c.dirty {
				c.dirty = true
				rt.TriggerDepDirect(c.dep)
			}
		},
	})
	return c
}

// Value returns the cached result, recomputing first if a dependency has
// changed since the last read, and tracks this computed's own Dep so
// effects reading it re-run when it becomes dirty again.
func (c *Computed[T]) Value() T {
	if c.dirty {
		c.effect.Run()
		c.dirty = false
	}
	c.rt.TrackDepDirect(c.dep)
	return c.cached
}

// Stop detaches the computed from its dependencies; it will return its last
// cached value forever afterward.
func (c *Computed[T]) Stop() { c.effect.Stop() }

func (c *Computed[T]) readAny() any      { return c.Value() }
func (c *Computed[T]) writeAny(any) bool { return false }
func (c *Computed[T]) isShallowRef() bool { return false }
