package reactant

import "github.com/delaneyj/reactant/internal/engine"

// EffectScope groups effects created with it as their EffectOptions.Scope so
// they can all be stopped together (spec ยง4.6), grounded on the same batch-of-cleanups idea
// as signalparty's per-request scopes.
type EffectScope struct {
	effects []*engine.ReactiveEffect
	stopped bool
}

// NewEffectScope creates an empty scope.
func NewEffectScope() *EffectScope {
	return &EffectScope{}
}

// Add registers e with the scope. Implements engine.ScopeAdder.
func (s *EffectScope) Add(e *engine.ReactiveEffect) {
	if s.stopped {
		e.Stop()
		return
	}
	s.effects = append(s.effects, e)
}

// Run executes fn immediately; effects created by fn that pass this scope
// via EffectOptions.Scope are collected as a side effect of their own
// construction, not by anything Run itself does.
func (s *EffectScope) Run(fn func()) {
	fn()
}

// Stop stops every effect collected by this scope. Idempotent.
func (s *EffectScope) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	for _, e := range s.effects {
		e.Stop()
	}
	s.effects = nil
}
