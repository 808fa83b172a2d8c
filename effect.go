package reactant

import "github.com/delaneyj/reactant/internal/engine"

// EffectOptions configures Effect. It mirrors engine.Options with the public
// Scope type substituted for engine's internal seam.
type EffectOptions struct {
	Lazy         bool
	Scheduler    func()
	Scope        *EffectScope
	AllowRecurse bool
	OnStop       func()
	OnTrack      func(engine.TrackEvent)
	OnTrigger    func(engine.TriggerEvent)
}

// Runner holds a created effect. Go has no callable-struct equivalent of the
// source's runner-with-an-effect-property-attached, so Run is a method
// instead of the runner itself being invocable.
type Runner struct {
	Effect *engine.ReactiveEffect
}

// Run re-executes the wrapped effect's function directly, bypassing the
// scheduler - the same "calling the runner re-runs the raw fn" escape hatch
// reactive effects expose.
func (r *Runner) Run() { r.Effect.Run() }

// Stop stops the wrapped effect.
func (r *Runner) Stop() { r.Effect.Stop() }

// Effect creates and, unless Lazy, immediately runs a reactive effect: fn is
// re-invoked whenever any dependency it read during its last run changes.
func Effect(rt *Runtime, fn func(), opts EffectOptions) *Runner {
	var scope engine.Scope
	if opts.Scope != nil {
		scope = engine.WrapScope(opts.Scope)
	}
	e := engine.NewEffect(rt, fn, engine.Options{
		Lazy:         opts.Lazy,
		Scheduler:    opts.Scheduler,
		Scope:        scope,
		AllowRecurse: opts.AllowRecurse,
		OnStop:       opts.OnStop,
		OnTrack:      opts.OnTrack,
		OnTrigger:    opts.OnTrigger,
	})
	r := &Runner{Effect: e}
	if !opts.Lazy {
		r.Run()
	}
	return r
}

// Stop stops the effect owned by r.
func Stop(r *Runner) {
	if r != nil {
		r.Stop()
	}
}
