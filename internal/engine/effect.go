package engine

// TrackEvent is the dev-hook payload delivered to OnTrack.
type TrackEvent struct {
	Effect *ReactiveEffect
	Target any
	Type   TrackOp
	Key    any
}

// TriggerEvent is the dev-hook payload delivered to OnTrigger.
type TriggerEvent struct {
	Effect   *ReactiveEffect
	Target   any
	Type     TriggerOp
	Key      any
	NewValue any
	OldValue any
}

// Options configures a ReactiveEffect at creation time.
type Options struct {
	Lazy         bool
	Scheduler    func()
	Scope        Scope
	AllowRecurse bool
	OnStop       func()
	OnTrack      func(TrackEvent)
	OnTrigger    func(TriggerEvent)
}

// ReactiveEffect is a user computation wrapped with run/stop, owning its
// current dependency list. Re-entry into an effect already running is
// short-circuited unless AllowRecurse is set.
type ReactiveEffect struct {
	rt  *Runtime
	fn  func()
	deps []*Dep

	scheduler    func()
	allowRecurse bool
	onStop       func()
	onTrack      func(TrackEvent)
	onTrigger    func(TriggerEvent)
	scope        Scope

	active  bool
	running bool
}

// NewEffect constructs a ReactiveEffect without running it; call Run to
// execute it for the first time (the caller decides whether that happens
// immediately or lazily, per Options.Lazy).
func NewEffect(rt *Runtime, fn func(), opts Options) *ReactiveEffect {
	e := &ReactiveEffect{
		rt:           rt,
		fn:           fn,
		scheduler:    opts.Scheduler,
		allowRecurse: opts.AllowRecurse,
		onStop:       opts.OnStop,
		onTrack:      opts.OnTrack,
		onTrigger:    opts.OnTrigger,
		scope:        opts.Scope,
		active:       true,
	}
	if e.scope != nil {
		e.scope.add(e)
	}
	return e
}

// Active reports whether the effect has not been stopped.
func (e *ReactiveEffect) Active() bool { return e.active }

// Run executes the effect's function, tracking every (target, key) it
// reads and diffing the resulting dependency set against the previous run
// (spec ยง4.5). A panic from fn propagates to the caller only after the
// bookkeeping in this method's deferred cleanup has run, matching the
// "finally-block cleanup must execute" requirement.
func (e *ReactiveEffect) Run() {
	if !e.active {
		e.fn()
		return
	}
	if e.running && !e.allowRecurse {
		return
	}

	rt := e.rt
	prevEffect := rt.activeEffect
	wasRunning := e.running

	rt.activeEffect = e
	e.running = true

	rt.trackDepth++
	depth := rt.trackDepth
	var bit uint32
	fellBack := depth > maxTrackDepth
	if !fellBack {
		bit = uint32(1) << uint(depth)
		for _, d := range e.deps {
			d.w |= bit
		}
	} else {
		detach(e)
	}

	defer func() {
		if !fellBack {
			compact(e, bit)
		}
		rt.trackDepth--
		rt.activeEffect = prevEffect
		e.running = wasRunning
	}()

	e.fn()
}

// compact drops deps that were tracked last run (w bit set) but not this
// run (n bit unset), and clears both bits on the survivors - the dep-diff
// law from spec ยง4.5 step 7.
func compact(e *ReactiveEffect, bit uint32) {
	kept := e.deps[:0]
	for _, d := range e.deps {
		if d.w&bit != 0 && d.n&bit == 0 {
			d.remove(e)
			continue
		}
		d.w &^= bit
		d.n &^= bit
		kept = append(kept, d)
	}
	e.deps = kept
}

// detach fully unsubscribes e from every dep it holds, used both by Stop
// and by the >30-deep fallback path.
func detach(e *ReactiveEffect) {
	for _, d := range e.deps {
		d.remove(e)
	}
	e.deps = e.deps[:0]
}

// Stop is idempotent: it detaches the effect from every Dep it subscribes
// to, marks it inactive, and invokes OnStop. Subsequent triggers become
// no-ops for this effect.
func (e *ReactiveEffect) Stop() {
	if !e.active {
		return
	}
	detach(e)
	e.active = false
	if e.onStop != nil {
		e.onStop()
	}
}

// --- track / trigger --------------------------------------------------

// Track records that the currently active effect (if any, and if tracking
// is enabled) read (target, key).
func (rt *Runtime) Track(target any, op TrackOp, key any) {
	if !rt.shouldTrack() || rt.activeEffect == nil {
		return
	}
	e := rt.activeEffect
	d := rt.registry.depFor(target, key)
	trackEffect(rt, e, d)
	if e.onTrack != nil {
		e.onTrack(TrackEvent{Effect: e, Target: target, Type: op, Key: key})
	}
}

// TrackDepDirect tracks against a Dep that doesn't live in the registry
// (Ref and Computed own their Dep directly rather than through a target/key
// pair).
func (rt *Runtime) TrackDepDirect(d *Dep) {
	if !rt.shouldTrack() || rt.activeEffect == nil {
		return
	}
	trackEffect(rt, rt.activeEffect, d)
}

func trackEffect(rt *Runtime, e *ReactiveEffect, d *Dep) {
	var shouldTrack bool
	depth := rt.trackDepth
	if depth > 0 && depth <= maxTrackDepth {
		bit := uint32(1) << uint(depth)
		if d.n&bit == 0 {
			d.n |= bit
		}
		shouldTrack = d.w&bit == 0
	} else {
		shouldTrack = !d.has(e)
	}
	if shouldTrack {
		d.add(e)
		e.deps = append(e.deps, d)
	}
}

// TriggerDepDirect notifies every subscriber of a standalone Dep (Ref,
// Computed), respecting the re-entry and batching rules.
func (rt *Runtime) TriggerDepDirect(d *Dep) {
	rt.runEffects(d.Subscribers())
}

// Trigger resolves which Deps fire for a mutation of target and notifies
// their subscribers, per spec ยง4.4.
func (rt *Runtime) Trigger(target any, kind TargetKind, op TriggerOp, key, newValue, oldValue any, newLength int) {
	depsMap := rt.registry.depsFor(target)
	if depsMap == nil {
		return
	}

	var toRun []*Dep
	add := func(k any) {
		if d, ok := depsMap[k]; ok {
			toRun = append(toRun, d)
		}
	}

	switch {
	case op == TriggerClear:
		for _, d := range depsMap {
			toRun = append(toRun, d)
		}

	case kind == KindSequence:
		if ks, ok := key.(string); ok && ks == LengthKey {
			for k, d := range depsMap {
				if k == LengthKey {
					toRun = append(toRun, d)
					continue
				}
				if idx, ok := k.(int); ok && idx >= newLength {
					toRun = append(toRun, d)
				}
			}
		} else {
			if key != nil {
				add(key)
			}
			if op == TriggerAdd {
				if _, isInt := key.(int); isInt {
					add(LengthKey)
				}
			}
		}

	default:
		if key != nil {
			add(key)
		}
		switch op {
		case TriggerAdd:
			add(IterateKey)
			if kind == KindMap {
				add(MapKeyIterateKey)
			}
		case TriggerDelete:
			add(IterateKey)
			if kind == KindMap {
				add(MapKeyIterateKey)
			}
		case TriggerSet:
			if kind == KindMap {
				add(IterateKey)
			}
		}
	}

	effects := mergeSubscribers(toRun)
	for _, e := range effects {
		if e.onTrigger != nil {
			e.onTrigger(TriggerEvent{Effect: e, Target: target, Type: op, Key: key, NewValue: newValue, OldValue: oldValue})
		}
	}
	rt.runEffects(effects)
}

func mergeSubscribers(deps []*Dep) []*ReactiveEffect {
	seen := map[*ReactiveEffect]bool{}
	var out []*ReactiveEffect
	for _, d := range deps {
		for _, e := range d.Subscribers() {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

func (rt *Runtime) runEffects(effects []*ReactiveEffect) {
	for _, e := range effects {
		if e == rt.activeEffect && !e.allowRecurse {
			continue
		}
		rt.queueOrRun(e)
	}
}
