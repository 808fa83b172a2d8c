package engine

import (
	"log"
	"sync"
)

// Mode selects one of the four proxy identity maps: deep/shallow crossed
// with mutable/readonly.
type Mode struct {
	Shallow  bool
	Readonly bool
}

type proxyKey struct {
	raw  any
	mode Mode
}

// Scope receives effects created with an EffectOptions.Scope set, so it can
// stop all of them together later.
type Scope interface {
	add(*ReactiveEffect)
}

// ScopeAdder is the exported seam reactant.EffectScope implements; it is
// identical to Scope but named for external callers, since the unexported
// method name above can't be satisfied from outside this package.
type ScopeAdder interface {
	Add(*ReactiveEffect)
}

type scopeBridge struct{ s ScopeAdder }

func (b scopeBridge) add(e *ReactiveEffect) { b.s.Add(e) }

// WrapScope adapts a ScopeAdder (reactant.EffectScope) into the internal
// Scope interface used by Options.
func WrapScope(s ScopeAdder) Scope {
	if s == nil {
		return nil
	}
	return scopeBridge{s}
}

// Runtime owns one independent reactive graph: its Dep registry, its
// active-effect stack, and its tracking-enable stack. Nothing here is safe
// for concurrent use by multiple goroutines at once - same single
// cooperative-thread contract as the source engine. Grounded on flimsy's
// ReactiveContext, which threads one mutable context explicitly instead of
// relying on package-level globals, so independent graphs (and independent
// tests) don't interfere with each other.
type Runtime struct {
	Logger *log.Logger

	registry *registry

	activeEffect *ReactiveEffect
	trackDepth   int
	trackStack   []bool
	tracking     bool

	batchDepth    int
	pendingOrder  []*ReactiveEffect
	pendingSeen   map[*ReactiveEffect]bool

	proxyMu sync.Mutex
	proxies map[proxyKey]any
}

// NewRuntime creates an independent reactive graph.
func NewRuntime() *Runtime {
	return &Runtime{
		Logger:   log.Default(),
		registry: newRegistry(),
		tracking: true,
		proxies:  map[proxyKey]any{},
	}
}

// ActiveEffect returns the effect currently running on this runtime, or nil.
func (rt *Runtime) ActiveEffect() *ReactiveEffect { return rt.activeEffect }

func (rt *Runtime) shouldTrack() bool { return rt.tracking }

// PauseTracking suspends dependency recording until the matching
// ResetTracking, used by library code (e.g. Array length-mutators) that
// must read tracked state without creating a dependency on it.
func (rt *Runtime) PauseTracking() {
	rt.trackStack = append(rt.trackStack, rt.tracking)
	rt.tracking = false
}

// EnableTracking forces tracking on, saving the previous state the same way
// PauseTracking does.
func (rt *Runtime) EnableTracking() {
	rt.trackStack = append(rt.trackStack, rt.tracking)
	rt.tracking = true
}

// ResetTracking restores whatever tracking state was saved by the last
// unmatched PauseTracking/EnableTracking call.
func (rt *Runtime) ResetTracking() {
	n := len(rt.trackStack)
	if n == 0 {
		return
	}
	rt.tracking = rt.trackStack[n-1]
	rt.trackStack = rt.trackStack[:n-1]
}

// --- proxy identity maps -------------------------------------------------

// GetProxy looks up an existing proxy for (raw, mode).
func (rt *Runtime) GetProxy(raw any, mode Mode) (any, bool) {
	rt.proxyMu.Lock()
	defer rt.proxyMu.Unlock()
	p, ok := rt.proxies[proxyKey{raw, mode}]
	return p, ok
}

// StoreProxy records the proxy created for (raw, mode).
func (rt *Runtime) StoreProxy(raw any, mode Mode, proxy any) {
	rt.proxyMu.Lock()
	defer rt.proxyMu.Unlock()
	rt.proxies[proxyKey{raw, mode}] = proxy
}

// Dispose drops all Dep and proxy bookkeeping for target. This is the
// documented manual-disposal API called for when a target will never be
// referenced through this Runtime again.
func (rt *Runtime) Dispose(target any) {
	rt.registry.dispose(target)
	rt.proxyMu.Lock()
	defer rt.proxyMu.Unlock()
	for k := range rt.proxies {
		if k.raw == target {
			delete(rt.proxies, k)
		}
	}
}

// --- batching -------------------------------------------------------------

// StartBatch and EndBatch let a caller coalesce effect re-runs triggered by
// several writes into a single flush, as spec.md ยง1 allows ("a caller may
// provide a custom scheduler to coalesce"). Grounded on alien's
// StartBatch/EndBatch/Batch.
func (rt *Runtime) StartBatch() { rt.batchDepth++ }

func (rt *Runtime) EndBatch() {
	rt.batchDepth--
	if rt.batchDepth > 0 {
		return
	}
	pending := rt.pendingOrder
	rt.pendingOrder = nil
	rt.pendingSeen = nil
	for _, e := range pending {
		rt.invoke(e)
	}
}

// Batch runs fn with effect notifications coalesced until it returns.
func (rt *Runtime) Batch(fn func()) {
	rt.StartBatch()
	defer rt.EndBatch()
	fn()
}

func (rt *Runtime) queueOrRun(e *ReactiveEffect) {
	if rt.batchDepth > 0 {
		if rt.pendingSeen == nil {
			rt.pendingSeen = map[*ReactiveEffect]bool{}
		}
		if !rt.pendingSeen[e] {
			rt.pendingSeen[e] = true
			rt.pendingOrder = append(rt.pendingOrder, e)
		}
		return
	}
	rt.invoke(e)
}

// invoke runs a single effect's scheduler (or, lacking one, the effect
// itself) in its own recover scope: a panic here is logged and swallowed
// rather than propagated, so one misbehaving effect in a trigger batch
// or EndBatch flush can never prevent its siblings from running (spec
// "an exception during one effect in a trigger batch must not prevent
// subsequent effects in the same batch from running").
func (rt *Runtime) invoke(e *ReactiveEffect) {
	defer func() {
		if r := recover(); r != nil {
			rt.Logger.Printf("reactant: effect panicked, isolated from sibling effects: %v", r)
		}
	}()
	if e.scheduler != nil {
		e.scheduler()
		return
	}
	e.Run()
}

// RegistrySnapshot exposes the live target set for diagnostic tooling
// (cmd/trace deps). Not part of the tracking protocol.
func (rt *Runtime) RegistrySnapshot() []any { return rt.registry.snapshotTargets() }

func (rt *Runtime) DepsOf(target any) map[any]*Dep { return rt.registry.depsFor(target) }
