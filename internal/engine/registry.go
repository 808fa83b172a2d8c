package engine

import "sync"

// registry is the Target -> Key -> Dep map. Go has no language-level weak
// map, so unlike the source's WeakMap this one is reclaimed explicitly via
// Dispose rather than by the garbage collector noticing the target died.
type registry struct {
	mu   sync.Mutex
	data map[any]map[any]*Dep
}

func newRegistry() *registry {
	return &registry{data: map[any]map[any]*Dep{}}
}

func (r *registry) depFor(target, key any) *Dep {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys, ok := r.data[target]
	if !ok {
		keys = map[any]*Dep{}
		r.data[target] = keys
	}
	d, ok := keys[key]
	if !ok {
		d = newDep()
		keys[key] = d
	}
	return d
}

// peek returns the dep for (target, key) without creating it.
func (r *registry) peek(target, key any) (*Dep, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys, ok := r.data[target]
	if !ok {
		return nil, false
	}
	d, ok := keys[key]
	return d, ok
}

func (r *registry) depsFor(target any) map[any]*Dep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[target]
}

// dispose drops every Dep known for target. Existing subscribers are left
// subscribed to the orphaned Dep objects (harmless: nothing will ever
// trigger them again) rather than forcibly detached, matching the source's
// "collected along with the target" behavior.
func (r *registry) dispose(target any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, target)
}

// snapshotTargets is used by tooling (cmd/trace) to dump the live registry.
func (r *registry) snapshotTargets() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	targets := make([]any, 0, len(r.data))
	for t := range r.data {
		targets = append(targets, t)
	}
	return targets
}
