package reactant

import "github.com/delaneyj/reactant/internal/engine"

type mapData[K comparable, V any] struct {
	entries map[K]V
	skip    bool
}

// Map is a reactive keyed collection (spec ยง4.3): access is via method
// call rather than indexing, since the backing map's own methods would
// bypass the tracking traps entirely.
type Map[K comparable, V any] struct {
	rt       *Runtime
	data     *mapData[K, V]
	readonly bool
	shallow  bool
	isProxy  bool
}

// NewMap creates a plain, non-reactive keyed collection.
func NewMap[K comparable, V any](rt *Runtime) *Map[K, V] {
	return &Map[K, V]{rt: rt, data: &mapData[K, V]{entries: map[K]V{}}}
}

func (m *Map[K, V]) rawTarget() any       { return m.data }
func (m *Map[K, V]) isProxyFlag() bool    { return m.isProxy }
func (m *Map[K, V]) isReadonlyFlag() bool { return m.readonly }
func (m *Map[K, V]) isShallowFlag() bool  { return m.shallow }
func (m *Map[K, V]) markSkip()            { m.data.skip = true }
func (m *Map[K, V]) isSkipped() bool      { return m.data.skip }
func (m *Map[K, V]) asReactiveAny() any   { return m.toReactive() }
func (m *Map[K, V]) asReadonlyAny() any   { return m.toReadonly() }

func (m *Map[K, V]) toMode(mode engine.Mode) *Map[K, V] {
	if m.data.skip {
		return m
	}
	if !mode.Readonly && m.isProxy {
		return m
	}
	if p, ok := m.rt.GetProxy(m.data, mode); ok {
		return p.(*Map[K, V])
	}
	np := &Map[K, V]{rt: m.rt, data: m.data, readonly: mode.Readonly, shallow: mode.Shallow, isProxy: true}
	m.rt.StoreProxy(m.data, mode, np)
	return np
}

func (m *Map[K, V]) toReactive() *Map[K, V]        { return m.toMode(engine.Mode{}) }
func (m *Map[K, V]) toReadonly() *Map[K, V]        { return m.toMode(engine.Mode{Readonly: true}) }
func (m *Map[K, V]) toShallowReactive() *Map[K, V] { return m.toMode(engine.Mode{Shallow: true}) }
func (m *Map[K, V]) toShallowReadonly() *Map[K, V] {
	return m.toMode(engine.Mode{Shallow: true, Readonly: true})
}

func wrapMapValue[V any](v V, shallow, readonly bool) V {
	if shallow {
		return v
	}
	var boxed any = v
	wrapped := maybeWrap(boxed, readonly)
	if w, ok := wrapped.(V); ok {
		return w
	}
	return v
}

// Get reads k, tracking a GET dependency.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.data.entries[k]
	if !m.readonly {
		m.rt.Track(m.data, engine.TrackGet, k)
	}
	if !ok {
		var zero V
		return zero, false
	}
	return wrapMapValue(v, m.shallow, m.readonly), true
}

// Has reports whether k is present, tracking a HAS dependency.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.data.entries[k]
	if !m.readonly {
		m.rt.Track(m.data, engine.TrackHas, k)
	}
	return ok
}

// Set writes k, triggering ADD for a new key or SET for a changed existing
// one.
func (m *Map[K, V]) Set(k K, v V) {
	if m.readonly {
		m.rt.Logger.Printf("reactant: set on readonly map ignored")
		return
	}
	old, had := m.data.entries[k]
	stored := v
	if !m.shallow {
		var boxed any = v
		if uw, ok := unwrapForStorage(boxed).(V); ok {
			stored = uw
		}
	}
	m.data.entries[k] = stored
	if !had {
		m.rt.Trigger(m.data, engine.KindMap, engine.TriggerAdd, k, stored, nil, 0)
		return
	}
	if !valuesEqual(any(old), any(stored)) {
		m.rt.Trigger(m.data, engine.KindMap, engine.TriggerSet, k, stored, old, 0)
	}
}

// Delete removes k, triggering DELETE if it was present.
func (m *Map[K, V]) Delete(k K) bool {
	if m.readonly {
		m.rt.Logger.Printf("reactant: delete on readonly map ignored")
		return true
	}
	old, had := m.data.entries[k]
	if !had {
		return false
	}
	delete(m.data.entries, k)
	m.rt.Trigger(m.data, engine.KindMap, engine.TriggerDelete, k, nil, old, 0)
	return true
}

// Clear empties the map, triggering CLEAR (which drains every Dep known for
// this target, per spec ยง4.3).
func (m *Map[K, V]) Clear() {
	if m.readonly {
		m.rt.Logger.Printf("reactant: clear on readonly map ignored")
		return
	}
	if len(m.data.entries) == 0 {
		return
	}
	m.data.entries = map[K]V{}
	m.rt.Trigger(m.data, engine.KindMap, engine.TriggerClear, nil, nil, nil, 0)
}

// Size returns the number of entries, tracking the ITERATE dependency.
func (m *Map[K, V]) Size() int {
	if !m.readonly {
		m.rt.Track(m.data, engine.TrackIterate, engine.IterateKey)
	}
	return len(m.data.entries)
}

// ForEach visits every entry, tracking the ITERATE dependency.
func (m *Map[K, V]) ForEach(fn func(K, V)) {
	if !m.readonly {
		m.rt.Track(m.data, engine.TrackIterate, engine.IterateKey)
	}
	for k, v := range m.data.entries {
		fn(k, wrapMapValue(v, m.shallow, m.readonly))
	}
}

// Keys returns a snapshot of the key set, tracking the MAP_KEY_ITERATE
// dependency (observing only the key set, not the values, per spec ยง4.3).
func (m *Map[K, V]) Keys() []K {
	if !m.readonly {
		m.rt.Track(m.data, engine.TrackIterate, engine.MapKeyIterateKey)
	}
	out := make([]K, 0, len(m.data.entries))
	for k := range m.data.entries {
		out = append(out, k)
	}
	return out
}
