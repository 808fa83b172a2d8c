package reactant

import "github.com/delaneyj/reactant/internal/engine"

// objectData is the backing store an Object proxy observes. It is never
// exposed directly; callers only ever hold an *Object handle.
type objectData struct {
	keys   []string
	values map[string]any
	skip   bool
}

// Object is a reactive record: an ordered string-keyed dictionary. It plays
// the role the source's plain-object interceptor plays for records.
type Object struct {
	rt       *Runtime
	data     *objectData
	readonly bool
	shallow  bool
	isProxy  bool
}

// NewObject creates a plain, non-reactive record. Wrap it with Reactive,
// Readonly, ShallowReactive, or ShallowReadonly to observe it.
func NewObject(rt *Runtime) *Object {
	return &Object{rt: rt, data: &objectData{values: map[string]any{}}}
}

// NewObjectFrom creates a plain record pre-populated from init. Keys are
// recorded in Go's map iteration order, so their initial order is
// unspecified.
func NewObjectFrom(rt *Runtime, init map[string]any) *Object {
	o := NewObject(rt)
	for k, v := range init {
		o.data.keys = append(o.data.keys, k)
		o.data.values[k] = unwrapForStorage(v)
	}
	return o
}

func (o *Object) rawTarget() any        { return o.data }
func (o *Object) isProxyFlag() bool     { return o.isProxy }
func (o *Object) isReadonlyFlag() bool  { return o.readonly }
func (o *Object) isShallowFlag() bool   { return o.shallow }
func (o *Object) markSkip()             { o.data.skip = true }
func (o *Object) isSkipped() bool       { return o.data.skip }
func (o *Object) asReactiveAny() any    { return o.toReactive() }
func (o *Object) asReadonlyAny() any    { return o.toReadonly() }

func (o *Object) toMode(mode engine.Mode) *Object {
	if o.data.skip {
		return o
	}
	if !mode.Readonly && o.isProxy {
		// Already wrapped; a non-readonly re-wrap is a no-op (spec rule 3),
		// and this also covers rule 2 (reactive() over an existing readonly
		// proxy returns it unchanged).
		return o
	}
	if p, ok := o.rt.GetProxy(o.data, mode); ok {
		return p.(*Object)
	}
	np := &Object{rt: o.rt, data: o.data, readonly: mode.Readonly, shallow: mode.Shallow, isProxy: true}
	o.rt.StoreProxy(o.data, mode, np)
	return np
}

func (o *Object) toReactive() *Object        { return o.toMode(engine.Mode{}) }
func (o *Object) toReadonly() *Object        { return o.toMode(engine.Mode{Readonly: true}) }
func (o *Object) toShallowReactive() *Object { return o.toMode(engine.Mode{Shallow: true}) }
func (o *Object) toShallowReadonly() *Object { return o.toMode(engine.Mode{Shallow: true, Readonly: true}) }

// Get reads key, tracking a dependency unless this is a readonly view.
func (o *Object) Get(key string) any {
	raw, ok := o.data.values[key]
	if !o.readonly {
		o.rt.Track(o.data, engine.TrackGet, key)
	}
	if !ok {
		return nil
	}
	if o.shallow {
		return raw
	}
	return maybeWrapUnwrappingRef(raw, o.readonly)
}

// Set writes key, triggering ADD for a new key or SET for a changed
// existing one. Writes to a readonly view warn and are otherwise no-ops,
// per spec ยง4.2 and ยง7.
func (o *Object) Set(key string, value any) {
	if o.readonly {
		o.rt.Logger.Printf("reactant: set on readonly object key %q ignored", key)
		return
	}

	oldRaw, hadKey := o.data.values[key]

	if !o.shallow {
		if oldRef, ok := oldRaw.(refHandle); ok {
			if _, newIsRef := value.(refHandle); !newIsRef {
				oldRef.writeAny(value)
				return
			}
		}
	}

	newVal := value
	if !o.shallow {
		newVal = unwrapForStorage(value)
	}

	if !hadKey {
		o.data.keys = append(o.data.keys, key)
	}
	o.data.values[key] = newVal

	if !hadKey {
		o.rt.Trigger(o.data, engine.KindRecord, engine.TriggerAdd, key, newVal, oldRaw, 0)
		return
	}
	if !valuesEqual(oldRaw, newVal) {
		o.rt.Trigger(o.data, engine.KindRecord, engine.TriggerSet, key, newVal, oldRaw, 0)
	}
}

// Has reports whether key is present, tracking a HAS dependency.
func (o *Object) Has(key string) bool {
	_, ok := o.data.values[key]
	if !o.readonly {
		o.rt.Track(o.data, engine.TrackHas, key)
	}
	return ok
}

// Delete removes key, triggering DELETE if it was present. Deleting from a
// readonly view warns and is a no-op.
func (o *Object) Delete(key string) bool {
	if o.readonly {
		o.rt.Logger.Printf("reactant: delete on readonly object key %q ignored", key)
		return true
	}
	old, had := o.data.values[key]
	if !had {
		return true
	}
	delete(o.data.values, key)
	for i, k := range o.data.keys {
		if k == key {
			o.data.keys = append(o.data.keys[:i], o.data.keys[i+1:]...)
			break
		}
	}
	o.rt.Trigger(o.data, engine.KindRecord, engine.TriggerDelete, key, nil, old, 0)
	return true
}

// Keys returns the record's own keys in insertion order, tracking an
// ITERATE dependency (ownKeys, spec ยง4.2).
func (o *Object) Keys() []string {
	if !o.readonly {
		o.rt.Track(o.data, engine.TrackIterate, engine.IterateKey)
	}
	out := make([]string, len(o.data.keys))
	copy(out, o.data.keys)
	return out
}

// Len returns the number of keys, tracking the same ITERATE dependency as
// Keys (reading how many keys there are observes the same shape).
func (o *Object) Len() int {
	if !o.readonly {
		o.rt.Track(o.data, engine.TrackIterate, engine.IterateKey)
	}
	return len(o.data.keys)
}
