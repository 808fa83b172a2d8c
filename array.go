package reactant

import "github.com/delaneyj/reactant/internal/engine"

type arrayData struct {
	items []any
	skip  bool
}

// Array is a reactive sequence. Length-mutating methods (Push, Pop, Shift,
// Unshift, Splice) pause tracking while they read the current length
// internally, the same self-dependency hazard the source's array
// interceptor guards against (spec ยง4.2).
type Array struct {
	rt       *Runtime
	data     *arrayData
	readonly bool
	shallow  bool
	isProxy  bool
}

// NewArray creates a plain, non-reactive sequence from items.
func NewArray(rt *Runtime, items ...any) *Array {
	data := &arrayData{items: make([]any, len(items))}
	for i, v := range items {
		data.items[i] = unwrapForStorage(v)
	}
	return &Array{rt: rt, data: data}
}

func (a *Array) rawTarget() any       { return a.data }
func (a *Array) isProxyFlag() bool    { return a.isProxy }
func (a *Array) isReadonlyFlag() bool { return a.readonly }
func (a *Array) isShallowFlag() bool  { return a.shallow }
func (a *Array) markSkip()            { a.data.skip = true }
func (a *Array) isSkipped() bool      { return a.data.skip }
func (a *Array) asReactiveAny() any   { return a.toReactive() }
func (a *Array) asReadonlyAny() any   { return a.toReadonly() }

func (a *Array) toMode(mode engine.Mode) *Array {
	if a.data.skip {
		return a
	}
	if !mode.Readonly && a.isProxy {
		return a
	}
	if p, ok := a.rt.GetProxy(a.data, mode); ok {
		return p.(*Array)
	}
	np := &Array{rt: a.rt, data: a.data, readonly: mode.Readonly, shallow: mode.Shallow, isProxy: true}
	a.rt.StoreProxy(a.data, mode, np)
	return np
}

func (a *Array) toReactive() *Array        { return a.toMode(engine.Mode{}) }
func (a *Array) toReadonly() *Array        { return a.toMode(engine.Mode{Readonly: true}) }
func (a *Array) toShallowReactive() *Array { return a.toMode(engine.Mode{Shallow: true}) }
func (a *Array) toShallowReadonly() *Array { return a.toMode(engine.Mode{Shallow: true, Readonly: true}) }

// Len reads the current length, tracking the synthetic "length" key.
func (a *Array) Len() int {
	if !a.readonly {
		a.rt.Track(a.data, engine.TrackGet, engine.LengthKey)
	}
	return len(a.data.items)
}

// Get reads index i. Unlike Object.Get, a Ref stored at an integer index is
// returned unwrapped-but-not-dereferenced - an array of refs preserves ref
// identity (spec ยง4.2).
func (a *Array) Get(i int) any {
	if !a.readonly {
		a.rt.Track(a.data, engine.TrackGet, i)
	}
	if i < 0 || i >= len(a.data.items) {
		return nil
	}
	raw := a.data.items[i]
	if a.shallow {
		return raw
	}
	return maybeWrap(raw, a.readonly)
}

// Set writes index i, extending the backing slice (padding any gap with nil)
// and triggering ADD if i >= Len(), matching "hadKey := key < length" for
// sequences.
func (a *Array) Set(i int, value any) {
	if a.readonly {
		a.rt.Logger.Printf("reactant: set on readonly array index %d ignored", i)
		return
	}
	if i < 0 {
		return
	}
	hadKey := i < len(a.data.items)

	newVal := value
	if !a.shallow {
		newVal = unwrapForStorage(value)
	}

	var oldRaw any
	if hadKey {
		oldRaw = a.data.items[i]
		if ref, ok := oldRaw.(refHandle); ok {
			if _, newIsRef := value.(refHandle); !newIsRef && !a.shallow {
				ref.writeAny(value)
				return
			}
		}
		a.data.items[i] = newVal
	} else {
		for len(a.data.items) < i {
			a.data.items = append(a.data.items, nil)
		}
		a.data.items = append(a.data.items, newVal)
	}

	if !hadKey {
		a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerAdd, i, newVal, nil, len(a.data.items))
		return
	}
	if !valuesEqual(oldRaw, newVal) {
		a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerSet, i, newVal, oldRaw, len(a.data.items))
	}
}

// SetLength truncates or grows the backing slice, matching the source's
// "length mutation shrinks elements past the new length" semantics: every
// Dep on "length" or on an index >= the new length fires (spec ยง4.4).
func (a *Array) SetLength(newLength int) {
	if a.readonly {
		a.rt.Logger.Printf("reactant: length assignment on readonly array ignored")
		return
	}
	if newLength < 0 {
		return
	}
	old := len(a.data.items)
	if newLength == old {
		return
	}
	if newLength < old {
		a.data.items = a.data.items[:newLength]
	} else {
		for len(a.data.items) < newLength {
			a.data.items = append(a.data.items, nil)
		}
	}
	a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerSet, engine.LengthKey, newLength, old, newLength)
}

// Has reports whether index i is in range, tracking a HAS dependency.
func (a *Array) Has(i int) bool {
	if !a.readonly {
		a.rt.Track(a.data, engine.TrackHas, i)
	}
	return i >= 0 && i < len(a.data.items)
}

// Keys tracks the sequence's ITERATE dependency (its own "length" key
// stands in for ownKeys on sequences, per spec ยง4.2) and returns a raw
// snapshot of the backing slice.
func (a *Array) Keys() []any {
	if !a.readonly {
		a.rt.Track(a.data, engine.TrackIterate, engine.LengthKey)
	}
	out := make([]any, len(a.data.items))
	for i, v := range a.data.items {
		if a.shallow {
			out[i] = v
			continue
		}
		out[i] = maybeWrap(v, a.readonly)
	}
	return out
}

// Push appends items, triggering ADD per new index.
func (a *Array) Push(items ...any) int {
	if a.readonly {
		a.rt.Logger.Printf("reactant: push on readonly array ignored")
		return a.Len()
	}
	a.rt.PauseTracking()
	start := len(a.data.items)
	a.rt.ResetTracking()

	for _, v := range items {
		if !a.shallow {
			v = unwrapForStorage(v)
		}
		a.data.items = append(a.data.items, v)
	}
	for i, v := range items {
		a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerAdd, start+i, v, nil, len(a.data.items))
	}
	return len(a.data.items)
}

// Pop removes and returns the last item, if any.
func (a *Array) Pop() any {
	if a.readonly {
		a.rt.Logger.Printf("reactant: pop on readonly array ignored")
		return nil
	}
	a.rt.PauseTracking()
	n := len(a.data.items)
	a.rt.ResetTracking()
	if n == 0 {
		return nil
	}
	old := a.data.items[n-1]
	a.data.items = a.data.items[:n-1]
	a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerSet, engine.LengthKey, n-1, n, n-1)
	return old
}

// Shift removes and returns the first item, if any.
func (a *Array) Shift() any {
	if a.readonly {
		a.rt.Logger.Printf("reactant: shift on readonly array ignored")
		return nil
	}
	a.rt.PauseTracking()
	n := len(a.data.items)
	a.rt.ResetTracking()
	if n == 0 {
		return nil
	}
	old := a.data.items[0]
	a.data.items = a.data.items[1:]
	// Every remaining element moved down one index, so deps on every index
	// fire along with "length".
	a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerSet, engine.LengthKey, n-1, n, 0)
	return old
}

// Unshift prepends items, shifting every existing element.
func (a *Array) Unshift(items ...any) int {
	if a.readonly {
		a.rt.Logger.Printf("reactant: unshift on readonly array ignored")
		return a.Len()
	}
	a.rt.PauseTracking()
	n := len(a.data.items)
	a.rt.ResetTracking()

	stored := make([]any, len(items))
	for i, v := range items {
		if !a.shallow {
			v = unwrapForStorage(v)
		}
		stored[i] = v
	}
	a.data.items = append(stored, a.data.items...)
	// Every existing element moved up, so deps on every index fire along
	// with "length".
	a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerSet, engine.LengthKey, n+len(items), n, 0)
	return len(a.data.items)
}

// Splice removes deleteCount items starting at start and inserts items in
// their place, returning the removed items.
func (a *Array) Splice(start, deleteCount int, items ...any) []any {
	if a.readonly {
		a.rt.Logger.Printf("reactant: splice on readonly array ignored")
		return nil
	}
	a.rt.PauseTracking()
	n := len(a.data.items)
	a.rt.ResetTracking()

	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > n {
		deleteCount = n - start
	}

	removed := make([]any, deleteCount)
	copy(removed, a.data.items[start:start+deleteCount])

	stored := make([]any, len(items))
	for i, v := range items {
		if !a.shallow {
			v = unwrapForStorage(v)
		}
		stored[i] = v
	}

	tail := append([]any{}, a.data.items[start+deleteCount:]...)
	a.data.items = append(a.data.items[:start], append(stored, tail...)...)

	// Elements from start onward may have changed or moved, so deps on those
	// indices fire along with "length".
	a.rt.Trigger(a.data, engine.KindSequence, engine.TriggerSet, engine.LengthKey, len(a.data.items), n, start)
	return removed
}

// identitySearch implements the shared body of IndexOf/Includes/LastIndexOf:
// track every index (the method may read past what equality alone would
// need to), try with the needle as given, and if that reports "not found"
// retry once with every proxy layer stripped from the needle - the caller
// may have passed a reactive proxy as needle against raw backing data
// (spec ยง4.2). Backing elements are never unwrapped for the comparison.
func (a *Array) identitySearch(needle any, search func(any) int) int {
	if !a.readonly {
		for i := 0; i < len(a.data.items); i++ {
			a.rt.Track(a.data, engine.TrackGet, i)
		}
	}
	if idx := search(needle); idx >= 0 {
		return idx
	}
	raw := ToRaw(needle)
	if valuesEqual(raw, needle) {
		return -1
	}
	return search(raw)
}

// IndexOf returns the first index of needle, or -1.
func (a *Array) IndexOf(needle any) int {
	return a.identitySearch(needle, func(n any) int {
		for i, v := range a.data.items {
			if valuesEqual(v, n) {
				return i
			}
		}
		return -1
	})
}

// LastIndexOf returns the last index of needle, or -1.
func (a *Array) LastIndexOf(needle any) int {
	return a.identitySearch(needle, func(n any) int {
		for i := len(a.data.items) - 1; i >= 0; i-- {
			if valuesEqual(a.data.items[i], n) {
				return i
			}
		}
		return -1
	})
}

// Includes reports whether needle is present.
func (a *Array) Includes(needle any) bool {
	return a.identitySearch(needle, func(n any) int {
		for _, v := range a.data.items {
			if valuesEqual(v, n) {
				return 0
			}
		}
		return -1
	}) >= 0
}
