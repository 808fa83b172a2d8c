package reactant

// proxyHandle is implemented by every wrapper type (*Object, *Array,
// *Map[K,V], *Set[T]) so the mode-agnostic helpers below (IsReactive,
// ToRaw, ...) can work across all of them without a type switch per kind.
type proxyHandle interface {
	rawTarget() any
	isProxyFlag() bool
	isReadonlyFlag() bool
	isShallowFlag() bool
}

// dynamicWrappable lets Get traps lazily deep-wrap a nested raw value that
// happens to be one of our collection types, without the engine package
// (or a generic Map/Set value type) needing to know about Object/Array
// concretely.
type dynamicWrappable interface {
	asReactiveAny() any
	asReadonlyAny() any
}

// skipMarkable lets MarkRaw flip the "never wrap me" bit on any target kind.
type skipMarkable interface {
	markSkip()
	isSkipped() bool
}

// refHandle is implemented by *Ref[T] and *Computed[T] regardless of T, so IsRef/Unref/the
// Object-field ref-forwarding rule in spec ยง4.2 can work generically.
type refHandle interface {
	readAny() any
	writeAny(any) bool // returns true if it accepted the write
	isShallowRef() bool
}

// IsReactive reports whether v is a non-readonly reactive proxy.
func IsReactive(v any) bool {
	if h, ok := v.(proxyHandle); ok {
		return h.isProxyFlag() && !h.isReadonlyFlag()
	}
	return false
}

// IsReadonly reports whether v is a readonly proxy.
func IsReadonly(v any) bool {
	h, ok := v.(proxyHandle)
	return ok && h.isProxyFlag() && h.isReadonlyFlag()
}

// IsProxy reports whether v is any kind of reactive/readonly proxy.
func IsProxy(v any) bool {
	h, ok := v.(proxyHandle)
	return ok && h.isProxyFlag()
}

// IsShallow reports whether v is a shallow proxy.
func IsShallow(v any) bool {
	h, ok := v.(proxyHandle)
	return ok && h.isShallowFlag()
}

// ToRaw unwraps every proxy layer and returns the underlying target.
func ToRaw(v any) any {
	for {
		h, ok := v.(proxyHandle)
		if !ok {
			return v
		}
		raw := h.rawTarget()
		if raw == nil || raw == v {
			return v
		}
		v = raw
	}
}

// MarkRaw marks a target as never wrappable, in place. Wrapping a marked
// target returns it unchanged.
func MarkRaw(v any) {
	if s, ok := v.(skipMarkable); ok {
		s.markSkip()
	}
}

// IsRef reports whether v is a Ref or a Computed of any element type.
func IsRef(v any) bool {
	_, ok := v.(refHandle)
	return ok
}

// Unref returns v.Value() if v is a Ref or a Computed, otherwise v itself.
func Unref(v any) any {
	if r, ok := v.(refHandle); ok {
		return r.readAny()
	}
	return v
}

// maybeWrap implements the lazy-deep-conversion rule common to Object.Get,
// Array.Get/Keys, Map.Get/ForEach and Ref storage (Set iteration hands
// members out as stored): proxies pass through unchanged, raw
// collection targets are wrapped on demand in the mode the parent reads
// under, everything else passes through as-is.
func maybeWrap(v any, parentReadonly bool) any {
	if h, ok := v.(proxyHandle); ok && h.isProxyFlag() {
		return v
	}
	if dw, ok := v.(dynamicWrappable); ok {
		if parentReadonly {
			return dw.asReadonlyAny()
		}
		return dw.asReactiveAny()
	}
	return v
}

// maybeWrapUnwrappingRef additionally unwraps Refs, the rule every plain-record
// Get applies except for sequence integer-index reads (spec ยง4.2).
func maybeWrapUnwrappingRef(v any, parentReadonly bool) any {
	if r, ok := v.(refHandle); ok {
		return r.readAny()
	}
	return maybeWrap(v, parentReadonly)
}

// unwrapForStorage strips one layer of proxy-ness from a value about to be
// stored, mirroring the source's toRaw(newValue) on plain writes: we never
// want to store "a reactive view of the caller's own proxy" as the backing
// data, we want the raw target.
func unwrapForStorage(v any) any {
	if h, ok := v.(proxyHandle); ok && h.isProxyFlag() && !h.isReadonlyFlag() {
		return h.rawTarget()
	}
	return v
}

// valuesEqual implements NaN-aware identity comparison: two NaNs compare
// equal for change detection, everything else uses Go's native equality,
// with a defensive recover for dynamic types that aren't comparable (e.g.
// a caller storing a raw Go slice/map as a value) where "always changed"
// is the safe default.
func valuesEqual(a, b any) (eq bool) {
	if af, ok := a.(float64); ok {
		if bf, ok2 := b.(float64); ok2 {
			if af != af && bf != bf {
				return true
			}
			return af == bf
		}
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
