package reactant

import "github.com/delaneyj/reactant/internal/engine"

// Ref is a reactive scalar cell (spec ยง4.7): a single Dep guards both reads
// of and writes to Value, rather than a target/key pair in the registry.
type Ref[T any] struct {
	rt      *Runtime
	value   T
	dep     *engine.Dep
	shallow bool
}

// NewRef creates a deep ref: a plain collection handle stored in it, as the
// initial value or through SetValue, is replaced by its reactive proxy when
// stored, so Value returns the reactive view.
func NewRef[T any](rt *Runtime, initial T) *Ref[T] {
	return &Ref[T]{rt: rt, value: wrapRefValue(initial, false), dep: engine.NewDep()}
}

// NewShallowRef creates a ref whose value is never deep-wrapped.
func NewShallowRef[T any](rt *Runtime, initial T) *Ref[T] {
	return &Ref[T]{rt: rt, value: initial, dep: engine.NewDep(), shallow: true}
}

func wrapRefValue[T any](v T, shallow bool) T {
	if shallow {
		return v
	}
	var boxed any = v
	wrapped := maybeWrap(boxed, false)
	if w, ok := wrapped.(T); ok {
		return w
	}
	return v
}

// Value reads the current value, tracking this ref's Dep.
func (r *Ref[T]) Value() T {
	r.rt.TrackDepDirect(r.dep)
	return r.value
}

// SetValue writes a new value, triggering the ref's Dep only if the value
// actually changed (NaN-aware, spec ยง4.7).
func (r *Ref[T]) SetValue(v T) {
	var oldBoxed any = r.value
	stored := v
	if !r.shallow {
		var boxed any = v
		if uw, ok := unwrapForStorage(boxed).(T); ok {
			stored = uw
		}
	}
	var newBoxed any = stored
	if valuesEqual(oldBoxed, newBoxed) {
		return
	}
	r.value = wrapRefValue(stored, r.shallow)
	r.rt.TriggerDepDirect(r.dep)
}

// readAny/writeAny/isShallowRef implement the refHandle interface so Object
// and Array field-assignment can forward writes into an existing ref rather
// than overwriting it, and so IsRef/Unref work across element types.
func (r *Ref[T]) readAny() any { return r.Value() }

func (r *Ref[T]) writeAny(v any) bool {
	cast, ok := v.(T)
	if !ok {
		var zero T
		if v == nil {
			r.SetValue(zero)
			return true
		}
		return false
	}
	r.SetValue(cast)
	return true
}

func (r *Ref[T]) isShallowRef() bool { return r.shallow }
