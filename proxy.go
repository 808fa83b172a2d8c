package reactant

// Proxyable is satisfied by every collection handle type (*Object, *Array,
// *Map[K,V], *Set[T]), letting Reactive/Readonly/ShallowReactive/
// ShallowReadonly be written once generically instead of once per kind.
type Proxyable[T any] interface {
	toReactive() T
	toReadonly() T
	toShallowReactive() T
	toShallowReadonly() T
}

// Reactive returns a deep, mutable proxy over v (spec ยง4.1).
func Reactive[T Proxyable[T]](v T) T { return v.toReactive() }

// Readonly returns a deep, read-only proxy over v. Writes through it warn
// and are ignored; the underlying target can still change if some other
// reactive or raw reference to it is mutated elsewhere (spec ยง4.1).
func Readonly[T Proxyable[T]](v T) T { return v.toReadonly() }

// ShallowReactive returns a proxy that only tracks/triggers on the target's
// own top-level keys; nested values are returned raw, unwrapped.
func ShallowReactive[T Proxyable[T]](v T) T { return v.toShallowReactive() }

// ShallowReadonly returns a proxy that is both shallow and read-only.
func ShallowReadonly[T Proxyable[T]](v T) T { return v.toShallowReadonly() }
