package reactant

import "github.com/delaneyj/reactant/internal/engine"

type setData[T comparable] struct {
	members map[T]struct{}
	skip    bool
}

// Set is a reactive keyed collection of unique values (spec ยง4.3).
type Set[T comparable] struct {
	rt       *Runtime
	data     *setData[T]
	readonly bool
	shallow  bool
	isProxy  bool
}

// NewSet creates a plain, non-reactive set.
func NewSet[T comparable](rt *Runtime) *Set[T] {
	return &Set[T]{rt: rt, data: &setData[T]{members: map[T]struct{}{}}}
}

func (s *Set[T]) rawTarget() any       { return s.data }
func (s *Set[T]) isProxyFlag() bool    { return s.isProxy }
func (s *Set[T]) isReadonlyFlag() bool { return s.readonly }
func (s *Set[T]) isShallowFlag() bool  { return s.shallow }
func (s *Set[T]) markSkip()            { s.data.skip = true }
func (s *Set[T]) isSkipped() bool      { return s.data.skip }
func (s *Set[T]) asReactiveAny() any   { return s.toReactive() }
func (s *Set[T]) asReadonlyAny() any   { return s.toReadonly() }

func (s *Set[T]) toMode(mode engine.Mode) *Set[T] {
	if s.data.skip {
		return s
	}
	if !mode.Readonly && s.isProxy {
		return s
	}
	if p, ok := s.rt.GetProxy(s.data, mode); ok {
		return p.(*Set[T])
	}
	np := &Set[T]{rt: s.rt, data: s.data, readonly: mode.Readonly, shallow: mode.Shallow, isProxy: true}
	s.rt.StoreProxy(s.data, mode, np)
	return np
}

func (s *Set[T]) toReactive() *Set[T]        { return s.toMode(engine.Mode{}) }
func (s *Set[T]) toReadonly() *Set[T]        { return s.toMode(engine.Mode{Readonly: true}) }
func (s *Set[T]) toShallowReactive() *Set[T] { return s.toMode(engine.Mode{Shallow: true}) }
func (s *Set[T]) toShallowReadonly() *Set[T] {
	return s.toMode(engine.Mode{Shallow: true, Readonly: true})
}

// Has reports whether v is a member, tracking a HAS dependency.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.data.members[v]
	if !s.readonly {
		s.rt.Track(s.data, engine.TrackHas, v)
	}
	return ok
}

// Add inserts v, triggering ADD if it was not already a member.
func (s *Set[T]) Add(v T) {
	if s.readonly {
		s.rt.Logger.Printf("reactant: add on readonly set ignored")
		return
	}
	if _, had := s.data.members[v]; had {
		return
	}
	s.data.members[v] = struct{}{}
	s.rt.Trigger(s.data, engine.KindSet, engine.TriggerAdd, v, v, nil, 0)
}

// Delete removes v, triggering DELETE if it was present.
func (s *Set[T]) Delete(v T) bool {
	if s.readonly {
		s.rt.Logger.Printf("reactant: delete on readonly set ignored")
		return true
	}
	if _, had := s.data.members[v]; !had {
		return false
	}
	delete(s.data.members, v)
	s.rt.Trigger(s.data, engine.KindSet, engine.TriggerDelete, v, nil, v, 0)
	return true
}

// Clear empties the set, triggering CLEAR.
func (s *Set[T]) Clear() {
	if s.readonly {
		s.rt.Logger.Printf("reactant: clear on readonly set ignored")
		return
	}
	if len(s.data.members) == 0 {
		return
	}
	s.data.members = map[T]struct{}{}
	s.rt.Trigger(s.data, engine.KindSet, engine.TriggerClear, nil, nil, nil, 0)
}

// Size returns the number of members, tracking the ITERATE dependency.
func (s *Set[T]) Size() int {
	if !s.readonly {
		s.rt.Track(s.data, engine.TrackIterate, engine.IterateKey)
	}
	return len(s.data.members)
}

// ForEach visits every member, tracking the ITERATE dependency.
func (s *Set[T]) ForEach(fn func(T)) {
	if !s.readonly {
		s.rt.Track(s.data, engine.TrackIterate, engine.IterateKey)
	}
	for v := range s.data.members {
		fn(v)
	}
}
