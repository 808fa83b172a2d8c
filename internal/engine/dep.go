package engine

import mapset "github.com/deckarep/golang-set/v2"

// maxTrackDepth bounds the bit-marker diffing scheme; nesting beyond this
// falls back to full unsubscribe-then-resubscribe, trading performance for
// unbounded depth. See spec ("30-level bit-marker limit").
const maxTrackDepth = 30

// Dep is the set of effects subscribed to one (target, key) location, plus
// the "was tracked"/"newly tracked" bitfields used to diff an effect's
// dependency set across a single run without reallocating.
type Dep struct {
	subs mapset.Set[*ReactiveEffect]
	w, n uint32
}

func newDep() *Dep {
	return &Dep{subs: mapset.NewThreadUnsafeSet[*ReactiveEffect]()}
}

// NewDep creates a standalone Dep not backed by the registry, used by Ref
// and Computed which each own exactly one dependency location.
func NewDep() *Dep { return newDep() }

// Subscribers returns a point-in-time snapshot of the subscribed effects,
// stable against concurrent mutation of the set while it is iterated.
func (d *Dep) Subscribers() []*ReactiveEffect {
	return d.subs.ToSlice()
}

func (d *Dep) has(e *ReactiveEffect) bool {
	return d.subs.Contains(e)
}

func (d *Dep) add(e *ReactiveEffect) {
	d.subs.Add(e)
}

func (d *Dep) remove(e *ReactiveEffect) {
	d.subs.Remove(e)
}
