// Package engine implements the dependency-tracking core: the Dep registry,
// the active-effect stack, and the track/trigger protocol. It has no
// knowledge of objects, arrays, maps, or sets - those interceptors live in
// the reactant package and call down into here.
package engine

import "github.com/cespare/xxhash/v2"

// symbol is the type of the synthetic registry keys that represent
// "observed the shape" rather than a concrete property. Each is a hashed
// token rather than a small iota so that it can never collide with a
// caller-supplied int key, the same trick pkg/flimsy/types.go uses for its
// SYMBOL_ERRORS context key (xxhash.Sum64String over a label).
type symbol uint64

func newSymbol(label string) symbol {
	return symbol(xxhash.Sum64String(label))
}

var (
	// IterateKey marks a dependency on iteration/ownKeys of a target.
	IterateKey = newSymbol("reactant:iterate")
	// MapKeyIterateKey marks a dependency on the key set only of a mapping.
	MapKeyIterateKey = newSymbol("reactant:map-key-iterate")
)

// LengthKey is the synthetic property name sequences use for their length.
const LengthKey = "length"

// TrackOp identifies why a read is being recorded.
type TrackOp int

const (
	TrackGet TrackOp = iota
	TrackHas
	TrackIterate
)

func (op TrackOp) String() string {
	switch op {
	case TrackGet:
		return "get"
	case TrackHas:
		return "has"
	case TrackIterate:
		return "iterate"
	default:
		return "unknown"
	}
}

// TriggerOp identifies the kind of mutation that occurred.
type TriggerOp int

const (
	TriggerSet TriggerOp = iota
	TriggerAdd
	TriggerDelete
	TriggerClear
)

func (op TriggerOp) String() string {
	switch op {
	case TriggerSet:
		return "set"
	case TriggerAdd:
		return "add"
	case TriggerDelete:
		return "delete"
	case TriggerClear:
		return "clear"
	default:
		return "unknown"
	}
}

// TargetKind tells the trigger resolver which key-selection rules apply.
type TargetKind int

const (
	KindRecord TargetKind = iota
	KindSequence
	KindMap
	KindSet
)
