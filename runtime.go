// Package reactant is a fine-grained reactive value engine: it observes
// reads and writes of structured, mutable state and automatically re-runs
// dependent computations when the values they read change.
//
// Go has no transparent object-proxy facility, so unlike the source this
// engine represents "proxy" as an opaque handle type with typed accessor
// methods (Object, Array, Map, Set) rather than attempting magic field
// interception - exactly the adaptation the design calls for in languages
// with stricter typing.
package reactant

import "github.com/delaneyj/reactant/internal/engine"

// Runtime owns one independent reactive graph. Nothing on it is safe for
// concurrent use by multiple goroutines at once.
type Runtime = engine.Runtime

// New creates an independent reactive graph.
func New() *Runtime { return engine.NewRuntime() }

// PauseTracking suspends dependency recording on rt until the matching
// ResumeTracking call.
func PauseTracking(rt *Runtime) { rt.PauseTracking() }

// ResumeTracking restores tracking state saved by the last unmatched
// PauseTracking or EnableTracking call.
func ResumeTracking(rt *Runtime) { rt.ResetTracking() }

// EnableTracking forces tracking on, saving the previous state.
func EnableTracking(rt *Runtime) { rt.EnableTracking() }

// Batch coalesces every effect re-run triggered while fn executes into a
// single flush once fn returns. Nested batches only flush at the outermost
// level.
func Batch(rt *Runtime, fn func()) { rt.Batch(fn) }
