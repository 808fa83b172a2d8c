package engine_test

import (
	"io"
	"log"
	"testing"

	"github.com/delaneyj/reactant/internal/engine"
	"github.com/stretchr/testify/assert"
)

// stopping an effect clears its subscriptions, so later triggers don't re-run it
func TestEffectClearSubsWhenUntracked(t *testing.T) {
	rt := engine.NewRuntime()
	target := &struct{ v int }{}
	runs := 0

	e := engine.NewEffect(rt, func() {
		rt.Track(target, engine.TrackGet, "v")
		runs++
	}, engine.Options{})
	e.Run()

	assert.Equal(t, 1, runs)
	rt.Trigger(target, engine.KindRecord, engine.TriggerSet, "v", 2, 1, 0)
	assert.Equal(t, 2, runs)

	e.Stop()
	rt.Trigger(target, engine.KindRecord, engine.TriggerSet, "v", 3, 2, 0)
	assert.Equal(t, 2, runs)
}

// dep-diffing should drop a dependency an effect stops reading
func TestEffectDropsStaleDependency(t *testing.T) {
	rt := engine.NewRuntime()
	target := &struct{}{}
	cond := true
	runs := 0

	e := engine.NewEffect(rt, func() {
		rt.Track(target, engine.TrackGet, "a")
		if cond {
			rt.Track(target, engine.TrackGet, "b")
		}
		runs++
	}, engine.Options{})
	e.Run()
	assert.Equal(t, 1, runs)

	cond = false
	e.Run()
	assert.Equal(t, 2, runs)

	// "b" is no longer a dependency, so triggering it must not re-run the effect.
	rt.Trigger(target, engine.KindRecord, engine.TriggerSet, "b", 1, 0, 0)
	assert.Equal(t, 2, runs)

	// "a" is still a dependency.
	rt.Trigger(target, engine.KindRecord, engine.TriggerSet, "a", 1, 0, 0)
	assert.Equal(t, 3, runs)
}

// recursive self-triggering is suppressed unless AllowRecurse is set
func TestEffectRecursionGuard(t *testing.T) {
	rt := engine.NewRuntime()
	target := &struct{}{}
	runs := 0

	var e *engine.ReactiveEffect
	e = engine.NewEffect(rt, func() {
		runs++
		rt.Track(target, engine.TrackGet, "v")
		if runs == 1 {
			rt.Trigger(target, engine.KindRecord, engine.TriggerSet, "v", 1, 0, 0)
		}
	}, engine.Options{})
	e.Run()

	assert.Equal(t, 1, runs)
}

// should run outer effect before an inner one it creates
func TestRunOuterEffectFirst(t *testing.T) {
	rt := engine.NewRuntime()
	a := &struct{}{}
	order := []string{}

	outer := engine.NewEffect(rt, func() {
		order = append(order, "outer")
		rt.Track(a, engine.TrackGet, "v")
		inner := engine.NewEffect(rt, func() {
			order = append(order, "inner")
			rt.Track(a, engine.TrackGet, "v")
		}, engine.Options{})
		inner.Run()
	}, engine.Options{})
	outer.Run()

	assert.Equal(t, []string{"outer", "inner"}, order)
}

// a batch coalesces multiple triggers of the same effect into one run
func TestBatchCoalescesRuns(t *testing.T) {
	rt := engine.NewRuntime()
	a := &struct{}{}
	runs := 0

	e := engine.NewEffect(rt, func() {
		rt.Track(a, engine.TrackGet, "x")
		runs++
	}, engine.Options{})
	e.Run()
	assert.Equal(t, 1, runs)

	rt.Batch(func() {
		rt.Trigger(a, engine.KindRecord, engine.TriggerSet, "x", 1, 0, 0)
		rt.Trigger(a, engine.KindRecord, engine.TriggerSet, "x", 2, 1, 0)
	})
	assert.Equal(t, 2, runs)
}

// a custom scheduler replaces immediate re-run on trigger
func TestCustomScheduler(t *testing.T) {
	rt := engine.NewRuntime()
	a := &struct{}{}
	scheduled := 0
	ran := 0

	e := engine.NewEffect(rt, func() {
		rt.Track(a, engine.TrackGet, "x")
		ran++
	}, engine.Options{Scheduler: func() { scheduled++ }})
	e.Run()
	assert.Equal(t, 1, ran)

	rt.Trigger(a, engine.KindRecord, engine.TriggerSet, "x", 1, 0, 0)
	assert.Equal(t, 1, scheduled)
	assert.Equal(t, 1, ran)
}

// pausing tracking prevents new dependencies from being recorded
func TestPauseTracking(t *testing.T) {
	rt := engine.NewRuntime()
	a := &struct{}{}
	runs := 0

	e := engine.NewEffect(rt, func() {
		rt.PauseTracking()
		rt.Track(a, engine.TrackGet, "x")
		rt.ResetTracking()
		runs++
	}, engine.Options{})
	e.Run()
	assert.Equal(t, 1, runs)

	rt.Trigger(a, engine.KindRecord, engine.TriggerSet, "x", 1, 0, 0)
	assert.Equal(t, 1, runs)
}

// CLEAR fires every dependency known for the target
func TestTriggerClearFiresEverything(t *testing.T) {
	rt := engine.NewRuntime()
	m := &struct{}{}
	runs := 0

	e := engine.NewEffect(rt, func() {
		rt.Track(m, engine.TrackGet, "a")
		rt.Track(m, engine.TrackGet, "b")
		runs++
	}, engine.Options{})
	e.Run()

	rt.Trigger(m, engine.KindMap, engine.TriggerClear, nil, nil, nil, 0)
	assert.Equal(t, 2, runs)
}

// shrinking a sequence's length fires deps on dropped indices and on length
func TestTriggerSequenceLengthShrink(t *testing.T) {
	rt := engine.NewRuntime()
	arr := &struct{}{}

	var sawLength, sawIndex2 bool
	e1 := engine.NewEffect(rt, func() {
		rt.Track(arr, engine.TrackGet, engine.LengthKey)
		sawLength = true
	}, engine.Options{})
	e1.Run()

	e2 := engine.NewEffect(rt, func() {
		rt.Track(arr, engine.TrackGet, 2)
		sawIndex2 = true
	}, engine.Options{})
	e2.Run()

	sawLength, sawIndex2 = false, false
	rt.Trigger(arr, engine.KindSequence, engine.TriggerSet, engine.LengthKey, 1, 3, 1)
	assert.True(t, sawLength)
	assert.True(t, sawIndex2)
}

// one effect panicking during a trigger must not stop its siblings from running
func TestTriggerIsolatesPanickingEffect(t *testing.T) {
	rt := engine.NewRuntime()
	rt.Logger = log.New(io.Discard, "", 0)
	target := &struct{}{}

	before := engine.NewEffect(rt, func() {
		rt.Track(target, engine.TrackGet, "x")
	}, engine.Options{})
	before.Run()

	panickerSubscribed := false
	panicker := engine.NewEffect(rt, func() {
		rt.Track(target, engine.TrackGet, "x")
		if panickerSubscribed {
			panic("boom")
		}
		panickerSubscribed = true
	}, engine.Options{})
	panicker.Run()

	afterRuns := 0
	after := engine.NewEffect(rt, func() {
		rt.Track(target, engine.TrackGet, "x")
		afterRuns++
	}, engine.Options{})
	after.Run()
	assert.Equal(t, 1, afterRuns)

	assert.NotPanics(t, func() {
		rt.Trigger(target, engine.KindRecord, engine.TriggerSet, "x", 1, 0, 0)
	})
	assert.Equal(t, 2, afterRuns)
}

// a panic in one effect during an EndBatch flush doesn't block the rest of the flush
func TestEndBatchIsolatesPanickingEffect(t *testing.T) {
	rt := engine.NewRuntime()
	rt.Logger = log.New(io.Discard, "", 0)
	target := &struct{}{}

	panickerSubscribed := false
	panicker := engine.NewEffect(rt, func() {
		rt.Track(target, engine.TrackGet, "x")
		if panickerSubscribed {
			panic("boom")
		}
		panickerSubscribed = true
	}, engine.Options{})
	panicker.Run()

	afterRuns := 0
	after := engine.NewEffect(rt, func() {
		rt.Track(target, engine.TrackGet, "x")
		afterRuns++
	}, engine.Options{})
	after.Run()
	assert.Equal(t, 1, afterRuns)

	assert.NotPanics(t, func() {
		rt.Batch(func() {
			rt.Trigger(target, engine.KindRecord, engine.TriggerSet, "x", 1, 0, 0)
		})
	})
	assert.Equal(t, 2, afterRuns)
}
