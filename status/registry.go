package status

import (
	"sync/atomic"
)

// Metric keys published by the overlay components
const (
	EngineLive     = "engine.live"
	EngineFrames   = "engine.frames"
	EngineEvicted  = "engine.evicted"
	EngineRunning  = "engine.running"
	SchedulerQueue = "scheduler.queue"
	SchedulerShown = "scheduler.shown"
	SchedulerState = "scheduler.state"
	FeedConnected  = "feed.connected"
	FeedEvents     = "feed.events"
	FeedState      = "feed.state"
)

// Registry is the central metrics facade
// Components cache pointers at construction; hot paths write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot is a point-in-time copy of every registered metric
type Snapshot struct {
	Bools   map[string]bool
	Ints    map[string]int64
	Strings map[string]string
}

// Snapshot reads all metrics; individual values are atomic, the set is not
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Bools:   make(map[string]bool, r.Bools.Count()),
		Ints:    make(map[string]int64, r.Ints.Count()),
		Strings: make(map[string]string, r.Strings.Count()),
	}
	r.Bools.Range(func(k string, v *atomic.Bool) { s.Bools[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { s.Ints[k] = v.Load() })
	r.Strings.Range(func(k string, v *AtomicString) { s.Strings[k] = v.Load() })
	return s
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}
