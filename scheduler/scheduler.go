package scheduler

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/status"
)

// State is the presentation slot state
type State uint8

const (
	StateIdle State = iota
	StateEntering
	StateHeld
	StateExiting
	StateGap
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEntering:
		return "entering"
	case StateHeld:
		return "held"
	case StateExiting:
		return "exiting"
	case StateGap:
		return "gap"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Visible reports whether an alert occupies the slot
func (s State) Visible() bool {
	return s == StateEntering || s == StateHeld || s == StateExiting
}

// Presenter receives the side effects of a cycle start
// Show is called exactly once per alert, at the start of Entering
type Presenter interface {
	Show(a alert.Alert)
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(a alert.Alert)

// Show calls f(a)
func (f PresenterFunc) Show(a alert.Alert) { f(a) }

// Timing holds the fixed cycle durations
type Timing struct {
	Enter time.Duration
	Hold  time.Duration
	Exit  time.Duration
	Gap   time.Duration
}

// DefaultTiming returns the stock cycle durations
func DefaultTiming() Timing {
	return Timing{
		Enter: constant.AlertEnterDuration,
		Hold:  constant.AlertHoldDuration,
		Exit:  constant.AlertExitDuration,
		Gap:   constant.AlertGapDuration,
	}
}

// View is a read-only snapshot of the slot for drawing
type View struct {
	Alert    alert.Alert
	State    State
	Progress float64 // fraction of the current phase elapsed, 0..1
}

// Scheduler serializes alerts into one presentation cycle at a time
// It is driven by deadlines: Enqueue arms the slot, Update performs every transition whose
// deadline has passed. Not safe for concurrent use; confine to one goroutine
type Scheduler struct {
	clock     Clock
	timing    Timing
	presenter Presenter
	log       *slog.Logger

	queue      *alert.Queue
	state      State
	active     alert.Alert
	phaseStart time.Time
	deadline   time.Time
	armed      bool

	statQueue *atomic.Int64
	statShown *atomic.Int64
	statState *status.AtomicString
}

// New creates an idle scheduler
func New(clock Clock, timing Timing, presenter Presenter, reg *status.Registry, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{
		clock:     clock,
		timing:    timing,
		presenter: presenter,
		log:       log,
		queue:     alert.NewQueue(),
		statQueue: reg.Ints.Get(status.SchedulerQueue),
		statShown: reg.Ints.Get(status.SchedulerShown),
		statState: reg.Strings.Get(status.SchedulerState),
	}
	s.statState.Store(StateIdle.String())
	return s
}

// Enqueue inserts a into the pending queue; when idle, the next cycle is armed for now
// Alerts enqueued before the following Update compete by priority for the first slot
func (s *Scheduler) Enqueue(a alert.Alert) {
	s.queue.Push(a)
	s.statQueue.Store(int64(s.queue.Len()))
	s.log.Debug("alert queued",
		"id", a.ID.String(),
		"category", string(a.Category),
		"priority", a.Priority(),
		"queue", s.queue.Len(),
		"state", s.state.String())

	if s.state == StateIdle && !s.armed {
		s.armed = true
		s.deadline = s.clock.Now()
	}
}

// Update performs all transitions whose deadline is at or before now
func (s *Scheduler) Update() {
	now := s.clock.Now()
	for s.armed && !now.Before(s.deadline) {
		s.advance()
	}
}

// NextDeadline returns when Update next has work to do
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	return s.deadline, s.armed
}

// State returns the current slot state
func (s *Scheduler) State() State {
	return s.state
}

// Pending returns the number of queued alerts
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Queue returns a copy of the pending queue in display order
func (s *Scheduler) Queue() []alert.Alert {
	return s.queue.Snapshot()
}

// View returns the active alert and phase progress; ok is false when nothing is visible
func (s *Scheduler) View() (View, bool) {
	if !s.state.Visible() {
		return View{State: s.state}, false
	}
	v := View{Alert: s.active, State: s.state}
	if span := s.deadline.Sub(s.phaseStart); span > 0 {
		v.Progress = float64(s.clock.Now().Sub(s.phaseStart)) / float64(span)
		v.Progress = min(1, max(0, v.Progress))
	} else {
		v.Progress = 1
	}
	return v, true
}

// advance moves one step around the cycle
// Phases inside a cycle chain from the previous deadline; a new cycle never starts in the past
func (s *Scheduler) advance() {
	at := s.deadline
	switch s.state {
	case StateIdle, StateGap:
		next, ok := s.queue.Pop()
		if !ok {
			s.active = alert.Alert{}
			s.armed = false
			s.deadline = time.Time{}
			s.setState(StateIdle, at)
			return
		}
		s.statQueue.Store(int64(s.queue.Len()))
		s.active = next
		if now := s.clock.Now(); now.After(at) {
			at = now
		}
		s.enter(StateEntering, at, s.timing.Enter)
		s.statShown.Add(1)
		s.log.Info("alert shown",
			"id", next.ID.String(),
			"category", string(next.Category),
			"name", next.DisplayName,
			"priority", next.Priority())
		if s.presenter != nil {
			s.presenter.Show(next)
		}
	case StateEntering:
		s.enter(StateHeld, at, s.timing.Hold)
	case StateHeld:
		s.enter(StateExiting, at, s.timing.Exit)
	case StateExiting:
		s.active = alert.Alert{}
		s.enter(StateGap, at, s.timing.Gap)
	}
}

func (s *Scheduler) enter(state State, at time.Time, d time.Duration) {
	s.setState(state, at)
	s.deadline = at.Add(d)
}

func (s *Scheduler) setState(state State, at time.Time) {
	s.state = state
	s.phaseStart = at
	s.statState.Store(state.String())
	s.log.Debug("state change", "state", state.String(), "queue", s.queue.Len())
}
