package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/alert-fx/core"
)

// FrameLoop drives a step function at a fixed interval while there is work
// The step owner decides idleness; the loop clears running under the same lock
// so a concurrent Start after new work always sees a stopped loop
type FrameLoop struct {
	interval time.Duration
	gate     sync.Locker
	step     func() bool
	onFrame  func(stopped bool)

	mu      sync.Mutex // orders Start against Stop
	running atomic.Bool
	closed  bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewFrameLoop creates a stopped loop; step is called with gate held
func NewFrameLoop(interval time.Duration, gate sync.Locker, step func() bool, onFrame func(stopped bool)) *FrameLoop {
	return &FrameLoop{
		interval: interval,
		gate:     gate,
		step:     step,
		onFrame:  onFrame,
		quit:     make(chan struct{}),
	}
}

// Start launches the loop if it is not running; returns true if this call started it
func (l *FrameLoop) Start() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if !l.running.CompareAndSwap(false, true) {
		return false
	}
	l.wg.Add(1)
	core.Go(l.run)
	return true
}

// Stop halts the loop and prevents further starts
func (l *FrameLoop) Stop() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.quit)
	l.mu.Unlock()

	l.wg.Wait()
	l.running.Store(false)
}

// Running reports whether a loop goroutine is active
func (l *FrameLoop) Running() bool {
	return l.running.Load()
}

func (l *FrameLoop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.quit:
			return
		case <-ticker.C:
		}

		l.gate.Lock()
		alive := l.step()
		if !alive {
			l.running.Store(false)
		}
		l.gate.Unlock()

		if l.onFrame != nil {
			l.onFrame(!alive)
		}
		if !alive {
			return
		}
	}
}
