package engine

import (
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/render"
	"github.com/lixenwraith/alert-fx/status"
)

// Config is constructor-injected engine tuning
type Config struct {
	Cap           int
	CellWidth     int
	CellHeight    int
	FrameInterval time.Duration
	Seed          int64
	// Manual disables the frame loop; the caller drives Step
	Manual bool
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Cap:           constant.ParticleCap,
		CellWidth:     constant.CellWidthPx,
		CellHeight:    constant.CellHeightPx,
		FrameInterval: constant.FrameUpdateInterval,
		Seed:          time.Now().UnixNano(),
	}
}

// pendingStep is a pattern stage converted to an absolute frame number
type pendingStep struct {
	due uint64
	do  func(e *Engine)
}

// Engine owns the live particle set and the two screen effects
// All state is guarded by mu; Trigger may be called from any goroutine
type Engine struct {
	mu sync.Mutex

	particles []Particle
	pending   []pendingStep
	nextID    uint64
	frame     uint64

	shake shakeState
	flash flashState

	bounds   bounds
	cellW    float64
	cellH    float64
	cap      int
	interval time.Duration
	rng      *rand.Rand

	loop    *FrameLoop
	onFrame func()
	log     *slog.Logger

	statLive    *atomic.Int64
	statFrames  *atomic.Int64
	statEvicted *atomic.Int64
	statRunning *atomic.Bool
}

// NewEngine creates an engine for a cols x rows cell surface
func NewEngine(cfg Config, cols, rows int, reg *status.Registry, log *slog.Logger) *Engine {
	def := DefaultConfig()
	if cfg.Cap <= 0 {
		cfg.Cap = def.Cap
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = def.CellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = def.CellHeight
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		particles:   make([]Particle, 0, cfg.Cap),
		cellW:       float64(cfg.CellWidth),
		cellH:       float64(cfg.CellHeight),
		cap:         cfg.Cap,
		interval:    cfg.FrameInterval,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		log:         log,
		statLive:    reg.Ints.Get(status.EngineLive),
		statFrames:  reg.Ints.Get(status.EngineFrames),
		statEvicted: reg.Ints.Get(status.EngineEvicted),
		statRunning: reg.Bools.Get(status.EngineRunning),
	}
	e.resize(cols, rows)
	if !cfg.Manual {
		e.loop = NewFrameLoop(cfg.FrameInterval, &e.mu, e.update, e.frameDone)
	}
	return e
}

// SetFrameHandler registers fn to run after every loop frame, outside the engine lock
// Must be called before the first Trigger
func (e *Engine) SetFrameHandler(fn func()) {
	e.mu.Lock()
	e.onFrame = fn
	e.mu.Unlock()
}

// Trigger schedules the named pattern and wakes the frame loop
// Never blocks on simulation; unknown effects are logged and ignored
func (e *Engine) Trigger(effect Effect, intensity int) {
	pattern, ok := patterns[effect]
	if !ok {
		e.log.Warn("unknown effect", "effect", string(effect))
		return
	}
	if intensity < 0 {
		intensity = 0
	}

	e.mu.Lock()
	for _, s := range pattern(intensity) {
		e.pending = append(e.pending, pendingStep{due: e.frame + uint64(e.frames(s.Delay)), do: s.Do})
	}
	queued := len(e.pending)
	if e.loop != nil {
		e.loop.Start()
		e.statRunning.Store(e.loop.Running())
	}
	e.mu.Unlock()

	e.log.Debug("effect triggered", "effect", string(effect), "intensity", intensity, "pending", queued)
}

// Step advances one frame and reports whether anything is still animating
func (e *Engine) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.update()
}

// update runs due pattern stages, advances physics and screen effects, drops the dead
// Caller holds mu
func (e *Engine) update() bool {
	n := 0
	for _, s := range e.pending {
		if s.due <= e.frame {
			s.do(e)
			continue
		}
		e.pending[n] = s
		n++
	}
	clear(e.pending[n:])
	e.pending = e.pending[:n]
	e.frame++

	alive := e.particles[:0]
	for i := range e.particles {
		p := &e.particles[i]
		p.step(e.bounds, e.rng)
		if !p.Dead() {
			alive = append(alive, *p)
		}
	}
	clear(e.particles[len(alive):])
	e.particles = alive

	e.updateScreenEffects()

	e.statFrames.Add(1)
	e.statLive.Store(int64(len(e.particles)))
	return !e.idle()
}

func (e *Engine) idle() bool {
	return len(e.particles) == 0 && len(e.pending) == 0 && e.shake.atRest() && e.flash.opacity <= 0
}

// frameDone runs after each loop frame; stopped reports that the loop has just gone idle
// The running metric is read back from the loop under mu, where Trigger also restarts it
func (e *Engine) frameDone(stopped bool) {
	if stopped {
		e.log.Debug("frame loop idle", "frames", e.statFrames.Load())
	}
	e.mu.Lock()
	e.statRunning.Store(e.loop.Running())
	fn := e.onFrame
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Render draws the current frame: shake transform, clear, flash, particles in insertion order
// Reads simulation state only
func (e *Engine) Render(buf *render.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	buf.SetOffset(e.shake.offX, e.shake.offY)
	buf.Clear()
	if e.flash.opacity > 0 {
		buf.Fill(e.flash.color, e.flash.opacity)
	}
	for i := range e.particles {
		e.draw(buf, &e.particles[i])
	}
	buf.SetOffset(0, 0)
}

// Resize updates the simulation surface; live particles are kept
func (e *Engine) Resize(cols, rows int) {
	e.mu.Lock()
	e.resize(cols, rows)
	e.mu.Unlock()
}

func (e *Engine) resize(cols, rows int) {
	e.bounds = bounds{W: float64(cols) * e.cellW, H: float64(rows) * e.cellH}
}

// Live returns the live particle count
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.particles)
}

// Idle reports whether nothing is animating or scheduled
func (e *Engine) Idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.idle()
}

// Running reports whether the frame loop is active
func (e *Engine) Running() bool {
	return e.loop != nil && e.loop.Running()
}

// Stop halts the frame loop permanently
func (e *Engine) Stop() {
	if e.loop != nil {
		e.loop.Stop()
		e.statRunning.Store(false)
	}
}

// frames converts a delay to whole frames at the configured interval
func (e *Engine) frames(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / e.interval)
}
