package overlay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/alert-fx/alert"
	"github.com/lixenwraith/alert-fx/audio"
	"github.com/lixenwraith/alert-fx/config"
	"github.com/lixenwraith/alert-fx/constant"
	"github.com/lixenwraith/alert-fx/core"
	"github.com/lixenwraith/alert-fx/engine"
	"github.com/lixenwraith/alert-fx/feed"
	"github.com/lixenwraith/alert-fx/presenter"
	"github.com/lixenwraith/alert-fx/render"
	"github.com/lixenwraith/alert-fx/scheduler"
	"github.com/lixenwraith/alert-fx/status"
)

// Options selects how the overlay runs
type Options struct {
	Config config.Config

	// Screen is created from the terminal when nil
	Screen tcell.Screen
	// Clock defaults to the system clock
	Clock scheduler.Clock
	// Registry is created when nil
	Registry *status.Registry

	Muted bool
	// HUD forces the status line on; [display] hud can also enable it
	HUD bool

	// Offline skips the feed entirely; no connection banner is shown
	Offline bool
	// Alerts are enqueued before the first frame
	Alerts []alert.Alert
	// Ambient seeds drifting motes at startup
	Ambient bool
	// ExitWhenIdle returns from Run once the queue is drained and the particles settle
	ExitWhenIdle bool
}

type feedStatus struct {
	status feed.Status
	err    error
}

// scene is the drawable state handed from the run loop to draw
type scene struct {
	view     scheduler.View
	visible  bool
	deadline time.Time
	span     time.Duration
	banner   banner
	hud      bool
	muted    bool
}

// App wires the feed, scheduler, presenter, engine and terminal together
type App struct {
	opts  Options
	log   *slog.Logger
	reg   *status.Registry
	clock scheduler.Clock
	frame time.Duration

	engine *engine.Engine
	sched  *scheduler.Scheduler
	pres   *presenter.Presenter
	sound  *audio.SoundManager
	feed   *feed.Client

	alerts   chan alert.Alert
	statuses chan feedStatus
	wake     chan struct{}

	// drawMu guards everything below; lock order is drawMu then the engine lock
	drawMu sync.Mutex
	screen tcell.Screen
	buf    *render.Buffer
	scene  scene
	tick   uint64
	closed bool
}

// New builds the component graph; nothing touches the terminal until Run
func New(opts Options, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.Clock == nil {
		opts.Clock = scheduler.SystemClock{}
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	cfg := opts.Config

	a := &App{
		opts:     opts,
		log:      log,
		reg:      opts.Registry,
		clock:    opts.Clock,
		alerts:   make(chan alert.Alert, constant.AlertInboxSize),
		statuses: make(chan feedStatus, 8),
		wake:     make(chan struct{}, 1),
		frame:    cfg.FrameInterval(),
	}
	if a.frame <= 0 {
		a.frame = constant.FrameUpdateInterval
	}

	// Sized on Run once the screen reports its dimensions
	a.engine = engine.NewEngine(cfg.EngineConfig(), 1, 1, a.reg, log.With("component", "engine"))

	var sounds presenter.Sounds
	if cfg.Audio.Enabled {
		a.sound = audio.NewSoundManager(cfg.SoundConfig(), log.With("component", "audio"))
		a.sound.SetMuted(opts.Muted)
		sounds = a.sound
	}
	a.pres = presenter.New(a.engine, sounds, log.With("component", "presenter"))
	a.sched = scheduler.New(a.clock, cfg.SchedulerTiming(), a.pres, a.reg, log.With("component", "scheduler"))

	a.scene.hud = opts.HUD || cfg.Display.HUD
	a.scene.muted = opts.Muted
	switch {
	case opts.Offline:
	case cfg.Token == "":
		a.scene.banner = missingTokenBanner()
	default:
		a.feed = feed.NewClient(feed.Config{URL: cfg.Feed.URL, Token: cfg.Token}, a.reg, log.With("component", "feed"))
	}
	return a
}

// Registry exposes the metrics the HUD reads
func (a *App) Registry() *status.Registry {
	return a.reg
}

// Run takes over the terminal until ctx is cancelled or the user quits
func (a *App) Run(ctx context.Context) error {
	if err := a.initScreen(); err != nil {
		return err
	}
	defer a.shutdown()

	if a.sound != nil {
		if err := a.sound.Initialize(); err != nil {
			a.log.Warn("audio unavailable, continuing silent", "error", err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return
			}
		}
	})

	if a.feed != nil {
		a.feed.SetStatusHandler(func(s feed.Status, err error) {
			select {
			case a.statuses <- feedStatus{status: s, err: err}:
			case <-gctx.Done():
			}
		})
		g.Go(func() error {
			return a.feed.Run(gctx, func(ev alert.Event) {
				for _, al := range alert.Normalize(ev) {
					select {
					case a.alerts <- al:
					case <-gctx.Done():
						return
					}
				}
			})
		})
	}

	g.Go(func() error {
		defer cancel()
		return a.loop(gctx, events)
	})

	return g.Wait()
}

func (a *App) initScreen() error {
	screen := a.opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	core.SetCrashScreen(screen)

	cols, rows := screen.Size()
	a.drawMu.Lock()
	a.screen = screen
	a.buf = render.NewBuffer(cols, rows, render.RgbBackground)
	a.engine.Resize(cols, rows)
	a.drawMu.Unlock()

	a.engine.SetFrameHandler(a.onFrame)
	return nil
}

// shutdown stops the frame loop before the screen goes away
func (a *App) shutdown() {
	a.engine.Stop()
	if a.sound != nil {
		a.sound.Cleanup()
	}

	a.drawMu.Lock()
	a.closed = true
	a.drawMu.Unlock()

	core.SetCrashScreen(nil)
	a.screen.Fini()
}

// loop is the only goroutine that touches the scheduler
func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	deadline := time.NewTimer(time.Hour)
	deadline.Stop()
	defer deadline.Stop()

	var redraw *time.Ticker
	var redrawC <-chan time.Time
	defer func() {
		if redraw != nil {
			redraw.Stop()
		}
	}()

	var hide *time.Timer
	var hideC <-chan time.Time

	if a.opts.Ambient {
		a.engine.Trigger(engine.EffectAmbient, constant.DemoMoteCount)
	}
	for _, al := range a.opts.Alerts {
		a.sched.Enqueue(al)
	}

	for {
		a.sched.Update()
		a.publishScene()
		running := a.engine.Running()
		if !running {
			a.draw()
		}

		if at, ok := a.sched.NextDeadline(); ok {
			deadline.Reset(max(0, at.Sub(a.clock.Now())))
		} else {
			deadline.Stop()
		}

		// The engine loop draws while it runs; the card needs frames of its own otherwise
		cardOnly := a.sched.State().Visible() && !running
		switch {
		case cardOnly && redraw == nil:
			redraw = time.NewTicker(a.frame)
			redrawC = redraw.C
		case !cardOnly && redraw != nil:
			redraw.Stop()
			redraw, redrawC = nil, nil
		}

		if a.opts.ExitWhenIdle && a.sched.State() == scheduler.StateIdle && a.sched.Pending() == 0 && !running && a.engine.Idle() {
			a.log.Info("queue drained, exiting")
			return nil
		}

		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}

		case al := <-a.alerts:
			a.sched.Enqueue(al)

		case st := <-a.statuses:
			a.log.Info("feed status", "status", st.status.String(), "error", st.err)
			a.setBanner(bannerFor(st.status, st.err))
			if hide != nil {
				hide.Stop()
				hide, hideC = nil, nil
			}
			if st.status == feed.StatusConnected {
				hide = time.NewTimer(constant.StatusHideDelay)
				hideC = hide.C
			}

		case <-hideC:
			hide, hideC = nil, nil
			a.setBanner(banner{})

		case <-deadline.C:

		case <-redrawC:

		case <-a.wake:
		}
	}
}

// handleEvent applies one terminal event; false means quit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.drawMu.Lock()
		if a.buf != nil {
			a.buf.Resize(cols, rows)
		}
		a.engine.Resize(cols, rows)
		if a.screen != nil {
			a.screen.Sync()
		}
		a.drawMu.Unlock()
		a.log.Debug("resized", "cols", cols, "rows", rows)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	switch r {
	case 'q':
		return false
	case 'm':
		a.toggleMute()
		return true
	case 'i':
		a.drawMu.Lock()
		a.scene.hud = !a.scene.hud
		a.drawMu.Unlock()
		return true
	}

	if c, ok := sampleKeys[r]; ok {
		a.log.Debug("test alert", "category", string(c))
		a.sched.Enqueue(Sample(c))
	}
	return true
}

func (a *App) toggleMute() {
	a.drawMu.Lock()
	a.scene.muted = !a.scene.muted
	muted := a.scene.muted
	a.drawMu.Unlock()
	if a.sound != nil {
		a.sound.SetMuted(muted)
	}
	a.log.Info("mute toggled", "muted", muted)
}

func (a *App) setBanner(b banner) {
	a.drawMu.Lock()
	a.scene.banner = b
	a.drawMu.Unlock()
}

// publishScene copies the scheduler slot for the draw path
func (a *App) publishScene() {
	v, visible := a.sched.View()
	at, _ := a.sched.NextDeadline()
	timing := a.opts.Config.SchedulerTiming()

	var span time.Duration
	switch v.State {
	case scheduler.StateEntering:
		span = timing.Enter
	case scheduler.StateHeld:
		span = timing.Hold
	case scheduler.StateExiting:
		span = timing.Exit
	}

	a.drawMu.Lock()
	a.scene.view = v
	a.scene.visible = visible
	a.scene.deadline = at
	a.scene.span = span
	a.drawMu.Unlock()
}

// onFrame runs on the engine loop; the run loop is woken once the engine goes idle
func (a *App) onFrame() {
	a.draw()
	if !a.engine.Running() {
		select {
		case a.wake <- struct{}{}:
		default:
		}
	}
}

// draw composes one frame; called from the run loop and the engine frame loop
func (a *App) draw() {
	a.drawMu.Lock()
	defer a.drawMu.Unlock()
	if a.closed || a.buf == nil {
		return
	}

	a.engine.Render(a.buf)
	a.tick++

	if a.scene.visible {
		v := a.scene.view
		if a.scene.span > 0 {
			left := a.scene.deadline.Sub(a.clock.Now())
			v.Progress = min(1, max(0, 1-float64(left)/float64(a.scene.span)))
		}
		presenter.DrawCard(a.buf, v, a.tick)
	}
	drawBanner(a.buf, a.scene.banner)
	if a.scene.hud {
		drawHUD(a.buf, hudLine(a.reg.Snapshot(), a.scene.muted))
	}

	render.Flush(a.screen, a.buf)
}
