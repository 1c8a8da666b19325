package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/render"
	"go.uber.org/zap"
)

// Cue names played through Options.Cues
const (
	CueStage   = "stage"   // A stage became active
	CueBlocked = "blocked" // A program entity found no route
	CueHit     = "hit"     // An entity was hit
)

// CuePlayer plays short named sound cues
type CuePlayer interface {
	Play(cue string)
}

// Options configures an Engine; zero fields take defaults
type Options struct {
	Logger        *zap.Logger   // Default Nop
	Clock         FrameClock    // Default TimerClock posting onto the engine loop
	Time          TimeProvider  // Default monotonic wall clock
	FrameInterval time.Duration // Minimum spacing between accepted frames, default 16ms
	Registry      *Registry     // Behavior lookup, default empty
	Background    tcell.Color   // Frame fill colour, default black
	Cues          CuePlayer     // Optional
	QueueSize     int           // Loop queue capacity, default 256
}

// Engine owns the surface, the stages and the frame loop
//
// All methods except Post must run on the engine loop (or before Run starts).
type Engine struct {
	surface  render.Surface
	log      *zap.Logger
	clock    FrameClock
	time     TimeProvider
	interval time.Duration
	registry *Registry
	bg       tcell.Color
	cues     CuePlayer

	loop   *Loop
	router *router

	stages []*Stage
	index  int

	running bool
	pending FrameHandle
	frame   uint64
	last    time.Time // Timestamp of the last accepted frame

	cancel context.CancelFunc
	err    error
}

// New creates a stopped engine drawing onto surface
func New(surface render.Surface, opts Options) *Engine {
	e := &Engine{
		surface:  surface,
		log:      opts.Logger,
		time:     opts.Time,
		interval: opts.FrameInterval,
		registry: opts.Registry,
		bg:       opts.Background,
		cues:     opts.Cues,
		loop:     NewLoop(opts.QueueSize),
		router:   newRouter(),
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.time == nil {
		e.time = NewMonotonicTimeProvider()
	}
	if e.interval <= 0 {
		e.interval = DefaultFrameInterval
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	if e.bg == tcell.ColorDefault {
		e.bg = tcell.ColorBlack
	}
	e.clock = opts.Clock
	if e.clock == nil {
		e.clock = NewTimerClock(e.loop.Post, e.time, e.interval)
	}
	return e
}

// Surface returns the drawing surface
func (e *Engine) Surface() render.Surface { return e.surface }

// Registry returns the behavior registry
func (e *Engine) Registry() *Registry { return e.registry }

// Logger returns the engine logger
func (e *Engine) Logger() *zap.Logger { return e.log }

// Stages returns all stages in creation order
func (e *Engine) Stages() []*Stage { return e.stages }

// Stage returns the stage at index, nil when out of range
func (e *Engine) Stage(index int) *Stage {
	if index < 0 || index >= len(e.stages) {
		return nil
	}
	return e.stages[index]
}

// Index returns the active stage index
func (e *Engine) Index() int { return e.index }

// Current returns the active stage, nil when there are no stages
func (e *Engine) Current() *Stage { return e.Stage(e.index) }

// Frame returns the number of accepted frames
func (e *Engine) Frame() uint64 { return e.frame }

// Running reports whether the frame loop is scheduled
func (e *Engine) Running() bool { return e.running }

// CreateStage builds a stage and appends it to the stage list
func (e *Engine) CreateStage(cfg StageConfig) (*Stage, error) {
	hook := cfg.Hook
	if hook == nil && cfg.HookID != "" {
		h, err := e.registry.Hook(cfg.HookID)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", len(e.stages), err)
		}
		hook = h
	}
	s := newStage(e, cfg, hook)
	s.index = len(e.stages)
	e.stages = append(e.stages, s)
	return s, nil
}

// SetStage deactivates the current stage, then resets and activates the stage at index
func (e *Engine) SetStage(index int) (*Stage, error) {
	if len(e.stages) == 0 {
		return nil, ErrNoStages
	}
	if index < 0 || index >= len(e.stages) {
		return nil, fmt.Errorf("set stage %d of %d: %w", index, len(e.stages), ErrInvalidStage)
	}

	e.stages[e.index].Status = core.StatusInactive
	e.index = index
	s := e.stages[index]
	s.Reset()

	e.log.Info("stage activated", zap.Int("stage", index), zap.String("name", s.Name))
	e.Cue(CueStage)
	return s, nil
}

// Cue plays a named sound cue when a cue player is configured
func (e *Engine) Cue(name string) {
	if e.cues != nil {
		e.cues.Play(name)
	}
}

// NextStage activates the stage after the current one
func (e *Engine) NextStage() (*Stage, error) {
	if e.index >= len(e.stages)-1 {
		return nil, fmt.Errorf("next stage after %d: %w", e.index, ErrStagesExhausted)
	}
	return e.SetStage(e.index + 1)
}

// Init activates stage 0 and starts the frame loop
func (e *Engine) Init() error {
	if _, err := e.SetStage(0); err != nil {
		return err
	}
	return e.Start()
}

// Start schedules the frame loop; starting a running engine is a no-op
func (e *Engine) Start() error {
	if len(e.stages) == 0 {
		return ErrNoStages
	}
	if e.running {
		return nil
	}
	e.running = true
	e.last = e.time.Now()
	e.pending = e.clock.Request(e.tick)
	e.log.Info("frame loop started", zap.Duration("interval", e.interval))
	return nil
}

// Stop cancels the pending frame; a frame already executing completes
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.clock.Cancel(e.pending)
	e.pending = 0
	e.log.Info("frame loop stopped", zap.Uint64("frames", e.frame))
}

// Post queues fn onto the engine loop, safe from any goroutine
func (e *Engine) Post(fn func()) {
	e.loop.Post(fn)
}

// Run executes the engine loop until ctx is done, Quit or Fail is called
// Returns the error passed to Fail, nil otherwise
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	defer cancel()

	err := e.loop.Run(ctx)
	e.Stop()
	if e.err != nil {
		return e.err
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// DiscardUntil drops posted callbacks until done is closed
// Hosts call it after Run so input producers blocked on a full queue can exit
func (e *Engine) DiscardUntil(done <-chan struct{}) int {
	return e.loop.DiscardUntil(done)
}

// Quit ends Run without error
func (e *Engine) Quit() {
	if e.cancel != nil {
		e.cancel()
	}
}

// Fail ends Run, which returns err
// Content uses it to surface errors such as ErrStagesExhausted to the host
func (e *Engine) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
	e.log.Error("engine failed", zap.Error(err))
	e.Quit()
}

// PointerPosition maps client coordinates onto the logical surface
// The viewport origin is removed before scaling by logical/rendered size
func (e *Engine) PointerPosition(clientX, clientY float64) core.Vec {
	vp := e.surface.Viewport()
	w, h := e.surface.Size()
	pos := core.Vec{X: clientX - vp.X, Y: clientY - vp.Y}
	if vp.Width > 0 {
		pos.X *= w / vp.Width
	}
	if vp.Height > 0 {
		pos.Y *= h / vp.Height
	}
	return pos
}

// tick is the frame callback; frames closer than the interval are dropped, not queued
func (e *Engine) tick(now time.Time) {
	if !e.running {
		return
	}
	if now.Sub(e.last) < e.interval {
		e.pending = e.clock.Request(e.tick)
		return
	}
	e.last = now
	e.renderFrame()
	if e.running {
		e.pending = e.clock.Request(e.tick)
	}
}

// renderFrame runs one accepted frame over the active stage
func (e *Engine) renderFrame() {
	s := e.stages[e.index]
	w, h := e.surface.Size()

	e.surface.Clear()
	e.surface.FillRect(core.Rect{Width: w, Height: h}, e.bg)
	e.frame++
	if s.Timeout > 0 {
		s.Timeout--
	}

	if s.proceed() {
		for _, g := range s.grids {
			g.frame(e.frame, e.surface)
		}
		active := s.Status == core.StatusActive
		for _, ent := range s.entities {
			ent.frame(e.frame, active, e.surface)
		}
	}
	e.surface.Present()
}
