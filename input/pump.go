package input

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"go.uber.org/zap"
)

// Target receives translated events; Post must be goroutine safe and Dispatch
// runs on the goroutine that executes posted callbacks
type Target interface {
	Post(fn func())
	Dispatch(ev *engine.InputEvent)
}

// Pump reads a tcell screen and forwards its events onto the engine loop
type Pump struct {
	screen     tcell.Screen
	target     Target
	log        *zap.Logger
	translator *Translator
	onQuit     func()
	onResize   func()

	forwarded atomic.Uint64
	done      chan struct{}
}

// PumpOption configures a Pump
type PumpOption func(*Pump)

// WithLogger sets the pump logger
func WithLogger(log *zap.Logger) PumpOption {
	return func(p *Pump) { p.log = log }
}

// WithQuit sets the callback run on the engine loop for quit keys
// Without it quit keys are dispatched like any other key
func WithQuit(fn func()) PumpOption {
	return func(p *Pump) { p.onQuit = fn }
}

// WithResize sets a callback run on the engine loop before a resize event is dispatched
func WithResize(fn func()) PumpOption {
	return func(p *Pump) { p.onResize = fn }
}

// NewPump creates a pump reading from screen
func NewPump(screen tcell.Screen, target Target, opts ...PumpOption) *Pump {
	p := &Pump{
		screen:     screen,
		target:     target,
		log:        zap.NewNop(),
		translator: NewTranslator(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the polling goroutine; it ends when the screen is finalised
func (p *Pump) Start() {
	core.Go(p.run)
}

// Done is closed when the polling goroutine exits
func (p *Pump) Done() <-chan struct{} {
	return p.done
}

// Forwarded returns the number of events posted to the target
func (p *Pump) Forwarded() uint64 {
	return p.forwarded.Load()
}

func (p *Pump) run() {
	defer close(p.done)
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			p.log.Debug("input pump stopped", zap.Uint64("forwarded", p.forwarded.Load()))
			return
		}
		for _, in := range p.translator.Translate(ev) {
			p.forward(in)
		}
	}
}

func (p *Pump) forward(ev *engine.InputEvent) {
	p.forwarded.Add(1)
	switch {
	case p.onQuit != nil && IsQuit(ev):
		p.target.Post(p.onQuit)
	case ev.Type == engine.EventResize:
		p.target.Post(func() {
			if p.onResize != nil {
				p.onResize()
			}
			p.target.Dispatch(ev)
		})
	default:
		p.target.Post(func() { p.target.Dispatch(ev) })
	}
}
