package engine

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Input event types produced by the input pump
const (
	EventClick     = "click"
	EventMouseDown = "mousedown"
	EventMouseUp   = "mouseup"
	EventMouseMove = "mousemove"
	EventKeyDown   = "keydown"
	EventResize    = "resize"
)

// InputEvent is a raw input event in client coordinates
type InputEvent struct {
	Type    string
	ClientX float64
	ClientY float64
	Buttons tcell.ButtonMask
	Key     tcell.Key
	Rune    rune
	Mods    tcell.ModMask

	// Handled is set once the engine routed the event to its listeners,
	// the host should then suppress its own default handling
	Handled bool
}

type (
	// EntityHandler handles a pointer event that hit its entity
	EntityHandler func(e *Entity, ev *InputEvent)

	// StageHandler handles an event while its stage is active
	StageHandler func(s *Stage, ev *InputEvent)
)

type entityKey struct {
	stage  int
	entity int
	event  string
}

type stageKey struct {
	stage int
	event string
}

// router is the event-dispatch table
// surface/window record which event types have a listener attached
type router struct {
	surface  map[string]bool
	window   map[string]bool
	entities map[entityKey]EntityHandler
	stages   map[stageKey]StageHandler
}

func newRouter() *router {
	return &router{
		surface:  make(map[string]bool),
		window:   make(map[string]bool),
		entities: make(map[entityKey]EntityHandler),
		stages:   make(map[stageKey]StageHandler),
	}
}

func (e *Engine) bindEntity(key entityKey, fn EntityHandler) {
	if !e.router.surface[key.event] {
		e.router.surface[key.event] = true
		e.log.Debug("surface listener attached", zap.String("event", key.event))
	}
	e.router.entities[key] = fn
}

func (e *Engine) bindStage(key stageKey, fn StageHandler) {
	if !e.router.window[key.event] {
		e.router.window[key.event] = true
		e.log.Debug("window listener attached", zap.String("event", key.event))
	}
	e.router.stages[key] = fn
}

// Listening reports whether any handler was ever bound for eventType
func (e *Engine) Listening(eventType string) bool {
	return e.router.surface[eventType] || e.router.window[eventType]
}

// Dispatch routes ev to the active stage's handlers
//
// Entity handlers are hit-tested against every entity of the active stage using the
// pointer position mapped onto the surface; the stage handler for the type runs
// without hit-testing. Must be called on the engine loop.
func (e *Engine) Dispatch(ev *InputEvent) {
	if len(e.stages) == 0 {
		return
	}
	index := e.index
	stage := e.stages[index]

	if e.router.surface[ev.Type] {
		pos := e.PointerPosition(ev.ClientX, ev.ClientY)
		// Handlers may switch stage; keep walking the stage the event arrived on
		for _, ent := range stage.entities {
			if !ent.Bounds().Contains(pos) {
				continue
			}
			if h := e.router.entities[entityKey{stage: index, entity: ent.id, event: ev.Type}]; h != nil {
				h(ent, ev)
			}
		}
		ev.Handled = true
	}

	if e.router.window[ev.Type] {
		if h := e.router.stages[stageKey{stage: index, event: ev.Type}]; h != nil {
			h(stage, ev)
		}
		ev.Handled = true
	}
}
