package behavior

import (
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/input"
	"github.com/lixenwraith/gridstage/render"
)

// ControlTurn is the Control key holding a player's requested direction
const ControlTurn = "turn"

// Keyboard steers player entities from key events
//
// Steering keys request a turn, taken at the next cell centre where the new
// direction is open; reversing is immediate.
type Keyboard struct{}

// Attach binds the stage key handler; it steers every player entity of the stage
func (k *Keyboard) Attach(e *engine.Entity) {
	e.Stage().Bind(engine.EventKeyDown, func(s *engine.Stage, ev *engine.InputEvent) {
		dir, ok := input.Steering(ev)
		if !ok {
			return
		}
		for _, p := range s.EntitiesByKind(core.KindPlayer) {
			p.Control[ControlTurn] = dir
		}
	})
}

func (k *Keyboard) Update(e *engine.Entity) {
	if turn, ok := e.Control[ControlTurn].(core.Direction); ok {
		switch {
		case e.Grid == nil || turn == e.Orientation.Opposite():
			e.Orientation = turn
			delete(e.Control, ControlTurn)
		case centred(e) && canEnter(e.Grid, e.Coord, turn):
			e.Orientation = turn
			delete(e.Control, ControlTurn)
		}
	}
	advance(e)
}

func (k *Keyboard) Draw(e *engine.Entity, s render.Surface) {
	drawBox(e, s)
}
