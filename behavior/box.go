package behavior

import (
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/render"
)

// Box draws an entity as a filled rectangle and toggles pause when clicked
type Box struct{}

func (Box) Attach(e *engine.Entity) {
	e.Bind(engine.EventClick, func(e *engine.Entity, _ *engine.InputEvent) {
		switch e.Status {
		case core.StatusActive:
			e.Status = core.StatusPaused
		case core.StatusPaused:
			e.Status = core.StatusActive
		}
		e.Stage().Engine().Cue(engine.CueHit)
	})
}

func (Box) Update(*engine.Entity) {}

func (Box) Draw(e *engine.Entity, s render.Surface) {
	drawBox(e, s)
}

// drawBox fills the entity's rectangle; grid-bound entities are centred on their position
func drawBox(e *engine.Entity, s render.Surface) {
	r := e.Bounds()
	if e.Grid != nil {
		r.X -= r.Width / 2
		r.Y -= r.Height / 2
	}
	s.FillRect(r, e.Color)
}
