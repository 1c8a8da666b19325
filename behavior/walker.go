package behavior

import (
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/render"
)

// Walker moves a grid-bound entity along its queued Path, one cell at a time
type Walker struct{}

func (Walker) Update(e *engine.Entity) {
	walk(e)
}

func (Walker) Draw(e *engine.Entity, s render.Surface) {
	drawBox(e, s)
}

// walk advances e along e.Path; a path step that is not adjacent clears the path
// Returns false when the entity has nowhere to go
func walk(e *engine.Entity) bool {
	if e.Grid == nil {
		return false
	}
	if !centred(e) {
		return advance(e)
	}
	for len(e.Path) > 0 && e.Path[0] == e.Coord {
		e.Path = e.Path[1:]
	}
	if len(e.Path) == 0 {
		return false
	}
	dir, ok := direction(e.Grid, e.Coord, e.Path[0])
	if !ok {
		e.Path = nil
		return false
	}
	e.Orientation = dir
	return advance(e)
}
