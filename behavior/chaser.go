package behavior

import (
	"math/rand"

	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/navigation"
	"github.com/lixenwraith/gridstage/render"
	"go.uber.org/zap"
)

// ControlCaught is set on a chaser that reached a player's cell, holding the player id
const ControlCaught = "caught"

// Chaser pursues the nearest player on its grid
//
// At every cell centre it re-plans the shortest route to each player sharing its
// grid and follows the shortest one. With no route it wanders to a random open
// neighbour, avoiding the cell it came from unless that is the only way out, and
// plays the blocked cue.
type Chaser struct {
	rng  *rand.Rand
	log  *zap.Logger
	from map[*engine.Entity]core.Point // Cell each chaser last planned from
}

// NewChaser creates a chaser using rng for fallback moves
func NewChaser(rng *rand.Rand, log *zap.Logger) *Chaser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chaser{rng: rng, log: log, from: make(map[*engine.Entity]core.Point)}
}

func (c *Chaser) Update(e *engine.Entity) {
	if e.Grid == nil {
		return
	}
	if centred(e) {
		c.plan(e)
	}
	walk(e)
}

func (c *Chaser) Draw(e *engine.Entity, s render.Surface) {
	drawBox(e, s)
}

func (c *Chaser) plan(e *engine.Entity) {
	from, seen := c.from[e]
	if !seen {
		from = e.Coord
	}
	c.from[e] = e.Coord

	var best []core.Point
	var target *engine.Entity
	for _, p := range e.Stage().EntitiesByKind(core.KindPlayer) {
		if p.Grid != e.Grid {
			continue
		}
		if p.Coord == e.Coord {
			if _, done := e.Control[ControlCaught]; !done {
				e.Control[ControlCaught] = p.ID()
				e.Stage().Engine().Cue(engine.CueHit)
			}
			e.Path = nil
			return
		}
		path := e.Grid.FindPath(e.Coord, p.Coord, navigation.ModePath)
		if len(path) > 0 && (best == nil || len(path) < len(best)) {
			best, target = path, p
		}
	}

	if best != nil {
		e.Path = best
		v := target.Coord
		e.Vector = &v
		return
	}

	e.Vector = nil
	e.Path = nil
	e.Stage().Engine().Cue(engine.CueBlocked)
	next := e.Grid.FindPath(from, e.Coord, navigation.ModeNext)
	if len(next) == 0 && from != e.Coord {
		next = e.Grid.FindPath(e.Coord, e.Coord, navigation.ModeNext)
	}
	if len(next) == 0 {
		c.log.Debug("chaser boxed in", zap.Int("entity", e.ID()), zap.Int("x", e.Coord.X), zap.Int("y", e.Coord.Y))
		return
	}
	e.Path = []core.Point{next[c.rng.Intn(len(next))]}
}
