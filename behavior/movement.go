package behavior

import (
	"math"

	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/navigation"
)

// centreEpsilon is the distance under which an entity counts as centred in its cell
const centreEpsilon = 1e-6

// centred reports whether a grid-bound entity sits on the centre of its cell
func centred(e *engine.Entity) bool {
	return e.Offset < centreEpsilon
}

// neighbour returns the cell next to c in direction d, wrapped onto the grid
func neighbour(g *engine.Grid, c core.Point, d core.Direction) core.Point {
	w, h := g.Size()
	return navigation.Wrap(c.Add(d.Delta()), w, h)
}

// canEnter reports whether the wrapped neighbour of c in direction d is walkable
func canEnter(g *engine.Grid, c core.Point, d core.Direction) bool {
	n := neighbour(g, c, d)
	return g.Walkable(n.X, n.Y)
}

// direction returns the direction leading from a to its wrapped neighbour b
func direction(g *engine.Grid, a, b core.Point) (core.Direction, bool) {
	for d := core.DirRight; d < core.DirCount; d++ {
		if neighbour(g, a, d) == b {
			return d, true
		}
	}
	return 0, false
}

// advance moves e by up to Speed along its orientation, stopping on the next cell centre
// Entities without a grid move freely; grid-bound entities stop at walls and wrap at edges.
// Returns false when the entity could not move.
func advance(e *engine.Entity) bool {
	if e.Speed <= 0 {
		return false
	}
	delta := e.Orientation.Delta()
	if e.Grid == nil {
		e.X += float64(delta.X) * e.Speed
		e.Y += float64(delta.Y) * e.Speed
		return true
	}

	g := e.Grid
	// Target is the next cell centre ahead, the own centre when approaching it
	target := e.Coord
	here := g.CellToSurface(e.Coord.X, e.Coord.Y)
	ahead := (here.X-e.X)*float64(delta.X) + (here.Y-e.Y)*float64(delta.Y)
	if centred(e) || ahead <= 0 {
		if centred(e) && !canEnter(g, e.Coord, e.Orientation) {
			return false
		}
		target = e.Coord.Add(delta)
	}
	dest := g.CellToSurface(target.X, target.Y)
	dist := math.Hypot(dest.X-e.X, dest.Y-e.Y)
	step := math.Min(e.Speed, dist)

	e.X += float64(delta.X) * step
	e.Y += float64(delta.Y) * step
	wrapPosition(e)
	e.SyncCoord()
	return true
}

// wrapPosition folds a position that left the grid back onto the opposite edge
func wrapPosition(e *engine.Entity) {
	b := e.Grid.Bounds()
	if b.Width > 0 {
		e.X = b.X + positiveMod(e.X-b.X, b.Width)
	}
	if b.Height > 0 {
		e.Y = b.Y + positiveMod(e.Y-b.Y, b.Height)
	}
}

func positiveMod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}
