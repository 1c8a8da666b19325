package engine

import (
	"fmt"
	"math"

	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/navigation"
	"github.com/lixenwraith/gridstage/render"
)

// Default grid parameters
const (
	DefaultCellSize = 20
	DefaultFrames   = 1
)

// GridConfig describes a grid; zero fields take the documented defaults
type GridConfig struct {
	X, Y     float64 // Surface origin, default 0,0
	CellSize float64 // Cell edge length, default 20
	Data     [][]int // Row-major terrain codes, Data[y][x]; 0 open, >= 1 obstacle
	Frames   int     // Animation divisor, default 1
	Cache    bool    // Draw once and replay the snapshot afterwards

	Behavior   GridBehavior // Takes precedence over BehaviorID
	BehaviorID string       // Registry identifier
}

func (c GridConfig) withDefaults() GridConfig {
	if c.CellSize == 0 {
		c.CellSize = DefaultCellSize
	}
	if c.Frames == 0 {
		c.Frames = DefaultFrames
	}
	return c
}

func (c GridConfig) validate() error {
	if c.CellSize < 0 {
		return fmt.Errorf("cell size %v: %w", c.CellSize, ErrInvalidGrid)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames %d: %w", c.Frames, ErrInvalidGrid)
	}
	if len(c.Data) == 0 || len(c.Data[0]) == 0 {
		return fmt.Errorf("empty cell data: %w", ErrInvalidGrid)
	}
	width := len(c.Data[0])
	for y, row := range c.Data {
		if len(row) != width {
			return fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrInvalidGrid)
		}
	}
	return nil
}

// Grid is a fixed-cell terrain map owned by a stage
type Grid struct {
	id     int
	stage  *Stage
	params GridConfig // Construction parameters, Data deep-copied

	X, Y     float64
	CellSize float64
	Frames   int
	Times    int // Frame counter divided by Frames, updated on divisible frames
	Cache    bool

	data       [][]int
	xLen, yLen int
	snapshot   *render.Snapshot
	behavior   GridBehavior
}

func newGrid(cfg GridConfig, behavior GridBehavior) *Grid {
	cfg.Data = copyCells(cfg.Data)
	g := &Grid{params: cfg, behavior: behavior}
	g.Reset()
	return g
}

// ID returns the grid's insertion index within its stage
func (g *Grid) ID() int { return g.id }

// Stage returns the owning stage
func (g *Grid) Stage() *Stage { return g.stage }

// Behavior returns the grid's behavior
func (g *Grid) Behavior() GridBehavior { return g.behavior }

// Reset restores construction parameters, rebuilds cell data and drops the cached snapshot
func (g *Grid) Reset() {
	p := g.params
	g.X, g.Y = p.X, p.Y
	g.CellSize = p.CellSize
	g.Frames = p.Frames
	g.Times = 0
	g.Cache = p.Cache
	g.data = copyCells(p.Data)
	g.yLen = len(g.data)
	g.xLen = 0
	if g.yLen > 0 {
		g.xLen = len(g.data[0])
	}
	g.snapshot = nil
}

// XLength returns the number of columns
func (g *Grid) XLength() int { return g.xLen }

// YLength returns the number of rows
func (g *Grid) YLength() int { return g.yLen }

// Size returns the grid dimensions in cells
func (g *Grid) Size() (int, int) { return g.xLen, g.yLen }

// Get returns the value at (x, y), or -1 outside the grid
func (g *Grid) Get(x, y int) int {
	if y < 0 || y >= len(g.data) || x < 0 || x >= len(g.data[y]) {
		return -1
	}
	return g.data[y][x]
}

// Set overwrites the value at (x, y), no-op outside the grid
func (g *Grid) Set(x, y, value int) {
	if y < 0 || y >= len(g.data) || x < 0 || x >= len(g.data[y]) {
		return
	}
	g.data[y][x] = value
}

// Data returns a copy of the current cell data
func (g *Grid) Data() [][]int {
	return copyCells(g.data)
}

// CellToSurface returns the surface coordinate of the centre of cell (cx, cy)
func (g *Grid) CellToSurface(cx, cy int) core.Vec {
	return core.Vec{
		X: g.X + float64(cx)*g.CellSize + g.CellSize/2,
		Y: g.Y + float64(cy)*g.CellSize + g.CellSize/2,
	}
}

// SurfaceToCell returns the cell containing (x, y) and the distance of the point
// from that cell's centre; offset 0 means the point sits exactly on the centre
func (g *Grid) SurfaceToCell(x, y float64) (core.Point, float64) {
	dx, dy := x-g.X, y-g.Y
	fx := positiveMod(dx, g.CellSize) - g.CellSize/2
	fy := positiveMod(dy, g.CellSize) - g.CellSize/2
	return core.Point{
		X: int(math.Floor(dx / g.CellSize)),
		Y: int(math.Floor(dy / g.CellSize)),
	}, math.Hypot(fx, fy)
}

// Bounds returns the surface rectangle covered by the grid
func (g *Grid) Bounds() core.Rect {
	return core.Rect{
		X:      g.X,
		Y:      g.Y,
		Width:  float64(g.xLen) * g.CellSize,
		Height: float64(g.yLen) * g.CellSize,
	}
}

// CellRect returns the surface rectangle of cell (cx, cy)
func (g *Grid) CellRect(cx, cy int) core.Rect {
	return core.Rect{
		X:      g.X + float64(cx)*g.CellSize,
		Y:      g.Y + float64(cy)*g.CellSize,
		Width:  g.CellSize,
		Height: g.CellSize,
	}
}

// FindPath runs the pathfinder over this grid's current data
func (g *Grid) FindPath(start, end core.Point, mode navigation.Mode) []core.Point {
	return navigation.FindPath(g, start, end, mode)
}

// Walkable reports whether (x, y) is inside the grid and not an obstacle
func (g *Grid) Walkable(x, y int) bool {
	v := g.Get(x, y)
	return v >= 0 && !navigation.Blocked(v)
}

// Snapshot returns the cached rendering, nil when none is held
func (g *Grid) Snapshot() *render.Snapshot { return g.snapshot }

// Invalidate drops the cached rendering so the next frame redraws the grid
func (g *Grid) Invalidate() { g.snapshot = nil }

// frame runs the per-frame grid pass
func (g *Grid) frame(frame uint64, s render.Surface) {
	if g.Frames > 0 && frame%uint64(g.Frames) == 0 {
		g.Times = int(frame / uint64(g.Frames))
	}
	if !g.Cache {
		g.behavior.Update(g)
		g.behavior.Draw(g, s)
		return
	}
	if g.snapshot != nil && s.Replay(g.snapshot) {
		return
	}
	g.behavior.Draw(g, s)
	g.snapshot = s.Capture(g.Bounds())
}

func copyCells(src [][]int) [][]int {
	if src == nil {
		return nil
	}
	dst := make([][]int, len(src))
	for i, row := range src {
		dst[i] = append([]int(nil), row...)
	}
	return dst
}

func positiveMod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}
