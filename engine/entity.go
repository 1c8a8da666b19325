package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/render"
)

// Default entity parameters
const (
	DefaultEntityWidth  = 20
	DefaultEntityHeight = 20
)

// DefaultEntityColor is used when a config leaves Color unset
var DefaultEntityColor = tcell.NewHexColor(0xFF0000)

// EntityConfig describes an entity; zero fields take the documented defaults
type EntityConfig struct {
	X, Y          float64        // Surface position, default 0,0; derived from Coord when bound to a grid
	Width, Height float64        // Hit-test box, default 20x20
	Kind          core.Kind      // Default passive
	Color         tcell.Color    // Default red
	Status        *core.Status   // Default active
	Orientation   core.Direction // Default right
	Speed         float64        // Surface units per update
	Grid          *Grid          // Optional grid binding
	Coord         *core.Point    // Cell on Grid, required with Grid
	Path          []core.Point   // Queued cells to walk
	Vector        *core.Point    // Target cell
	Frames        int            // Animation divisor, default 1
	Timeout       int            // Countdown in updates
	Control       map[string]any // Content-defined control state

	Behavior   EntityBehavior // Takes precedence over BehaviorID
	BehaviorID string         // Registry identifier
}

func (c EntityConfig) withDefaults() EntityConfig {
	if c.Width == 0 {
		c.Width = DefaultEntityWidth
	}
	if c.Height == 0 {
		c.Height = DefaultEntityHeight
	}
	if c.Color == tcell.ColorDefault {
		c.Color = DefaultEntityColor
	}
	if c.Status == nil {
		c.Status = core.StatusActive.Ptr()
	}
	if c.Frames == 0 {
		c.Frames = DefaultFrames
	}
	return c
}

func (c EntityConfig) validate() error {
	if c.Grid != nil && c.Coord == nil {
		return fmt.Errorf("grid binding without cell: %w", ErrInvalidEntity)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size %vx%v: %w", c.Width, c.Height, ErrInvalidEntity)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames %d: %w", c.Frames, ErrInvalidEntity)
	}
	return nil
}

// Entity is a positioned object with behavior hooks, owned by a stage
// Fields are mutable state for behaviors to read and write each frame
type Entity struct {
	id     int
	stage  *Stage
	params EntityConfig

	X, Y          float64
	Width, Height float64
	Kind          core.Kind
	Color         tcell.Color
	Status        core.Status
	Orientation   core.Direction
	Speed         float64
	Grid          *Grid
	Coord         core.Point // Cell under the entity, re-derived each update when bound
	Offset        float64    // Distance from the centre of Coord
	Path          []core.Point
	Vector        *core.Point
	Frames        int
	Times         int
	Timeout       int
	Control       map[string]any

	behavior EntityBehavior
}

func newEntity(cfg EntityConfig, behavior EntityBehavior) *Entity {
	e := &Entity{params: cfg, behavior: behavior}
	e.Reset()
	return e
}

// ID returns the entity's insertion index within its stage
func (e *Entity) ID() int { return e.id }

// Stage returns the owning stage
func (e *Entity) Stage() *Stage { return e.stage }

// Behavior returns the entity's behavior
func (e *Entity) Behavior() EntityBehavior { return e.behavior }

// Reset restores construction parameters and re-derives the surface position
func (e *Entity) Reset() {
	p := e.params
	e.X, e.Y = p.X, p.Y
	e.Width, e.Height = p.Width, p.Height
	e.Kind = p.Kind
	e.Color = p.Color
	e.Status = *p.Status
	e.Orientation = p.Orientation
	e.Speed = p.Speed
	e.Grid = p.Grid
	e.Coord = core.Point{}
	e.Offset = 0
	e.Path = slices.Clone(p.Path)
	e.Vector = nil
	if p.Vector != nil {
		v := *p.Vector
		e.Vector = &v
	}
	e.Frames = p.Frames
	e.Times = 0
	e.Timeout = p.Timeout
	e.Control = maps.Clone(p.Control)
	if e.Control == nil {
		e.Control = make(map[string]any)
	}

	if e.Grid != nil && p.Coord != nil {
		e.Coord = *p.Coord
		pos := e.Grid.CellToSurface(p.Coord.X, p.Coord.Y)
		e.X, e.Y = pos.X, pos.Y
	}
}

// Bounds returns the hit-test box [x, x+width] × [y, y+height]
func (e *Entity) Bounds() core.Rect {
	return core.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Position returns the surface position
func (e *Entity) Position() core.Vec {
	return core.Vec{X: e.X, Y: e.Y}
}

// Bind registers a handler for eventType scoped to this entity
// The handler runs when a pointer event of that type lands inside the entity's bounds
// while its stage is active; a later Bind for the same type replaces it
func (e *Entity) Bind(eventType string, fn func(e *Entity, ev *InputEvent)) {
	e.stage.engine.bindEntity(entityKey{stage: e.stage.index, entity: e.id, event: eventType}, fn)
}

// SyncCoord re-derives Coord and Offset from the surface position
func (e *Entity) SyncCoord() {
	if e.Grid == nil {
		return
	}
	e.Coord, e.Offset = e.Grid.SurfaceToCell(e.X, e.Y)
}

// frame runs the per-frame entity pass
func (e *Entity) frame(frame uint64, stageActive bool, s render.Surface) {
	if e.Frames > 0 && frame%uint64(e.Frames) == 0 {
		e.Times = int(frame / uint64(e.Frames))
	}
	if stageActive && e.Status != core.StatusPaused {
		e.SyncCoord()
		if e.Timeout > 0 {
			e.Timeout--
		}
		e.behavior.Update(e)
	}
	e.behavior.Draw(e, s)
}
