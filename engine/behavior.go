package engine

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/gridstage/render"
)

// EntityBehavior supplies per-frame logic and drawing for an entity
// Update runs only while the stage is active and the entity not paused; Draw runs every frame
type EntityBehavior interface {
	Update(e *Entity)
	Draw(e *Entity, s render.Surface)
}

// EntityAttacher is implemented by behaviors that install input bindings
// Attach runs once, when the entity is created
type EntityAttacher interface {
	Attach(e *Entity)
}

// GridBehavior supplies per-frame logic and drawing for a grid
type GridBehavior interface {
	Update(g *Grid)
	Draw(g *Grid, s render.Surface)
}

// StageHook decides each frame whether the stage's grids and entities are processed
type StageHook interface {
	Proceed(s *Stage) bool
}

// EntityFuncs adapts plain functions to EntityBehavior, nil fields are no-ops
type EntityFuncs struct {
	UpdateFn func(e *Entity)
	DrawFn   func(e *Entity, s render.Surface)
}

func (f EntityFuncs) Update(e *Entity) {
	if f.UpdateFn != nil {
		f.UpdateFn(e)
	}
}

func (f EntityFuncs) Draw(e *Entity, s render.Surface) {
	if f.DrawFn != nil {
		f.DrawFn(e, s)
	}
}

// GridFuncs adapts plain functions to GridBehavior, nil fields are no-ops
type GridFuncs struct {
	UpdateFn func(g *Grid)
	DrawFn   func(g *Grid, s render.Surface)
}

func (f GridFuncs) Update(g *Grid) {
	if f.UpdateFn != nil {
		f.UpdateFn(g)
	}
}

func (f GridFuncs) Draw(g *Grid, s render.Surface) {
	if f.DrawFn != nil {
		f.DrawFn(g, s)
	}
}

// HookFunc adapts a function to StageHook
type HookFunc func(s *Stage) bool

func (f HookFunc) Proceed(s *Stage) bool { return f(s) }

// Registry maps stable identifiers to behaviors so content can select them by name
type Registry struct {
	entities map[string]EntityBehavior
	grids    map[string]GridBehavior
	hooks    map[string]StageHook
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]EntityBehavior),
		grids:    make(map[string]GridBehavior),
		hooks:    make(map[string]StageHook),
	}
}

// RegisterEntity binds id to an entity behavior, replacing any previous binding
func (r *Registry) RegisterEntity(id string, b EntityBehavior) {
	r.entities[id] = b
}

// RegisterGrid binds id to a grid behavior, replacing any previous binding
func (r *Registry) RegisterGrid(id string, b GridBehavior) {
	r.grids[id] = b
}

// RegisterHook binds id to a stage hook, replacing any previous binding
func (r *Registry) RegisterHook(id string, h StageHook) {
	r.hooks[id] = h
}

// Entity resolves an entity behavior by id
func (r *Registry) Entity(id string) (EntityBehavior, error) {
	if b, ok := r.entities[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("entity behavior %q: %w", id, ErrUnknownBehavior)
}

// Grid resolves a grid behavior by id
func (r *Registry) Grid(id string) (GridBehavior, error) {
	if b, ok := r.grids[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("grid behavior %q: %w", id, ErrUnknownBehavior)
}

// Hook resolves a stage hook by id
func (r *Registry) Hook(id string) (StageHook, error) {
	if h, ok := r.hooks[id]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("stage hook %q: %w", id, ErrUnknownBehavior)
}

// EntityIDs returns the registered entity behavior ids, sorted
func (r *Registry) EntityIDs() []string {
	ids := make([]string, 0, len(r.entities))
	for id := range r.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var (
	nopEntity = EntityFuncs{}
	nopGrid   = GridFuncs{}
)
