package engine

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/gridstage/core"
)

// StageConfig describes a stage; zero fields take the documented defaults
type StageConfig struct {
	Name    string
	Timeout int      // Countdown in frames
	Audio   []string // Opaque asset references
	Images  []string // Opaque asset references

	Hook   StageHook // Takes precedence over HookID; nil proceeds every frame
	HookID string    // Registry identifier
}

// Stage is one scene: an ordered set of grids and entities sharing a lifecycle
type Stage struct {
	index  int
	engine *Engine
	params StageConfig

	Name    string
	Status  core.Status
	Timeout int
	Audio   []string
	Images  []string

	grids    []*Grid
	entities []*Entity
	hook     StageHook
}

func newStage(e *Engine, cfg StageConfig, hook StageHook) *Stage {
	s := &Stage{engine: e, params: cfg, hook: hook}
	s.restore()
	return s
}

// Index returns the stage's position in the engine's stage list
func (s *Stage) Index() int { return s.index }

// Engine returns the owning engine
func (s *Stage) Engine() *Engine { return s.engine }

// Grids returns the stage's grids in insertion order
func (s *Stage) Grids() []*Grid { return s.grids }

// Entities returns the stage's entities in insertion order
func (s *Stage) Entities() []*Entity { return s.entities }

// Grid returns the grid with the given id, nil when out of range
func (s *Stage) Grid(id int) *Grid {
	if id < 0 || id >= len(s.grids) {
		return nil
	}
	return s.grids[id]
}

// Entity returns the entity with the given id, nil when out of range
func (s *Stage) Entity(id int) *Entity {
	if id < 0 || id >= len(s.entities) {
		return nil
	}
	return s.entities[id]
}

// CreateGrid builds a grid from cfg, deep-copying its cell data, and appends it
func (s *Stage) CreateGrid(cfg GridConfig) (*Grid, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("stage %d grid %d: %w", s.index, len(s.grids), err)
	}
	behavior := cfg.Behavior
	if behavior == nil {
		behavior = nopGrid
		if cfg.BehaviorID != "" {
			b, err := s.engine.registry.Grid(cfg.BehaviorID)
			if err != nil {
				return nil, fmt.Errorf("stage %d grid %d: %w", s.index, len(s.grids), err)
			}
			behavior = b
		}
	}

	g := newGrid(cfg, behavior)
	g.stage = s
	g.id = len(s.grids)
	s.grids = append(s.grids, g)
	return g, nil
}

// CreateEntity builds an entity from cfg, places it on its grid cell when bound, and appends it
func (s *Stage) CreateEntity(cfg EntityConfig) (*Entity, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("stage %d entity %d: %w", s.index, len(s.entities), err)
	}
	behavior := cfg.Behavior
	if behavior == nil {
		behavior = nopEntity
		if cfg.BehaviorID != "" {
			b, err := s.engine.registry.Entity(cfg.BehaviorID)
			if err != nil {
				return nil, fmt.Errorf("stage %d entity %d: %w", s.index, len(s.entities), err)
			}
			behavior = b
		}
	}
	cfg.Path = slices.Clone(cfg.Path)

	ent := newEntity(cfg, behavior)
	ent.stage = s
	ent.id = len(s.entities)
	s.entities = append(s.entities, ent)

	if a, ok := behavior.(EntityAttacher); ok {
		a.Attach(ent)
	}
	return ent, nil
}

// EntitiesByKind returns the entities of kind k in insertion order
func (s *Stage) EntitiesByKind(k core.Kind) []*Entity {
	var out []*Entity
	for _, ent := range s.entities {
		if ent.Kind == k {
			out = append(out, ent)
		}
	}
	return out
}

// ResetEntities restores every entity to its construction state and marks the stage active
func (s *Stage) ResetEntities() {
	s.Status = core.StatusActive
	for _, ent := range s.entities {
		ent.Reset()
	}
}

// ResetGrids rebuilds every grid from its construction parameters and marks the stage active
func (s *Stage) ResetGrids() {
	s.Status = core.StatusActive
	for _, g := range s.grids {
		g.Reset()
	}
}

// Reset restores the stage, its entities and its grids, leaving the stage active
func (s *Stage) Reset() {
	s.restore()
	s.ResetEntities()
	s.ResetGrids()
}

// Bind registers the stage-scoped handler for eventType, replacing any earlier one
// It runs for every event of that type while this stage is active, without hit-testing
func (s *Stage) Bind(eventType string, fn func(s *Stage, ev *InputEvent)) {
	s.engine.bindStage(stageKey{stage: s.index, event: eventType}, fn)
}

// proceed asks the hook whether this frame's grid and entity pass runs
func (s *Stage) proceed() bool {
	if s.hook == nil {
		return true
	}
	return s.hook.Proceed(s)
}

func (s *Stage) restore() {
	p := s.params
	s.Name = p.Name
	s.Status = core.StatusInactive
	s.Timeout = p.Timeout
	s.Audio = slices.Clone(p.Audio)
	s.Images = slices.Clone(p.Images)
}
