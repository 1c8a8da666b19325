package content

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/maze"
)

// Build creates every stage of lvl on e in file order
func Build(e *engine.Engine, lvl *Level) error {
	for si := range lvl.Stages {
		if err := buildStage(e, &lvl.Stages[si]); err != nil {
			return fmt.Errorf("stage %d: %w", si, err)
		}
	}
	return nil
}

func buildStage(e *engine.Engine, def *StageDef) error {
	s, err := e.CreateStage(engine.StageConfig{
		Name:    def.Name,
		Timeout: def.Timeout,
		Audio:   def.Audio,
		Images:  def.Images,
		HookID:  def.Hook,
	})
	if err != nil {
		return err
	}

	grids := make([]*engine.Grid, len(def.Grids))
	mazes := make([]*maze.Result, len(def.Grids))
	for gi, gd := range def.Grids {
		data := gd.Data
		if gd.Maze != nil {
			res := maze.Generate(maze.Config{
				Width:       gd.Maze.Width,
				Height:      gd.Maze.Height,
				Braiding:    gd.Maze.Braiding,
				OpenBorders: gd.Maze.OpenBorders,
				Seed:        gd.Maze.Seed,
			})
			mazes[gi] = &res
			data = res.Cells
		}
		g, err := s.CreateGrid(engine.GridConfig{
			X:          gd.X,
			Y:          gd.Y,
			CellSize:   gd.Size,
			Data:       data,
			Frames:     gd.Frames,
			Cache:      gd.Cache,
			BehaviorID: gd.Behavior,
		})
		if err != nil {
			return fmt.Errorf("grid %d: %w", gi, err)
		}
		grids[gi] = g
	}

	for ei := range def.Entities {
		cfg, err := entityConfig(&def.Entities[ei], grids, mazes)
		if err != nil {
			return fmt.Errorf("entity %d: %w", ei, err)
		}
		if _, err := s.CreateEntity(cfg); err != nil {
			return fmt.Errorf("entity %d: %w", ei, err)
		}
	}
	return nil
}

func entityConfig(def *EntityDef, grids []*engine.Grid, mazes []*maze.Result) (engine.EntityConfig, error) {
	cfg := engine.EntityConfig{
		X:          def.X,
		Y:          def.Y,
		Width:      def.Width,
		Height:     def.Height,
		Speed:      def.Speed,
		Frames:     def.Frames,
		Timeout:    def.Timeout,
		BehaviorID: def.Behavior,
		Control:    def.Control,
	}

	if def.Type != "" {
		k, err := core.ParseKind(def.Type)
		if err != nil {
			return cfg, err
		}
		cfg.Kind = k
	}
	if def.Status != "" {
		st, err := core.ParseStatus(def.Status)
		if err != nil {
			return cfg, err
		}
		cfg.Status = st.Ptr()
	}
	if def.Orientation != "" {
		d, err := core.ParseDirection(def.Orientation)
		if err != nil {
			return cfg, err
		}
		cfg.Orientation = d
	}
	if def.Color != "" {
		c := tcell.GetColor(def.Color)
		if c == tcell.ColorDefault {
			return cfg, fmt.Errorf("unknown color %q", def.Color)
		}
		cfg.Color = c
	}

	for _, p := range def.Path {
		cfg.Path = append(cfg.Path, core.Point{X: p.X, Y: p.Y})
	}

	if def.Grid == nil {
		return cfg, nil
	}
	cfg.Grid = grids[*def.Grid]
	m := mazes[*def.Grid]
	switch {
	case def.At == AtStart:
		cfg.Coord = &core.Point{X: m.Start.X, Y: m.Start.Y}
	case def.At == AtEnd:
		cfg.Coord = &core.Point{X: m.End.X, Y: m.End.Y}
	default:
		cfg.Coord = &core.Point{X: def.Coord.X, Y: def.Coord.Y}
	}
	if def.Follow == FollowSolution && m != nil {
		cfg.Path = append([]core.Point(nil), m.Solution...)
	}
	return cfg, nil
}
