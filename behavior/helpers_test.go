package behavior

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/render"
)

type fill struct {
	rect  core.Rect
	color tcell.Color
}

// fakeSurface records fills
type fakeSurface struct {
	fills []fill
}

func (s *fakeSurface) Size() (float64, float64) { return 960, 640 }
func (s *fakeSurface) Viewport() core.Rect      { return core.Rect{Width: 960, Height: 640} }
func (s *fakeSurface) Clear()                   {}
func (s *fakeSurface) Present()                 {}
func (s *fakeSurface) FillRect(r core.Rect, c tcell.Color) {
	s.fills = append(s.fills, fill{r, c})
}
func (s *fakeSurface) DrawText(float64, float64, string, tcell.Style) {}
func (s *fakeSurface) Capture(core.Rect) *render.Snapshot             { return &render.Snapshot{} }
func (s *fakeSurface) Replay(*render.Snapshot) bool                   { return true }

type cueLog []string

func (c *cueLog) Play(cue string) { *c = append(*c, cue) }

type fixture struct {
	engine *engine.Engine
	stage  *engine.Stage
	grid   *engine.Grid
	cues   *cueLog
}

// newFixture builds an active single-stage engine with one 10-unit grid
func newFixture(t *testing.T, cells [][]int) *fixture {
	t.Helper()
	cues := &cueLog{}
	reg := engine.NewRegistry()
	Register(reg, Options{Rand: rand.New(rand.NewSource(1))})
	e := engine.New(&fakeSurface{}, engine.Options{Clock: engine.NewManualClock(), Registry: reg, Cues: cues})
	s, err := e.CreateStage(engine.StageConfig{})
	if err != nil {
		t.Fatalf("CreateStage: %v", err)
	}
	g, err := s.CreateGrid(engine.GridConfig{CellSize: 10, Data: cells, BehaviorID: IDTiles})
	if err != nil {
		t.Fatalf("CreateGrid: %v", err)
	}
	if _, err := e.SetStage(0); err != nil {
		t.Fatalf("SetStage: %v", err)
	}
	*cues = nil
	return &fixture{engine: e, stage: s, grid: g, cues: cues}
}

func (f *fixture) entity(t *testing.T, cfg engine.EntityConfig) *engine.Entity {
	t.Helper()
	if cfg.Grid == nil && cfg.Coord != nil {
		cfg.Grid = f.grid
	}
	ent, err := f.stage.CreateEntity(cfg)
	if err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}
	return ent
}

// update runs one entity update the way the frame pass does
func update(e *engine.Entity, n int) {
	for i := 0; i < n; i++ {
		e.SyncCoord()
		e.Behavior().Update(e)
	}
}

func open(w, h int) [][]int {
	cells := make([][]int, h)
	for y := range cells {
		cells[y] = make([]int, w)
	}
	return cells
}

func pt(x, y int) *core.Point { return &core.Point{X: x, Y: y} }
