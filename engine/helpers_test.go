package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/render"
)

// recordingSurface is a Surface that logs every call
type recordingSurface struct {
	width, height float64
	viewport      core.Rect
	ops           []string
	captures      int
	replays       int
	stale         bool // Replay reports a stale snapshot
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		width:    960,
		height:   640,
		viewport: core.Rect{Width: 960, Height: 640},
	}
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }
func (s *recordingSurface) Viewport() core.Rect      { return s.viewport }
func (s *recordingSurface) Clear()                   { s.ops = append(s.ops, "clear") }
func (s *recordingSurface) Present()                 { s.ops = append(s.ops, "present") }

func (s *recordingSurface) FillRect(r core.Rect, color tcell.Color) {
	s.ops = append(s.ops, fmt.Sprintf("fill %v,%v %vx%v", r.X, r.Y, r.Width, r.Height))
}

func (s *recordingSurface) DrawText(x, y float64, text string, style tcell.Style) {
	s.ops = append(s.ops, "text "+text)
}

func (s *recordingSurface) Capture(r core.Rect) *render.Snapshot {
	s.captures++
	s.ops = append(s.ops, "capture")
	return &render.Snapshot{}
}

func (s *recordingSurface) Replay(snap *render.Snapshot) bool {
	if snap == nil || s.stale {
		return false
	}
	s.replays++
	s.ops = append(s.ops, "replay")
	return true
}

func (s *recordingSurface) mark(op string) {
	s.ops = append(s.ops, op)
}

// testEngine wires an engine to a manual clock and a mock time source
type testEngine struct {
	*Engine
	surface *recordingSurface
	clock   *ManualClock
	time    *MockTimeProvider
}

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	surface := newRecordingSurface()
	clock := NewManualClock()
	tp := NewMockTimeProvider(epoch)
	e := New(surface, Options{Clock: clock, Time: tp, Registry: NewRegistry()})
	return &testEngine{Engine: e, surface: surface, clock: clock, time: tp}
}

// advance moves time forward by d and fires the pending frame
func (te *testEngine) advance(t *testing.T, d time.Duration) {
	t.Helper()
	now := te.time.Advance(d)
	if !te.clock.Fire(now) {
		t.Fatalf("no frame pending at +%v", now.Sub(epoch))
	}
}

func mustStage(t *testing.T, e *Engine, cfg StageConfig) *Stage {
	t.Helper()
	s, err := e.CreateStage(cfg)
	if err != nil {
		t.Fatalf("CreateStage: %v", err)
	}
	return s
}

func mustGrid(t *testing.T, s *Stage, cfg GridConfig) *Grid {
	t.Helper()
	g, err := s.CreateGrid(cfg)
	if err != nil {
		t.Fatalf("CreateGrid: %v", err)
	}
	return g
}

func mustEntity(t *testing.T, s *Stage, cfg EntityConfig) *Entity {
	t.Helper()
	ent, err := s.CreateEntity(cfg)
	if err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}
	return ent
}

func openCells(w, h int) [][]int {
	data := make([][]int, h)
	for y := range data {
		data[y] = make([]int, w)
	}
	return data
}
