package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/render"
)

type nullSurface struct{}

func (nullSurface) Size() (float64, float64)                       { return 960, 640 }
func (nullSurface) Viewport() core.Rect                            { return core.Rect{Width: 960, Height: 640} }
func (nullSurface) Clear()                                         {}
func (nullSurface) Present()                                       {}
func (nullSurface) FillRect(core.Rect, tcell.Color)                {}
func (nullSurface) DrawText(float64, float64, string, tcell.Style) {}
func (nullSurface) Capture(core.Rect) *render.Snapshot             { return nil }
func (nullSurface) Replay(*render.Snapshot) bool                   { return false }

const sample = `
stages:
  - name: corridor
    timeout: 300
    audio: [theme.ogg]
    grids:
      - x: 10
        y: 20
        size: 10
        cache: true
        data:
          - [1, 1, 1, 1]
          - [0, 0, 0, 0]
          - [1, 1, 1, 1]
    entities:
      - type: player
        color: yellow
        grid: 0
        coord: {x: 1, y: 1}
        orientation: left
        speed: 2
        control: {lives: 3}
      - x: 400
        y: 300
        width: 40
        status: paused
  - name: labyrinth
    grids:
      - maze: {width: 11, height: 9, seed: 42}
    entities:
      - type: program
        grid: 0
        at: start
        follow: solution
      - grid: 0
        at: end
        color: "#00ff00"
`

func TestParseAndBuild(t *testing.T) {
	lvl, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lvl.Stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(lvl.Stages))
	}

	e := engine.New(nullSurface{}, engine.Options{Clock: engine.NewManualClock()})
	if err := Build(e, lvl); err != nil {
		t.Fatalf("Build: %v", err)
	}

	first := e.Stage(0)
	if first.Name != "corridor" || first.Timeout != 300 || len(first.Audio) != 1 {
		t.Errorf("stage 0 = %q timeout %d audio %v", first.Name, first.Timeout, first.Audio)
	}
	g := first.Grid(0)
	if w, h := g.Size(); w != 4 || h != 3 {
		t.Errorf("grid size = %dx%d, want 4x3", w, h)
	}
	if g.X != 10 || g.Y != 20 || g.CellSize != 10 {
		t.Errorf("grid placement = (%v,%v) size %v", g.X, g.Y, g.CellSize)
	}

	player := first.Entity(0)
	if player.Kind != core.KindPlayer || player.Orientation != core.DirLeft || player.Speed != 2 {
		t.Errorf("player kind=%v orientation=%v speed=%v", player.Kind, player.Orientation, player.Speed)
	}
	if player.Color != tcell.ColorYellow {
		t.Errorf("player color = %v, want yellow", player.Color)
	}
	if player.Grid != g || player.Coord != (core.Point{X: 1, Y: 1}) {
		t.Errorf("player binding = %v at %v", player.Grid, player.Coord)
	}
	if player.Control["lives"] != 3 {
		t.Errorf("player control = %v", player.Control)
	}

	box := first.Entity(1)
	if box.Status != core.StatusPaused || box.Width != 40 || box.Height != engine.DefaultEntityHeight {
		t.Errorf("box status=%v size=%vx%v", box.Status, box.Width, box.Height)
	}

	second := e.Stage(1)
	walker := second.Entity(0)
	if walker.Kind != core.KindProgram {
		t.Errorf("walker kind = %v", walker.Kind)
	}
	if len(walker.Path) == 0 {
		t.Fatal("walker has no solution path")
	}
	goal := second.Entity(1)
	if last := walker.Path[len(walker.Path)-1]; last != goal.Coord {
		t.Errorf("solution ends at %v, want maze end %v", last, goal.Coord)
	}
	if second.Grid(0).Get(walker.Coord.X, walker.Coord.Y) != 0 {
		t.Errorf("maze start %v is not open", walker.Coord)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "stages: []", "no stages"},
		{"unknown key", "stages:\n  - name: a\n    colour: red\n", "colour"},
		{"data and maze", "stages:\n  - grids:\n      - data: [[0]]\n        maze: {width: 5, height: 5}\n", "exactly one"},
		{"neither data nor maze", "stages:\n  - grids:\n      - size: 10\n", "exactly one"},
		{"grid index", "stages:\n  - grids:\n      - data: [[0]]\n    entities:\n      - grid: 1\n        coord: {x: 0, y: 0}\n", "grid 1 of 1"},
		{"coord without grid", "stages:\n  - entities:\n      - coord: {x: 0, y: 0}\n", "without a grid"},
		{"grid without coord", "stages:\n  - grids:\n      - data: [[0]]\n    entities:\n      - grid: 0\n", "without coord"},
		{"at on literal grid", "stages:\n  - grids:\n      - data: [[0]]\n    entities:\n      - grid: 0\n        at: start\n", "needs a maze"},
		{"bad follow", "stages:\n  - grids:\n      - maze: {width: 5, height: 5}\n    entities:\n      - grid: 0\n        at: start\n        follow: player\n", "follow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() = nil error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown behavior", "stages:\n  - entities:\n      - behavior: nope\n", engine.ErrUnknownBehavior},
		{"unknown hook", "stages:\n  - hook: nope\n", engine.ErrUnknownBehavior},
		{"ragged grid", "stages:\n  - grids:\n      - data: [[0, 0], [0]]\n", engine.ErrInvalidGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			e := engine.New(nullSurface{}, engine.Options{Clock: engine.NewManualClock()})
			if err := Build(e, lvl); !errors.Is(err, tt.want) {
				t.Errorf("Build() = %v, want %v", err, tt.want)
			}
		})
	}

	for _, doc := range []string{
		"stages:\n  - entities:\n      - type: boss\n",
		"stages:\n  - entities:\n      - color: notacolour\n",
		"stages:\n  - entities:\n      - orientation: sideways\n",
	} {
		lvl, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("Parse(%q): %v", doc, err)
		}
		e := engine.New(nullSurface{}, engine.Options{Clock: engine.NewManualClock()})
		if err := Build(e, lvl); err == nil {
			t.Errorf("Build(%q) = nil error", doc)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	lvl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lvl.Stages[1].Grids[0].Maze.Seed != 42 {
		t.Errorf("maze seed = %d, want 42", lvl.Stages[1].Grids[0].Maze.Seed)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error")
	}
}
