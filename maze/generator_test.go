package maze

import (
	"reflect"
	"testing"

	"github.com/lixenwraith/gridstage/core"
)

func TestGenerateDimensions(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{21, 15, 21, 15},
		{20, 14, 19, 13},
		{1, 2, 3, 3},
	}
	for _, tt := range tests {
		res := Generate(Config{Width: tt.w, Height: tt.h, Seed: 7})
		if len(res.Cells) != tt.wantH || len(res.Cells[0]) != tt.wantW {
			t.Errorf("Generate(%dx%d) = %dx%d, want %dx%d",
				tt.w, tt.h, len(res.Cells[0]), len(res.Cells), tt.wantW, tt.wantH)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Width: 25, Height: 17, Braiding: 0.5, Seed: 42}
	a := Generate(cfg)
	b := Generate(cfg)
	if !reflect.DeepEqual(a.Cells, b.Cells) {
		t.Error("same seed produced different mazes")
	}
}

func TestGenerateSolvable(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		res := Generate(Config{Width: 21, Height: 21, Braiding: 0.3, Seed: seed})
		if res.Cells[res.Start.Y][res.Start.X] != Passage || res.Cells[res.End.Y][res.End.X] != Passage {
			t.Fatalf("seed %d: start or end is a wall", seed)
		}
		if len(res.Solution) == 0 {
			t.Fatalf("seed %d: no solution from %v to %v", seed, res.Start, res.End)
		}
		if last := res.Solution[len(res.Solution)-1]; last != res.End {
			t.Errorf("seed %d: solution ends at %v, want %v", seed, last, res.End)
		}
		for _, p := range res.Solution {
			if res.Cells[p.Y][p.X] != Passage {
				t.Errorf("seed %d: solution crosses wall at %v", seed, p)
			}
		}
	}
}

func TestGenerateWalledBorder(t *testing.T) {
	res := Generate(Config{Width: 15, Height: 11, Seed: 3})
	rows, cols := len(res.Cells), len(res.Cells[0])
	for x := 0; x < cols; x++ {
		if res.Cells[0][x] != Wall || res.Cells[rows-1][x] != Wall {
			t.Fatalf("border column %d open", x)
		}
	}
	for y := 0; y < rows; y++ {
		if res.Cells[y][0] != Wall || res.Cells[y][cols-1] != Wall {
			t.Fatalf("border row %d open", y)
		}
	}
}

func TestGenerateOpenBorders(t *testing.T) {
	res := Generate(Config{Width: 15, Height: 11, OpenBorders: true, Seed: 3})
	rows, cols := len(res.Cells), len(res.Cells[0])
	for x := 0; x < cols; x++ {
		if res.Cells[0][x] != Passage || res.Cells[rows-1][x] != Passage {
			t.Fatalf("border column %d closed", x)
		}
	}
	if res.End.X != cols-1 {
		t.Errorf("End = %v, want right edge", res.End)
	}
}

func TestGenerateBraidedHasNoPlazas(t *testing.T) {
	res := Generate(Config{Width: 31, Height: 31, Braiding: 1, Seed: 11})
	for y := 0; y+1 < len(res.Cells); y++ {
		for x := 0; x+1 < len(res.Cells[0]); x++ {
			if res.Cells[y][x] == Passage && res.Cells[y+1][x] == Passage &&
				res.Cells[y][x+1] == Passage && res.Cells[y+1][x+1] == Passage {
				t.Fatalf("2x2 open plaza at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateCustomEndpoints(t *testing.T) {
	res := Generate(Config{
		Width: 11, Height: 11, Seed: 5,
		Start: &core.Point{X: 1, Y: 9},
		End:   &core.Point{X: 100, Y: -4},
	})
	if res.Start != (core.Point{X: 1, Y: 9}) {
		t.Errorf("Start = %v", res.Start)
	}
	if res.End != (core.Point{X: 10, Y: 0}) {
		t.Errorf("End = %v, want clamped (10,0)", res.End)
	}
	if res.Cells[0][10] != Passage {
		t.Error("clamped end not forced open")
	}
}
