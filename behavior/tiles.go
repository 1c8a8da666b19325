package behavior

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/render"
)

// DefaultPalette colours terrain codes; unlisted non-zero codes use the wall colour
var DefaultPalette = map[int]tcell.Color{
	1: tcell.NewHexColor(0x1E3A8A),
	2: tcell.NewHexColor(0x6B7280),
	3: tcell.NewHexColor(0x7C2D12),
}

// Tiles paints every non-zero cell with its palette colour
type Tiles struct {
	palette map[int]tcell.Color
}

// NewTiles creates a tile painter, nil palette uses DefaultPalette
func NewTiles(palette map[int]tcell.Color) *Tiles {
	if palette == nil {
		palette = DefaultPalette
	}
	return &Tiles{palette: palette}
}

func (t *Tiles) Update(*engine.Grid) {}

func (t *Tiles) Draw(g *engine.Grid, s render.Surface) {
	w, h := g.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := g.Get(x, y)
			if v == 0 {
				continue
			}
			s.FillRect(g.CellRect(x, y), t.color(v))
		}
	}
}

func (t *Tiles) color(v int) tcell.Color {
	if c, ok := t.palette[v]; ok {
		return c
	}
	return t.palette[1]
}
