package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
)

// TerminalSurface renders a logical surface onto a tcell screen
// The logical area is scaled to fill the whole terminal
type TerminalSurface struct {
	screen        tcell.Screen
	width, height float64
}

// NewTerminalSurface wraps screen with the given logical dimensions
func NewTerminalSurface(screen tcell.Screen, width, height float64) *TerminalSurface {
	return &TerminalSurface{
		screen: screen,
		width:  width,
		height: height,
	}
}

// Screen returns the underlying tcell screen
func (s *TerminalSurface) Screen() tcell.Screen {
	return s.screen
}

// Size implements Surface
func (s *TerminalSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Viewport implements Surface, terminal cells are the client unit
func (s *TerminalSurface) Viewport() core.Rect {
	cols, rows := s.screen.Size()
	return core.Rect{Width: float64(cols), Height: float64(rows)}
}

// Clear implements Surface
func (s *TerminalSurface) Clear() {
	s.screen.Clear()
}

// FillRect implements Surface
func (s *TerminalSurface) FillRect(r core.Rect, color tcell.Color) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := s.cellRange(r)
	style := tcell.StyleDefault.Background(color)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// DrawText implements Surface
func (s *TerminalSurface) DrawText(x, y float64, text string, style tcell.Style) {
	cols, rows := s.screen.Size()
	cx, cy := s.toCell(x, y, cols, rows)
	if cy < 0 || cy >= rows {
		return
	}
	for _, r := range text {
		if cx >= cols {
			return
		}
		if cx >= 0 {
			s.screen.SetContent(cx, cy, r, nil, style)
		}
		cx++
	}
}

// Capture implements Surface
func (s *TerminalSurface) Capture(r core.Rect) *Snapshot {
	cols, rows := s.screen.Size()
	x0, y0, x1, y1 := s.cellRange(r)
	snap := &Snapshot{
		x: x0, y: y0,
		w: max(0, x1-x0), h: max(0, y1-y0),
		cols: cols, rows: rows,
	}
	snap.cells = make([]snapCell, 0, snap.w*snap.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mainc, comb, style, _ := s.screen.GetContent(x, y)
			snap.cells = append(snap.cells, snapCell{main: mainc, comb: comb, style: style})
		}
	}
	return snap
}

// Replay implements Surface
func (s *TerminalSurface) Replay(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	cols, rows := s.screen.Size()
	if cols != snap.cols || rows != snap.rows {
		return false
	}
	i := 0
	for y := snap.y; y < snap.y+snap.h; y++ {
		for x := snap.x; x < snap.x+snap.w; x++ {
			c := snap.cells[i]
			s.screen.SetContent(x, y, c.main, c.comb, c.style)
			i++
		}
	}
	return true
}

// Present implements Surface
func (s *TerminalSurface) Present() {
	s.screen.Show()
}

// toCell maps a logical point to the terminal cell containing it
func (s *TerminalSurface) toCell(x, y float64, cols, rows int) (int, int) {
	return int(math.Floor(x * float64(cols) / s.width)),
		int(math.Floor(y * float64(rows) / s.height))
}

// cellRange maps a logical rectangle to a half-open cell range clipped to the screen
// Any rectangle with area covers at least one cell
func (s *TerminalSurface) cellRange(r core.Rect) (x0, y0, x1, y1 int) {
	cols, rows := s.screen.Size()
	sx := float64(cols) / s.width
	sy := float64(rows) / s.height

	x0 = int(math.Floor(r.X * sx))
	y0 = int(math.Floor(r.Y * sy))
	x1 = int(math.Ceil((r.X + r.Width) * sx))
	y1 = int(math.Ceil((r.Y + r.Height) * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	x0, x1 = clamp(x0, 0, cols), clamp(x1, 0, cols)
	y0, y1 = clamp(y0, 0, rows), clamp(y1, 0, rows)
	return
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
