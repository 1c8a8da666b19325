package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
)

// Surface is the drawing target handed to grid and entity behaviors each frame
//
// Coordinates are logical surface units; implementations map them onto their
// physical output. Viewport reports where the logical surface is rendered in
// client (input) coordinates, used to map pointer events back onto the surface.
type Surface interface {
	// Size returns the logical surface dimensions
	Size() (width, height float64)

	// Viewport returns the rendered rectangle in client coordinates
	Viewport() core.Rect

	// Clear erases the whole surface
	Clear()

	// FillRect paints r with a solid colour
	FillRect(r core.Rect, color tcell.Color)

	// DrawText writes text starting at (x, y)
	DrawText(x, y float64, text string, style tcell.Style)

	// Capture snapshots the current contents of r
	Capture(r core.Rect) *Snapshot

	// Replay restores a snapshot, returns false when the snapshot no longer
	// matches the output (e.g. after a resize) and must be redrawn
	Replay(s *Snapshot) bool

	// Present flushes the finished frame to the output
	Present()
}

// Snapshot is a captured region of surface output
type Snapshot struct {
	x, y, w, h int // Region in output cells
	cols, rows int // Output size at capture time
	cells      []snapCell
}

type snapCell struct {
	main  rune
	comb  []rune
	style tcell.Style
}

// Bounds returns the captured region in output cells
func (s *Snapshot) Bounds() (x, y, w, h int) {
	return s.x, s.y, s.w, s.h
}
