package navigation

import "github.com/lixenwraith/gridstage/core"

// Mode selects which query FindPath answers
type Mode uint8

const (
	ModePath Mode = iota // Full route from start to end
	ModeNext             // Walkable neighbours of end not yet visited
)

func (m Mode) String() string {
	switch m {
	case ModePath:
		return "path"
	case ModeNext:
		return "next"
	default:
		return "unknown"
	}
}

// CellReader exposes terrain to the pathfinder
// Values >= 1 block movement, 0 and negative terrain codes are walkable
type CellReader interface {
	Get(x, y int) int
	Size() (width, height int)
}

// Expansion order per frontier cell: down, right, up, left
// Fixed order decides which of several equally short routes is returned
var expandOrder = [4]core.Point{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// Blocked reports whether a terrain value is an obstacle
func Blocked(v int) bool {
	return v >= 1
}

// FindPath runs a breadth-first flood fill over a toroidal grid
//
// ModePath returns the cells from start (excluded) to end (included), or nil when
// end is unreachable. ModeNext probes the cell passed as end and returns its walkable
// neighbours in expansion order, skipping start, which the flood has already visited.
// Either mode returns nil when start or end is outside the grid or on an obstacle.
func FindPath(grid CellReader, start, end core.Point, mode Mode) []core.Point {
	w, h := grid.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	if !inBounds(start, w, h) || Blocked(grid.Get(start.X, start.Y)) ||
		!inBounds(end, w, h) || Blocked(grid.Get(end.X, end.Y)) {
		return nil
	}

	visited := make([]bool, w*h)
	visited[start.Y*w+start.X] = true

	if mode == ModeNext {
		var result []core.Point
		for _, d := range expandOrder {
			to, ok := step(grid, end, d, w, h)
			if !ok || visited[to.Y*w+to.X] {
				continue
			}
			visited[to.Y*w+to.X] = true
			result = append(result, to)
		}
		return result
	}

	if start == end {
		return nil
	}

	// prev holds the flat index of the cell that first reached each visited cell
	prev := make([]int, w*h)
	frontier := []core.Point{start}
	found := false

	for len(frontier) > 0 && !found {
		var next []core.Point
		for _, cur := range frontier {
			for _, d := range expandOrder {
				to, ok := step(grid, cur, d, w, h)
				if !ok {
					continue
				}
				idx := to.Y*w + to.X
				if visited[idx] {
					continue
				}
				visited[idx] = true
				prev[idx] = cur.Y*w + cur.X
				if to == end {
					found = true
					continue
				}
				next = append(next, to)
			}
		}
		frontier = next
	}

	if !found {
		return nil
	}

	startIdx := start.Y*w + start.X
	var path []core.Point
	for idx := end.Y*w + end.X; idx != startIdx; idx = prev[idx] {
		path = append(path, core.Point{X: idx % w, Y: idx / w})
	}
	// Reverse into start-to-end order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// step moves one cell from p, wrapping around grid edges
// Returns false when the destination is an obstacle
func step(grid CellReader, p, d core.Point, w, h int) (core.Point, bool) {
	to := p.Add(d)
	if !inBounds(to, w, h) {
		to = Wrap(to, w, h)
	}
	return to, !Blocked(grid.Get(to.X, to.Y))
}

// Wrap maps a coordinate onto a w×h torus
func Wrap(p core.Point, w, h int) core.Point {
	return core.Point{
		X: (p.X%w + w) % w,
		Y: (p.Y%h + h) % h,
	}
}

func inBounds(p core.Point, w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}
