package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/navigation"
)

// Cell values written into generated grids
const (
	Passage = 0
	Wall    = 1
)

// Config controls maze generation
type Config struct {
	Width, Height int // Rounded down to odd, minimum 3

	// Braiding from 0 (perfect maze, a tree) to 1 (no dead ends)
	// Plaza and pillar constraints take precedence over the probability
	Braiding float64

	// OpenBorders clears the outer ring so movement wraps across grid edges
	OpenBorders bool

	Start *core.Point // nil picks (1,1), or the centre with OpenBorders
	End   *core.Point // nil picks the opposite corner, or the right edge with OpenBorders
	Seed  int64       // 0 seeds from the clock
}

// Result is a generated maze in grid cell layout, Cells[y][x]
type Result struct {
	Cells      [][]int
	Start, End core.Point
	Solution   []core.Point // Route from Start (excluded) to End, nil when unreachable
}

// cells adapts generated data to the pathfinder
type cells [][]int

func (c cells) Get(x, y int) int { return c[y][x] }

func (c cells) Size() (int, int) { return len(c[0]), len(c) }

// Generate carves a maze with a recursive backtracker, then optionally braids it
func Generate(cfg Config) Result {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	grid := make(cells, rows)
	for y := range grid {
		grid[y] = make([]int, cols)
		for x := range grid[y] {
			grid[y][x] = Wall
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	startX, startY := 1, 1
	endX, endY := cols-2, rows-2
	if cfg.OpenBorders {
		startX, startY = (cols/2)|1, (rows/2)|1
		endX, endY = cols-1, (rows/2)|1
	}
	start := resolvePoint(rows, cols, cfg.Start, startX, startY)
	end := resolvePoint(rows, cols, cfg.End, endX, endY)

	carve(grid, start, rng)

	// Borders go before braiding so edge rooms already count their outside exits
	if cfg.OpenBorders {
		stripBorders(grid)
	}
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}

	if cfg.OpenBorders {
		grid[start.Y][start.X] = Passage
		grid[end.Y][end.X] = Passage
	} else {
		forceOpen(grid, start)
		forceOpen(grid, end)
	}

	return Result{
		Cells:    grid,
		Start:    start,
		End:      end,
		Solution: navigation.FindPath(grid, start, end, navigation.ModePath),
	}
}

var (
	jumps = [4]core.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}
	ortho = [4]core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
)

// carve runs the recursive backtracker from start, producing a spanning tree over odd cells
func carve(grid cells, start core.Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	if start.X < 0 || start.X >= cols || start.Y < 0 || start.Y >= rows {
		start = core.Point{X: 1, Y: 1}
	}

	stack := []core.Point{start}
	grid[start.Y][start.X] = Passage

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates := make([]core.Point, 0, 4)
		for _, d := range jumps {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			// Outer ring stays wall
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Intn(len(candidates))]
		grid[cur.Y+d.Y/2][cur.X+d.X/2] = Passage
		next := cur.Add(d)
		grid[next.Y][next.X] = Passage
		stack = append(stack, next)
	}
}

// braid opens a wall next to dead ends with the given probability, adding cycles
func braid(grid cells, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] == Wall {
				continue
			}

			exits := 0
			for _, d := range ortho {
				if grid[y+d.Y][x+d.X] == Passage {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]core.Point, 0, 4)
			for _, d := range jumps {
				nx, ny := x+d.X, y+d.Y
				wx, wy := x+d.X/2, y+d.Y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if grid[ny][nx] == Passage && grid[wy][wx] == Wall && canRemoveWall(grid, wx, wy) {
					candidates = append(candidates, core.Point{X: wx, Y: wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				grid[c.Y][c.X] = Passage
			}
		}
	}
}

// canRemoveWall reports whether opening (x, y) avoids creating a 2x2 plaza or an isolated pillar
func canRemoveWall(grid cells, x, y int) bool {
	rows, cols := len(grid), len(grid[0])
	open := func(tx, ty int) bool {
		return tx >= 0 && tx < cols && ty >= 0 && ty < rows && grid[ty][tx] == Passage
	}

	if open(x-1, y-1) && open(x, y-1) && open(x-1, y) {
		return false
	}
	if open(x, y-1) && open(x+1, y-1) && open(x+1, y) {
		return false
	}
	if open(x-1, y) && open(x-1, y+1) && open(x, y+1) {
		return false
	}
	if open(x+1, y) && open(x, y+1) && open(x+1, y+1) {
		return false
	}

	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || grid[ny][nx] != Wall {
			continue
		}
		// (x, y) counts as passage here
		links := 0
		for _, d2 := range ortho {
			tx, ty := nx+d2.X, ny+d2.Y
			if tx == x && ty == y {
				continue
			}
			if tx >= 0 && tx < cols && ty >= 0 && ty < rows && grid[ty][tx] == Wall {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

func stripBorders(grid cells) {
	rows, cols := len(grid), len(grid[0])
	for x := 0; x < cols; x++ {
		grid[0][x] = Passage
		grid[rows-1][x] = Passage
	}
	for y := 0; y < rows; y++ {
		grid[y][0] = Passage
		grid[y][cols-1] = Passage
	}
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func resolvePoint(rows, cols int, p *core.Point, defX, defY int) core.Point {
	if p == nil {
		return core.Point{X: defX, Y: defY}
	}
	return core.Point{
		X: min(max(p.X, 0), cols-1),
		Y: min(max(p.Y, 0), rows-1),
	}
}

// forceOpen clears p and, when it has no open neighbour, one interior neighbour
func forceOpen(grid cells, p core.Point) {
	rows, cols := len(grid), len(grid[0])
	if p.X < 0 || p.Y < 0 || p.Y >= rows || p.X >= cols {
		return
	}
	grid[p.Y][p.X] = Passage

	for _, d := range ortho {
		nx, ny := p.X+d.X, p.Y+d.Y
		if nx >= 0 && nx < cols && ny >= 0 && ny < rows && grid[ny][nx] == Passage {
			return
		}
	}
	for _, d := range ortho {
		nx, ny := p.X+d.X, p.Y+d.Y
		if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
			grid[ny][nx] = Passage
			return
		}
	}
}
