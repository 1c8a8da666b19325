package core

// Point is an integer grid cell coordinate
type Point struct {
	X, Y int
}

// Add returns the component-wise sum
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Vec is a continuous surface coordinate
type Vec struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in continuous surface coordinates
type Rect struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
}

// Contains reports whether v lies inside r, edges inclusive
func (r Rect) Contains(v Vec) bool {
	return r.X <= v.X && v.X <= r.X+r.Width &&
		r.Y <= v.Y && v.Y <= r.Y+r.Height
}

// Empty reports a rectangle with no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
