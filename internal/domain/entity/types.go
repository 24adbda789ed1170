package entity

// Point is a world position in pixels.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned rectangle in world pixels (X, Y is the top-left corner).
type Rect struct {
	X, Y, W, H float64
}

// Center returns the centre of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// BottomLeft returns the bottom-left corner (x, y+h)
func (r Rect) BottomLeft() Point {
	return Point{X: r.X, Y: r.Y + r.H}
}

// BottomRight returns the bottom-right corner (x+w, y+h)
func (r Rect) BottomRight() Point {
	return Point{X: r.X + r.W, Y: r.Y + r.H}
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// RectAround builds a rectangle of size w x h centred on p.
func RectAround(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, W: w, H: h}
}
