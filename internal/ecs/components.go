package ecs

import "github.com/younwookim/gemrun/internal/domain/entity"

// Position is the centre of an entity in world pixels.
type Position struct {
	X, Y float64
}

// Point converts the position to a domain point.
func (p Position) Point() entity.Point {
	return entity.Point{X: p.X, Y: p.Y}
}

// Velocity is the entity velocity in pixels per second.
type Velocity struct {
	X, Y float64
}

// Size is the collision box size in pixels.
type Size struct {
	W, H float64
}

// Facing represents which direction entity faces
type Facing struct {
	Right bool
}

// Sprite names the image an entity is drawn with.
type Sprite struct {
	Name string
}

// Pickup is collectible data.
type Pickup struct {
	Value int // score awarded on collection
}

// Patrol attaches a back-and-forth path to an enemy.
type Patrol struct {
	Path *entity.Patrol
}

// Bounds returns the world rectangle covered by a centred box.
func Bounds(pos Position, size Size) entity.Rect {
	return entity.RectAround(pos.Point(), size.W, size.H)
}
