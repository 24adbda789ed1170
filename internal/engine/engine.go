// Package engine declares the collaborators a level needs from the host:
// map loading, physics and input.
package engine

import (
	"github.com/younwookim/gemrun/internal/domain/entity"
	"github.com/younwookim/gemrun/internal/ecs"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

// MapSource loads tilemaps by path.
type MapSource interface {
	Load(path string) (*tilemap.Map, error)
}

// InputState is a snapshot of the controls for one frame.
type InputState struct {
	Left        bool
	Right       bool
	Jump        bool // held
	JumpPressed bool // pressed this frame
	Pause       bool // pressed this frame
	Confirm     bool // pressed this frame
}

// Controls converts the snapshot to the movement controls.
func (s InputState) Controls() entity.Controls {
	return entity.Controls{Left: s.Left, Right: s.Right, JumpPressed: s.JumpPressed}
}

// Input produces one InputState per frame.
type Input interface {
	Poll() InputState
}

// Group classifies physics bodies for collision rules.
type Group int

const (
	GroupPlayer Group = iota
	GroupPlatforms
	GroupPickups
	GroupEnemies
	GroupBounds
)

func (g Group) String() string {
	switch g {
	case GroupPlayer:
		return "player"
	case GroupPlatforms:
		return "platforms"
	case GroupPickups:
		return "pickups"
	case GroupEnemies:
		return "enemies"
	case GroupBounds:
		return "bounds"
	default:
		return "unknown"
	}
}

// BodySpec describes a body to add. X, Y is the centre.
type BodySpec struct {
	X, Y   float64
	W, H   float64
	Static bool // never moves
	Sensor bool // reports overlaps but never pushes
}

// OverlapFunc receives the two bodies of an overlap, ordered as registered.
type OverlapFunc func(a, b ecs.EntityID)

// Physics simulates bodies and reports overlaps between groups.
type Physics interface {
	SetBounds(w, h float64)
	AddPlatforms(layer *tilemap.TileLayer)
	AddBody(id ecs.EntityID, group Group, spec BodySpec)
	RemoveBody(id ecs.EntityID)

	// Collide makes bodies of the two groups block each other.
	Collide(a, b Group)
	// Overlap calls fn once when bodies of the two groups start touching.
	Overlap(a, b Group, fn OverlapFunc)

	// SetVelocity requests a velocity. The next Step moves the body with its
	// current velocity and then applies the request, before contacts are
	// solved. Velocity reports a pending request until that Step.
	SetVelocity(id ecs.EntityID, vx, vy float64)
	Velocity(id ecs.EntityID) (vx, vy float64)
	Position(id ecs.EntityID) (x, y float64)
	Grounded(id ecs.EntityID) bool

	// Step advances the simulation and then dispatches overlap callbacks.
	Step(dt float64)
	Close()
}
