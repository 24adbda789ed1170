// Package enginetest provides in-memory engine collaborators for tests.
package enginetest

import (
	"fmt"

	"github.com/younwookim/gemrun/internal/ecs"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

// Body is a body registered with FakePhysics.
type Body struct {
	Group  engine.Group
	Spec   engine.BodySpec
	X, Y   float64
	VX, VY float64

	steer  bool
	sx, sy float64
}

// FakePhysics moves bodies by their velocity and nothing else.
// Like the Chipmunk world, a velocity set before Step only moves the body
// on the following Step.
// Overlaps are triggered by the test through Fire.
type FakePhysics struct {
	Bodies    map[ecs.EntityID]*Body
	Platforms []*tilemap.TileLayer
	BoundsW   float64
	BoundsH   float64
	Solid     map[[2]engine.Group]bool
	Overlaps  map[[2]engine.Group]engine.OverlapFunc
	Ground    map[ecs.EntityID]bool
	Steps     int
	Closed    bool

	// OnStep runs after bodies have moved and pending velocities have been
	// applied, before Step returns.
	OnStep func(f *FakePhysics)
}

var _ engine.Physics = (*FakePhysics)(nil)

// NewFakePhysics creates an empty fake.
func NewFakePhysics() *FakePhysics {
	return &FakePhysics{
		Bodies:   make(map[ecs.EntityID]*Body),
		Solid:    make(map[[2]engine.Group]bool),
		Overlaps: make(map[[2]engine.Group]engine.OverlapFunc),
		Ground:   make(map[ecs.EntityID]bool),
	}
}

func (f *FakePhysics) SetBounds(w, h float64) {
	f.BoundsW, f.BoundsH = w, h
}

func (f *FakePhysics) AddPlatforms(layer *tilemap.TileLayer) {
	f.Platforms = append(f.Platforms, layer)
}

func (f *FakePhysics) AddBody(id ecs.EntityID, group engine.Group, spec engine.BodySpec) {
	f.Bodies[id] = &Body{Group: group, Spec: spec, X: spec.X, Y: spec.Y}
}

func (f *FakePhysics) RemoveBody(id ecs.EntityID) {
	delete(f.Bodies, id)
}

func (f *FakePhysics) Collide(a, b engine.Group) {
	f.Solid[[2]engine.Group{a, b}] = true
}

func (f *FakePhysics) Overlap(a, b engine.Group, fn engine.OverlapFunc) {
	f.Overlaps[[2]engine.Group{a, b}] = fn
}

// Collides reports whether a solid rule exists for the pair in either order.
func (f *FakePhysics) Collides(a, b engine.Group) bool {
	return f.Solid[[2]engine.Group{a, b}] || f.Solid[[2]engine.Group{b, a}]
}

func (f *FakePhysics) SetVelocity(id ecs.EntityID, vx, vy float64) {
	if b, ok := f.Bodies[id]; ok {
		b.steer = true
		b.sx, b.sy = vx, vy
	}
}

func (f *FakePhysics) Velocity(id ecs.EntityID) (float64, float64) {
	if b, ok := f.Bodies[id]; ok {
		if b.steer {
			return b.sx, b.sy
		}
		return b.VX, b.VY
	}
	return 0, 0
}

func (f *FakePhysics) Position(id ecs.EntityID) (float64, float64) {
	if b, ok := f.Bodies[id]; ok {
		return b.X, b.Y
	}
	return 0, 0
}

// Place teleports a body.
func (f *FakePhysics) Place(id ecs.EntityID, x, y float64) {
	if b, ok := f.Bodies[id]; ok {
		b.X, b.Y = x, y
	}
}

func (f *FakePhysics) Grounded(id ecs.EntityID) bool {
	return f.Ground[id]
}

func (f *FakePhysics) Step(dt float64) {
	f.Steps++
	for _, b := range f.Bodies {
		if b.Spec.Static {
			continue
		}
		b.X += b.VX * dt
		b.Y += b.VY * dt
		if b.steer {
			b.VX, b.VY = b.sx, b.sy
			b.steer = false
		}
	}
	if f.OnStep != nil {
		f.OnStep(f)
	}
}

func (f *FakePhysics) Close() {
	f.Closed = true
}

// Fire invokes the overlap callback registered for the groups of a and b,
// passing the ids in registration order.
func (f *FakePhysics) Fire(a, b ecs.EntityID) error {
	ba, okA := f.Bodies[a]
	bb, okB := f.Bodies[b]
	if !okA || !okB {
		return fmt.Errorf("unknown body %d or %d", a, b)
	}
	if fn, ok := f.Overlaps[[2]engine.Group{ba.Group, bb.Group}]; ok {
		fn(a, b)
		return nil
	}
	if fn, ok := f.Overlaps[[2]engine.Group{bb.Group, ba.Group}]; ok {
		fn(b, a)
		return nil
	}
	return fmt.Errorf("no overlap rule for %s/%s", ba.Group, bb.Group)
}

// BodiesIn returns the ids of every body in group.
func (f *FakePhysics) BodiesIn(group engine.Group) []ecs.EntityID {
	var ids []ecs.EntityID
	for id, b := range f.Bodies {
		if b.Group == group {
			ids = append(ids, id)
		}
	}
	return ids
}

// ScriptedInput replays a fixed list of states, then reports idle input.
type ScriptedInput struct {
	States []engine.InputState
	next   int
}

func (s *ScriptedInput) Poll() engine.InputState {
	if s.next >= len(s.States) {
		return engine.InputState{}
	}
	st := s.States[s.next]
	s.next++
	return st
}

// MapSource serves pre-built maps by path.
type MapSource struct {
	Maps  map[string]*tilemap.Map
	Loads []string
}

func (m *MapSource) Load(path string) (*tilemap.Map, error) {
	m.Loads = append(m.Loads, path)
	mp, ok := m.Maps[path]
	if !ok {
		return nil, fmt.Errorf("map %s not found", path)
	}
	return mp, nil
}
