// Package physics implements engine.Physics on top of Chipmunk2D.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/gemrun/internal/ecs"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

var groups = []engine.Group{
	engine.GroupPlayer,
	engine.GroupPlatforms,
	engine.GroupPickups,
	engine.GroupEnemies,
	engine.GroupBounds,
}

func collisionType(g engine.Group) cp.CollisionType {
	return cp.CollisionType(g) + 1
}

type ruleKind int

const (
	ruleSolid ruleKind = iota
	ruleOverlap
)

type rule struct {
	kind ruleKind
	a, b engine.Group
	fn   engine.OverlapFunc
}

type pairKey struct {
	lo, hi engine.Group
}

func keyOf(a, b engine.Group) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// shapeInfo links a Chipmunk shape back to its entity.
// id is 0 for level geometry.
type shapeInfo struct {
	id     ecs.EntityID
	group  engine.Group
	body   *cp.Body // nil for shapes on the space's static body
	shape  *cp.Shape
	cx, cy float64 // centre of static shapes

	// steer holds a velocity requested by SetVelocity until the next
	// velocity integration picks it up.
	steer  bool
	vx, vy float64
}

type overlapEvent struct {
	fn   engine.OverlapFunc
	a, b ecs.EntityID
}

// Config tunes the simulation.
type Config struct {
	Gravity    float64
	Iterations int
}

// World owns a Chipmunk space for one level.
type World struct {
	space *cp.Space

	rules    map[pairKey]rule
	bodies   map[ecs.EntityID]*shapeInfo
	shapes   map[*cp.Shape]*shapeInfo
	grounded map[ecs.EntityID]bool
	pending  []overlapEvent
}

var _ engine.Physics = (*World)(nil)

// New creates a physics world with a handler installed for every group pair.
func New(cfg Config) *World {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	w := &World{
		space:    space,
		rules:    make(map[pairKey]rule),
		bodies:   make(map[ecs.EntityID]*shapeInfo),
		shapes:   make(map[*cp.Shape]*shapeInfo),
		grounded: make(map[ecs.EntityID]bool),
	}
	w.setupHandlers()
	return w
}

func (w *World) setupHandlers() {
	for i, a := range groups {
		for _, b := range groups[i:] {
			h := w.space.NewCollisionHandler(collisionType(a), collisionType(b))
			h.UserData = w
			h.BeginFunc = begin
			h.PreSolveFunc = preSolve
		}
	}
}

func begin(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	w, ok := userData.(*World)
	if !ok || w == nil {
		return false
	}
	shapeA, shapeB := arb.Shapes()
	infoA, okA := w.shapes[shapeA]
	infoB, okB := w.shapes[shapeB]
	if !okA || !okB {
		return false
	}

	r, ok := w.rules[keyOf(infoA.group, infoB.group)]
	if !ok {
		return false
	}
	if r.kind == ruleSolid {
		return true
	}

	first, second := infoA, infoB
	if first.group != r.a {
		first, second = second, first
	}
	w.pending = append(w.pending, overlapEvent{fn: r.fn, a: first.id, b: second.id})
	return false
}

func preSolve(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	w, ok := userData.(*World)
	if !ok || w == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	n := arb.Normal()

	// n points from A to B; y grows downward.
	if info := w.shapes[shapeA]; info != nil && info.body != nil && n.Y > 0.5 {
		w.grounded[info.id] = true
	}
	if info := w.shapes[shapeB]; info != nil && info.body != nil && n.Y < -0.5 {
		w.grounded[info.id] = true
	}
	return true
}

// SetBounds encloses the world in four static segments.
func (w *World) SetBounds(width, height float64) {
	if w.space == nil {
		return
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		w.addStatic(shape, engine.GroupBounds)
	}
}

// AddPlatforms turns every non-empty tile of layer into solid geometry,
// merging neighbouring tiles into rectangles.
func (w *World) AddPlatforms(layer *tilemap.TileLayer) {
	if w.space == nil || layer == nil {
		return
	}
	tw, th := float64(layer.TileWidth), float64(layer.TileHeight)
	processed := make([]bool, layer.Width*layer.Height)
	solid := func(x, y int) bool {
		return !processed[y*layer.Width+x] && layer.TileAt(x, y) != 0
	}

	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			if !solid(x, y) {
				continue
			}

			wTiles := 1
			for x+wTiles < layer.Width && solid(x+wTiles, y) {
				wTiles++
			}

			hTiles := 1
		heightLoop:
			for y+hTiles < layer.Height {
				for xi := x; xi < x+wTiles; xi++ {
					if !solid(xi, y+hTiles) {
						break heightLoop
					}
				}
				hTiles++
			}

			x0, y0 := float64(x)*tw, float64(y)*th
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(wTiles)*tw, T: y0 + float64(hTiles)*th}
			w.addStatic(cp.NewBox2(w.space.StaticBody, bb, 0), engine.GroupPlatforms)

			for yy := y; yy < y+hTiles; yy++ {
				for xx := x; xx < x+wTiles; xx++ {
					processed[yy*layer.Width+xx] = true
				}
			}
		}
	}
}

func (w *World) addStatic(shape *cp.Shape, group engine.Group) {
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionType(group))
	w.space.AddShape(shape)
	w.shapes[shape] = &shapeInfo{group: group, shape: shape}
}

// AddBody adds an entity body. Adding an id twice replaces the old body.
func (w *World) AddBody(id ecs.EntityID, group engine.Group, spec engine.BodySpec) {
	if w.space == nil {
		return
	}
	w.RemoveBody(id)

	info := &shapeInfo{id: id, group: group, cx: spec.X, cy: spec.Y}
	if spec.Static {
		bb := cp.BB{L: spec.X - spec.W/2, B: spec.Y - spec.H/2, R: spec.X + spec.W/2, T: spec.Y + spec.H/2}
		info.shape = cp.NewBox2(w.space.StaticBody, bb, 0)
	} else {
		body := cp.NewBody(1, math.Inf(1))
		body.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			if info.steer {
				b.SetVelocity(info.vx, info.vy)
				info.steer = false
			}
			cp.BodyUpdateVelocity(b, gravity, damping, dt)
		})
		w.space.AddBody(body)
		info.body = body
		info.shape = cp.NewBox(body, spec.W, spec.H, 0)
	}

	info.shape.SetSensor(spec.Sensor)
	info.shape.SetFriction(0)
	info.shape.SetElasticity(0)
	info.shape.SetCollisionType(collisionType(group))
	w.space.AddShape(info.shape)

	w.bodies[id] = info
	w.shapes[info.shape] = info
}

// RemoveBody removes an entity body. Unknown ids are ignored.
func (w *World) RemoveBody(id ecs.EntityID) {
	info, ok := w.bodies[id]
	if !ok {
		return
	}
	if w.space != nil {
		w.space.RemoveShape(info.shape)
		if info.body != nil {
			w.space.RemoveBody(info.body)
		}
	}
	delete(w.shapes, info.shape)
	delete(w.bodies, id)
	delete(w.grounded, id)
}

// Collide makes the two groups block each other.
func (w *World) Collide(a, b engine.Group) {
	w.rules[keyOf(a, b)] = rule{kind: ruleSolid, a: a, b: b}
}

// Overlap registers fn for the first contact between the two groups.
// fn receives the bodies in (a, b) order.
func (w *World) Overlap(a, b engine.Group, fn engine.OverlapFunc) {
	w.rules[keyOf(a, b)] = rule{kind: ruleOverlap, a: a, b: b, fn: fn}
}

// SetVelocity requests a velocity for the next Step. It is applied while
// Chipmunk integrates velocities, before contacts are solved, so a body
// pushed into a wall every frame is still stopped by it. Positions in that
// Step still move with the previous velocity.
func (w *World) SetVelocity(id ecs.EntityID, vx, vy float64) {
	if info, ok := w.bodies[id]; ok && info.body != nil {
		info.steer = true
		info.vx, info.vy = vx, vy
	}
}

// Velocity returns the pending velocity if one was set since the last
// Step, else the simulated one.
func (w *World) Velocity(id ecs.EntityID) (vx, vy float64) {
	if info, ok := w.bodies[id]; ok && info.body != nil {
		if info.steer {
			return info.vx, info.vy
		}
		v := info.body.Velocity()
		return v.X, v.Y
	}
	return 0, 0
}

func (w *World) Position(id ecs.EntityID) (x, y float64) {
	info, ok := w.bodies[id]
	if !ok {
		return 0, 0
	}
	if info.body == nil {
		return info.cx, info.cy
	}
	p := info.body.Position()
	return p.X, p.Y
}

// Grounded reports whether the body rested on something during the last step.
func (w *World) Grounded(id ecs.EntityID) bool {
	return w.grounded[id]
}

// Step advances the simulation by dt seconds and then runs the overlap
// callbacks collected during the step.
func (w *World) Step(dt float64) {
	if w.space == nil {
		return
	}
	clear(w.grounded)
	w.space.Step(dt)

	events := w.pending
	w.pending = nil
	for _, ev := range events {
		// an earlier callback may have removed one of the bodies
		if _, ok := w.bodies[ev.a]; !ok {
			continue
		}
		if _, ok := w.bodies[ev.b]; !ok {
			continue
		}
		ev.fn(ev.a, ev.b)
	}
}

// Close releases the space. The world is inert afterwards.
func (w *World) Close() {
	w.space = nil
	clear(w.bodies)
	clear(w.shapes)
	clear(w.grounded)
	w.pending = nil
}
