package system

import (
	"math"

	"github.com/younwookim/gemrun/internal/ecs"
	"github.com/younwookim/gemrun/internal/engine"
)

// PatrolSystem steers enemies along their patrol paths.
type PatrolSystem struct{}

// NewPatrolSystem creates a new patrol system
func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

// Update advances every patrol by dt and requests the horizontal velocity
// that closes the gap to the path. The physics step moves the body with its
// current velocity before the request applies, so the gap is measured from
// where that step will leave it. Speed never exceeds the leg's peak, so a
// blocked enemy pushes gently instead of launching when freed.
// Vertical velocity is left to gravity.
func (s *PatrolSystem) Update(w *ecs.World, phys engine.Physics, dt float64) {
	if dt <= 0 {
		return
	}
	for _, id := range w.Enemies() {
		patrol, ok := w.PatrolData[id]
		if !ok || patrol.Path == nil {
			continue
		}
		x, _ := phys.Position(id)
		bvx, vy := phys.Velocity(id)
		target := patrol.Path.Advance(dt)

		peak := patrol.Path.PeakSpeed()
		vx := (target.X - (x + bvx*dt)) / dt
		vx = math.Max(-peak, math.Min(peak, vx))
		phys.SetVelocity(id, vx, vy)

		if vx != 0 {
			w.Facing[id] = ecs.Facing{Right: vx > 0}
		}
	}
}
