package entity

import "math"

// MinPatrolDuration guards against zero-length legs.
const MinPatrolDuration = 0.05

// Patrol moves back and forth between two points forever.
// Each leg takes Duration seconds and uses sine ease-in-out timing.
type Patrol struct {
	From, To Point
	Duration float64

	elapsed float64
	forward bool
	legs    int
}

// NewPatrol creates a patrol starting at from and heading to to.
func NewPatrol(from, to Point, duration float64) *Patrol {
	if duration < MinPatrolDuration {
		duration = MinPatrolDuration
	}
	return &Patrol{
		From:     from,
		To:       to,
		Duration: duration,
		forward:  true,
	}
}

// Advance moves the patrol forward by dt seconds and returns the new position.
func (p *Patrol) Advance(dt float64) Point {
	if dt > 0 {
		p.elapsed += dt
		for p.elapsed >= p.Duration {
			p.elapsed -= p.Duration
			p.forward = !p.forward
			p.legs++
		}
	}
	return p.Position()
}

// Position returns the current point on the path.
func (p *Patrol) Position() Point {
	e := EaseInOutSine(p.elapsed / p.Duration)
	if p.forward {
		return lerp(p.From, p.To, e)
	}
	return lerp(p.To, p.From, e)
}

// PeakSpeed is the fastest horizontal speed along a leg, reached halfway.
func (p *Patrol) PeakSpeed() float64 {
	return math.Abs(p.To.X-p.From.X) * math.Pi / (2 * p.Duration)
}

// Forward reports whether the patrol is heading from From to To.
func (p *Patrol) Forward() bool {
	return p.forward
}

// Legs returns how many endpoint reversals have happened.
func (p *Patrol) Legs() int {
	return p.legs
}

// EaseInOutSine maps t in [0,1] onto a slow-fast-slow curve.
func EaseInOutSine(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return -(math.Cos(math.Pi*t) - 1) / 2
}

func lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
