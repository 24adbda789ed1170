package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatrol(t *testing.T) {
	from := Point{X: 32, Y: 96}
	to := Point{X: 128, Y: 96}

	p := NewPatrol(from, to, 2)

	require.NotNil(t, p)
	assert.True(t, p.Forward())
	assert.Equal(t, from, p.Position())
	assert.Equal(t, 0, p.Legs())
}

func TestNewPatrol_ClampsDuration(t *testing.T) {
	p := NewPatrol(Point{}, Point{X: 10}, 0)
	assert.Equal(t, MinPatrolDuration, p.Duration)
}

func TestPatrol_Advance(t *testing.T) {
	p := NewPatrol(Point{X: 0, Y: 50}, Point{X: 100, Y: 50}, 1)

	mid := p.Advance(0.5)
	assert.InDelta(t, 50, mid.X, 1e-9, "half way at half time")
	assert.Equal(t, 50.0, mid.Y, "stays on the bottom edge")

	end := p.Advance(0.5)
	assert.InDelta(t, 100, end.X, 1e-9)
	assert.False(t, p.Forward(), "reverses at the right endpoint")

	back := p.Advance(1)
	assert.InDelta(t, 0, back.X, 1e-9)
	assert.True(t, p.Forward(), "reverses at the left endpoint")
}

func TestPatrol_EaseInOut(t *testing.T) {
	p := NewPatrol(Point{X: 0}, Point{X: 100}, 1)

	first := p.Advance(0.1).X
	second := p.Advance(0.1).X - first

	// slower near the endpoint than in the middle
	assert.Less(t, first, 10.0)
	p.Advance(0.3) // t = 0.5
	midStep := p.Advance(0.1).X
	assert.Greater(t, midStep-50, second)
}

func TestPatrol_LoopsIndefinitely(t *testing.T) {
	from := Point{X: 16, Y: 80}
	to := Point{X: 64, Y: 80}
	p := NewPatrol(from, to, 1)

	const legs = 1000
	for leg := 1; leg <= legs; leg++ {
		var pos Point
		for i := 0; i < 4; i++ {
			pos = p.Advance(0.25)
		}
		require.Equal(t, leg, p.Legs())
		if leg%2 == 1 {
			assert.InDelta(t, to.X, pos.X, 1e-9, "leg %d ends at right", leg)
			assert.False(t, p.Forward())
		} else {
			assert.InDelta(t, from.X, pos.X, 1e-9, "leg %d ends at left", leg)
			assert.True(t, p.Forward())
		}
	}
}

func TestPatrol_LargeStepCrossesSeveralLegs(t *testing.T) {
	p := NewPatrol(Point{X: 0}, Point{X: 10}, 1)

	p.Advance(3.5)

	assert.Equal(t, 3, p.Legs())
	assert.False(t, p.Forward())
	assert.InDelta(t, 5, p.Position().X, 1e-9)
}

func TestEaseInOutSine(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutSine(-1))
	assert.Equal(t, 0.0, EaseInOutSine(0))
	assert.InDelta(t, 0.5, EaseInOutSine(0.5), 1e-12)
	assert.Equal(t, 1.0, EaseInOutSine(1))
	assert.Equal(t, 1.0, EaseInOutSine(2))
}

func TestPatrol_PeakSpeed(t *testing.T) {
	p := NewPatrol(Point{X: 100}, Point{X: 36}, 1)
	assert.InDelta(t, 32*math.Pi, p.PeakSpeed(), 1e-9)

	// No sampled step along the leg is faster than the peak.
	const dt = 1.0 / 60
	prev := p.Position().X
	for i := 0; i < 120; i++ {
		x := p.Advance(dt).X
		assert.LessOrEqual(t, math.Abs(x-prev)/dt, p.PeakSpeed()+1e-9, "step %d", i)
		prev = x
	}

	assert.Zero(t, NewPatrol(Point{X: 5}, Point{X: 5, Y: 40}, 1).PeakSpeed())
}
