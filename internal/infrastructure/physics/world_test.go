package physics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gemrun/internal/ecs"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

const dt = 1.0 / 60

// floorLayer builds a w x h layer of 16px tiles with row floorRow filled.
func floorLayer(t *testing.T, w, h, floorRow int) *tilemap.TileLayer {
	t.Helper()
	return gridLayer(t, w, h, func(col, row int) bool { return row == floorRow })
}

// gridLayer builds a w x h layer of 16px tiles, solid where solid says so.
func gridLayer(t *testing.T, w, h int, solid func(col, row int) bool) *tilemap.TileLayer {
	t.Helper()
	cells := make([]string, w*h)
	for i := range cells {
		cells[i] = "0"
		if solid(i%w, i/w) {
			cells[i] = "3"
		}
	}
	doc := fmt.Sprintf(`{"width":%d,"height":%d,"tilewidth":16,"tileheight":16,"layers":[
		{"name":"platforms","type":"tilelayer","width":%d,"height":%d,"data":[%s]}]}`,
		w, h, w, h, strings.Join(cells, ","))
	m, err := tilemap.Parse([]byte(doc))
	require.NoError(t, err)
	layer, ok := m.TileLayer("platforms")
	require.True(t, ok)
	return layer
}

func TestWorld_BodyLandsOnPlatform(t *testing.T) {
	w := New(Config{Gravity: 500, Iterations: 10})
	defer w.Close()

	w.AddPlatforms(floorLayer(t, 4, 10, 8))
	w.AddBody(1, engine.GroupPlayer, engine.BodySpec{X: 24, Y: 100, W: 16, H: 16})
	w.Collide(engine.GroupPlayer, engine.GroupPlatforms)

	w.Step(dt)
	assert.False(t, w.Grounded(1), "still falling")

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	x, y := w.Position(1)
	assert.InDelta(t, 24.0, x, 0.01)
	assert.InDelta(t, 120.0, y, 1.0, "rests on top of row 8")
	assert.True(t, w.Grounded(1))

	_, vy := w.Velocity(1)
	assert.InDelta(t, 0.0, vy, 10.0)
}

func TestWorld_BoundsStopBody(t *testing.T) {
	w := New(Config{Gravity: 500})
	defer w.Close()

	w.SetBounds(64, 80)
	w.AddBody(1, engine.GroupPlayer, engine.BodySpec{X: 32, Y: 20, W: 16, H: 16})
	w.Collide(engine.GroupPlayer, engine.GroupBounds)

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	_, y := w.Position(1)
	assert.InDelta(t, 71.0, y, 1.0, "rests on the inner edge of the bottom segment")
}

func TestWorld_NoRuleMeansNoContact(t *testing.T) {
	w := New(Config{})
	defer w.Close()

	w.AddPlatforms(floorLayer(t, 4, 4, 1))
	w.AddBody(1, engine.GroupPlayer, engine.BodySpec{X: 24, Y: 8, W: 16, H: 16})

	w.SetVelocity(1, 0, 60)
	for i := 0; i < 60; i++ {
		w.Step(dt)
	}

	// The first Step integrates positions before the new velocity applies.
	_, y := w.Position(1)
	assert.InDelta(t, 67.0, y, 0.5, "passes through platforms without a rule")
}

func TestWorld_OverlapFiresOnce(t *testing.T) {
	w := New(Config{})
	defer w.Close()

	const player, gem = ecs.EntityID(1), ecs.EntityID(2)
	w.AddBody(player, engine.GroupPlayer, engine.BodySpec{X: 20, Y: 20, W: 16, H: 16})
	w.AddBody(gem, engine.GroupPickups, engine.BodySpec{X: 22, Y: 20, W: 8, H: 8, Static: true, Sensor: true})

	var calls [][2]ecs.EntityID
	w.Overlap(engine.GroupPlayer, engine.GroupPickups, func(a, b ecs.EntityID) {
		calls = append(calls, [2]ecs.EntityID{a, b})
	})

	w.Step(dt)
	w.Step(dt)
	w.Step(dt)

	require.Len(t, calls, 1)
	assert.Equal(t, [2]ecs.EntityID{player, gem}, calls[0])

	x, y := w.Position(gem)
	assert.Equal(t, 22.0, x)
	assert.Equal(t, 20.0, y)
}

func TestWorld_OverlapArgumentOrder(t *testing.T) {
	w := New(Config{})
	defer w.Close()

	const player, skull = ecs.EntityID(7), ecs.EntityID(3)
	w.AddBody(player, engine.GroupPlayer, engine.BodySpec{X: 20, Y: 20, W: 16, H: 16})
	w.AddBody(skull, engine.GroupEnemies, engine.BodySpec{X: 24, Y: 20, W: 16, H: 16})

	var got [2]ecs.EntityID
	w.Overlap(engine.GroupEnemies, engine.GroupPlayer, func(a, b ecs.EntityID) {
		got = [2]ecs.EntityID{a, b}
	})

	w.Step(dt)

	assert.Equal(t, [2]ecs.EntityID{skull, player}, got)

	px, _ := w.Position(player)
	assert.InDelta(t, 20.0, px, 0.001, "overlap does not push")
}

func TestWorld_RemovedBodiesSkipPendingEvents(t *testing.T) {
	w := New(Config{})
	defer w.Close()

	w.AddBody(1, engine.GroupPlayer, engine.BodySpec{X: 20, Y: 20, W: 16, H: 16})
	w.AddBody(2, engine.GroupPickups, engine.BodySpec{X: 18, Y: 20, W: 8, H: 8, Static: true, Sensor: true})
	w.AddBody(3, engine.GroupPickups, engine.BodySpec{X: 22, Y: 20, W: 8, H: 8, Static: true, Sensor: true})

	calls := 0
	w.Overlap(engine.GroupPlayer, engine.GroupPickups, func(a, b ecs.EntityID) {
		calls++
		w.RemoveBody(a)
	})

	w.Step(dt)

	assert.Equal(t, 1, calls)
}

func TestWorld_RemoveBody(t *testing.T) {
	w := New(Config{})
	defer w.Close()

	w.AddBody(2, engine.GroupPickups, engine.BodySpec{X: 20, Y: 20, W: 8, H: 8, Static: true, Sensor: true})
	w.RemoveBody(2)
	w.RemoveBody(2)

	w.AddBody(1, engine.GroupPlayer, engine.BodySpec{X: 20, Y: 20, W: 16, H: 16})
	called := false
	w.Overlap(engine.GroupPlayer, engine.GroupPickups, func(a, b ecs.EntityID) { called = true })
	w.Step(dt)

	assert.False(t, called)
	x, y := w.Position(2)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestWorld_SetVelocity(t *testing.T) {
	w := New(Config{})
	defer w.Close()

	w.AddBody(1, engine.GroupPlayer, engine.BodySpec{X: 0, Y: 0, W: 16, H: 16})
	w.SetVelocity(1, 100, -200)

	vx, vy := w.Velocity(1)
	assert.Equal(t, 100.0, vx)
	assert.Equal(t, -200.0, vy)

	w.Step(0.5)
	x, y := w.Position(1)
	assert.Zero(t, x, "positions move with the old velocity")
	assert.Zero(t, y)

	vx, vy = w.Velocity(1)
	assert.Equal(t, 100.0, vx)
	assert.Equal(t, -200.0, vy)

	w.Step(0.5)
	x, y = w.Position(1)
	assert.InDelta(t, 50.0, x, 0.01)
	assert.InDelta(t, -100.0, y, 0.01)
}

func TestWorld_SteeredBodyStopsAtWall(t *testing.T) {
	for _, group := range []engine.Group{engine.GroupPlayer, engine.GroupEnemies} {
		t.Run(group.String(), func(t *testing.T) {
			w := New(Config{Gravity: 500, Iterations: 10})
			defer w.Close()

			// Floor on row 9, wall at column 6 (x 96..112).
			w.AddPlatforms(gridLayer(t, 12, 10, func(col, row int) bool {
				return row == 9 || col == 6
			}))
			w.AddBody(1, group, engine.BodySpec{X: 40, Y: 130, W: 16, H: 20})
			w.Collide(group, engine.GroupPlatforms)

			maxX := 0.0
			for i := 0; i < 180; i++ {
				_, vy := w.Velocity(1)
				w.SetVelocity(1, 300, vy)
				w.Step(dt)
				x, _ := w.Position(1)
				if i > 60 && x > maxX {
					maxX = x
				}
			}

			x, y := w.Position(1)
			assert.InDelta(t, 88.0, x, 0.5, "right edge rests on the wall")
			assert.LessOrEqual(t, maxX, 88.5, "never passes the wall once settled")
			assert.InDelta(t, 134.0, y, 1.0, "still on the floor")
		})
	}
}

func TestWorld_SteeredBodyStaysInBounds(t *testing.T) {
	for _, group := range []engine.Group{engine.GroupPlayer, engine.GroupEnemies} {
		t.Run(group.String(), func(t *testing.T) {
			w := New(Config{Gravity: 500})
			defer w.Close()

			w.SetBounds(64, 80)
			w.AddBody(1, group, engine.BodySpec{X: 32, Y: 40, W: 16, H: 16})
			w.Collide(group, engine.GroupBounds)

			for i := 0; i < 180; i++ {
				w.SetVelocity(1, 300, -300)
				w.Step(dt)
				x, y := w.Position(1)
				require.Less(t, x, 64.0, "frame %d", i)
				require.Greater(t, y, 0.0, "frame %d", i)
			}

			x, y := w.Position(1)
			assert.InDelta(t, 55.0, x, 0.5)
			assert.InDelta(t, 9.0, y, 0.5)
		})
	}
}

func TestWorld_AfterClose(t *testing.T) {
	w := New(Config{Gravity: 500})
	w.AddBody(1, engine.GroupPlayer, engine.BodySpec{W: 16, H: 16})
	w.Close()

	assert.NotPanics(t, func() {
		w.Step(dt)
		w.SetBounds(10, 10)
		w.AddBody(2, engine.GroupPlayer, engine.BodySpec{W: 1, H: 1})
		w.RemoveBody(1)
		w.SetVelocity(1, 1, 1)
	})
	assert.False(t, w.Grounded(1))
}
