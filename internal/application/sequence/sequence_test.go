package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gemrun/internal/application/scene"
	"github.com/younwookim/gemrun/internal/application/scene/level"
	"github.com/younwookim/gemrun/internal/application/scene/result"
	"github.com/younwookim/gemrun/internal/application/state"
	"github.com/younwookim/gemrun/internal/application/system"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/engine/enginetest"
	"github.com/younwookim/gemrun/internal/infrastructure/config"
	"github.com/younwookim/gemrun/internal/infrastructure/save"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

const dt = 1.0 / 60

// exit tile at (9, 3); the player spawns at (24, 40).
func buildMap(t *testing.T, gems int) *tilemap.Map {
	t.Helper()
	objs := []enginetest.Obj{{ID: 1, Type: system.TypePlayerSpawner, X: 24, Y: 40}}
	for i := 0; i < gems; i++ {
		objs = append(objs, enginetest.Obj{ID: 10 + i, Type: system.TypePickup, X: float64(48 + 16*i), Y: 32, W: 16, H: 16})
	}
	objs = append(objs, enginetest.Obj{ID: 20, Type: system.TypeEnemySpawner, X: 64, Y: 40, W: 32, H: 8})

	m, err := enginetest.NewMapBuilder(10, 5, 16).
		Tiles("platforms", enginetest.Row(nil, 4, 0, 9, 1)).
		Tiles("exit", map[[2]int]int{{9, 3}: 206}).
		Objects("objects", objs...).
		Build()
	require.NoError(t, err)
	return m
}

type harness struct {
	seq   *Sequencer
	input *enginetest.ScriptedInput
	phys  []*enginetest.FakePhysics
	store *save.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Levels = []config.LevelConfig{
		{Key: "level1", Map: "maps/level1.json", SpawnPolicy: config.SpawnRequire},
		{Key: "level2", Map: "maps/level2.json", SpawnPolicy: config.SpawnRequire},
	}
	store, err := save.New(nil)
	require.NoError(t, err)

	h := &harness{input: &enginetest.ScriptedInput{}, store: store}
	seq, err := New(Options{
		Config: cfg,
		Maps: &enginetest.MapSource{Maps: map[string]*tilemap.Map{
			"maps/level1.json": buildMap(t, 1),
			"maps/level2.json": buildMap(t, 0),
		}},
		NewPhysics: func() engine.Physics {
			p := enginetest.NewFakePhysics()
			h.phys = append(h.phys, p)
			return p
		},
		Input: h.input,
		Store: store,
	})
	require.NoError(t, err)
	h.seq = seq
	return h
}

func (h *harness) physics() *enginetest.FakePhysics {
	return h.phys[len(h.phys)-1]
}

// reachExit puts the player on the exit tile and runs one frame.
func (h *harness) reachExit(t *testing.T, l *level.Level) scene.Scene {
	t.Helper()
	h.physics().Place(l.World().PlayerID, 9*16+8, 3*16+8)
	next, err := l.Update(dt)
	require.NoError(t, err)
	require.NotNil(t, next)
	return next
}

func (h *harness) collectAll(t *testing.T, l *level.Level) {
	t.Helper()
	w := l.World()
	for _, id := range w.Pickups() {
		require.NoError(t, h.physics().Fire(w.PlayerID, id))
	}
}

func TestSequencer_Start(t *testing.T) {
	h := newHarness(t)

	l, err := h.seq.Start("level1", Payload{})
	require.NoError(t, err)
	assert.Equal(t, "level1", l.Key())
	assert.Equal(t, 25, l.Score(), "absent score starts at the configured start score")

	l, err = h.seq.Start("level2", WithScore(70))
	require.NoError(t, err)
	assert.Equal(t, 70, l.Score())
	assert.Same(t, l, h.seq.Current())

	_, err = h.seq.Start("level9", Payload{})
	assert.EqualError(t, err, `unknown level "level9"`)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Config: &config.GameConfig{}})
	assert.Error(t, err)

	_, err = New(Options{Config: config.Default()})
	assert.Error(t, err)
}

func TestSequencer_CarriesScoreWithoutPickups(t *testing.T) {
	h := newHarness(t)
	l1, err := h.seq.First()
	require.NoError(t, err)
	require.NoError(t, l1.OnEnter())

	next := h.reachExit(t, l1)

	l2, ok := next.(*level.Level)
	require.True(t, ok)
	assert.Equal(t, "level2", l2.Key())
	assert.Equal(t, 25, l2.Score())
}

func TestSequencer_CarriesCollectedScore(t *testing.T) {
	h := newHarness(t)
	l1, err := h.seq.First()
	require.NoError(t, err)
	require.NoError(t, l1.OnEnter())
	h.collectAll(t, l1)

	l2 := h.reachExit(t, l1).(*level.Level)

	assert.Equal(t, 35, l2.Score())
	assert.Equal(t, 35, l2.EntryScore())
}

func TestSequencer_CompleteRun(t *testing.T) {
	h := newHarness(t)
	l1, err := h.seq.First()
	require.NoError(t, err)
	require.NoError(t, l1.OnEnter())
	h.collectAll(t, l1)

	l2 := h.reachExit(t, l1).(*level.Level)
	l1.OnExit()
	require.NoError(t, l2.OnEnter())

	res, ok := h.reachExit(t, l2).(*result.Result)
	require.True(t, ok)
	assert.Equal(t, result.Summary{
		Outcome: state.StateComplete,
		Level:   "level2",
		Score:   35,
		Best:    35,
		NewBest: true,
	}, res.Summary())

	p := h.store.Progress()
	assert.Equal(t, 1, p.Runs)
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, "level2", p.BestLevel)

	h.input.States = []engine.InputState{{Confirm: true}}
	next, err := res.Update(dt)
	require.NoError(t, err)
	fresh, ok := next.(*level.Level)
	require.True(t, ok)
	assert.Equal(t, "level1", fresh.Key())
	assert.Equal(t, 25, fresh.Score(), "a fresh run resets the score")
}

func TestSequencer_GameOver(t *testing.T) {
	h := newHarness(t)
	l1, err := h.seq.First()
	require.NoError(t, err)
	require.NoError(t, l1.OnEnter())
	w := l1.World()
	skull := w.Enemies()[0]
	h.physics().OnStep = func(p *enginetest.FakePhysics) {
		_ = p.Fire(skull, w.PlayerID)
	}

	next, err := l1.Update(dt)
	require.NoError(t, err)

	res, ok := next.(*result.Result)
	require.True(t, ok)
	assert.Equal(t, state.StateGameOver, res.Summary().Outcome)
	assert.Equal(t, "level1", res.Summary().Level)
	assert.Equal(t, 25, res.Summary().Score)
	assert.Equal(t, 0, h.store.Progress().Completed)
	assert.Equal(t, 1, h.store.Progress().Runs)
}

func TestSequencer_BestScoreKept(t *testing.T) {
	h := newHarness(t)

	_, err := h.seq.PlayerDefeated("level2", 80)
	require.NoError(t, err)
	next, err := h.seq.PlayerDefeated("level1", 25)
	require.NoError(t, err)

	s := next.(*result.Result).Summary()
	assert.Equal(t, 80, s.Best)
	assert.False(t, s.NewBest)
}

func TestSequencer_Reload(t *testing.T) {
	h := newHarness(t)
	l1, err := h.seq.First()
	require.NoError(t, err)
	require.NoError(t, l1.OnEnter())
	l2 := h.reachExit(t, l1).(*level.Level)
	require.NoError(t, l2.OnEnter())
	h.collectAll(t, l2)

	next, err := h.seq.Reload("/tmp/maps/level1.json")
	require.NoError(t, err)
	assert.Nil(t, next, "other maps are ignored")

	next, err = h.seq.Reload("/tmp/maps/level2.json")
	require.NoError(t, err)
	reloaded, ok := next.(*level.Level)
	require.True(t, ok)
	assert.Equal(t, "level2", reloaded.Key())
	assert.Equal(t, 25, reloaded.Score(), "restarts with the entry score")
}

func TestSequencer_ReloadAfterRunEnded(t *testing.T) {
	h := newHarness(t)
	l1, err := h.seq.First()
	require.NoError(t, err)
	require.NoError(t, l1.OnEnter())
	l2 := h.reachExit(t, l1).(*level.Level)
	require.NoError(t, l2.OnEnter())
	h.reachExit(t, l2)

	next, err := h.seq.Reload("maps/level2.json")
	require.NoError(t, err)
	assert.Nil(t, next)
}
