package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadGame(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, 240, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 100.0, cfg.Player.Speed)
	assert.Equal(t, 200.0, cfg.Player.JumpSpeed)
	assert.Equal(t, 25, cfg.Scoring.StartScore)
	assert.Equal(t, 10, cfg.Scoring.PickupValue)
	assert.Equal(t, "platforms", cfg.Layers.Platforms)
	assert.Equal(t, "exit", cfg.Layers.Exit)

	require.Len(t, cfg.Levels, 2)
	assert.Equal(t, "level1", cfg.Levels[0].Key)
	assert.Equal(t, "level2", cfg.Levels[1].Key)
	assert.Equal(t, SpawnRequire, cfg.Levels[0].SpawnPolicy)
}

func TestLoader_DefaultsForOmittedFields(t *testing.T) {
	fsys := fstest.MapFS{
		"game.yaml": {Data: []byte(`
player:
  speed: 150
levels:
  - key: one
    map: one.json
`)},
	}

	cfg, err := NewFSLoader(fsys, ".").LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 150.0, cfg.Player.Speed)
	assert.Equal(t, 200.0, cfg.Player.JumpSpeed, "untouched fields keep defaults")
	assert.Equal(t, 25, cfg.Scoring.StartScore)
	assert.Equal(t, SpawnRequire, cfg.Levels[0].SpawnPolicy)
	assert.Equal(t, []string{"background", "background2"}, cfg.Layers.Background)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"no levels", "display:\n  scale: 2\n", "at least one level"},
		{"duplicate key", "levels:\n  - {key: a, map: a.json}\n  - {key: a, map: b.json}\n", "duplicate key"},
		{"unknown policy", "levels:\n  - {key: a, map: a.json, spawnPolicy: guess}\n", "unknown spawn policy"},
		{"missing map", "levels:\n  - {key: a}\n", "map is required"},
		{"bad size", "player: {width: 0}\nlevels:\n  - {key: a, map: a.json}\n", "player size"},
		{"bad yaml", "levels: [", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"game.yaml": {Data: []byte(tt.data)}}

			_, err := NewFSLoader(fsys, ".").LoadGame()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewFSLoader(fstest.MapFS{}, ".").LoadGame()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read game.yaml")
}

func TestGameConfig_LevelLookup(t *testing.T) {
	cfg := Default()
	cfg.Levels = []LevelConfig{{Key: "a", Map: "a.json"}, {Key: "b", Map: "b.json"}}

	lv, ok := cfg.Level("b")
	require.True(t, ok)
	assert.Equal(t, "b.json", lv.Map)

	next, ok := cfg.NextLevel("a")
	require.True(t, ok)
	assert.Equal(t, "b", next.Key)

	_, ok = cfg.NextLevel("b")
	assert.False(t, ok, "last level has no successor")

	_, ok = cfg.Level("zzz")
	assert.False(t, ok)
}
