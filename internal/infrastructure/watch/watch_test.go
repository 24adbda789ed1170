package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMapFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"maps/level1.json", true},
		{"maps/LEVEL2.JSON", true},
		{"maps/level3.tmj", true},
		{"maps/level1.tmx", false},
		{"configs/game.yaml", false},
		{"maps/.level1.json.swp", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMapFile(tt.path))
		})
	}
}

func TestWatcher_ReportsMapWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "level1.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	select {
	case path := <-w.Events:
		assert.Equal(t, target, path)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for map write")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, open := <-w.Events
	assert.False(t, open)
}
