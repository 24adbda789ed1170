package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/younwookim/gemrun/internal/application/sequence"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/infrastructure/config"
	"github.com/younwookim/gemrun/internal/infrastructure/logging"
	"github.com/younwookim/gemrun/internal/infrastructure/physics"
	"github.com/younwookim/gemrun/internal/infrastructure/save"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

const mapsDir = "maps"

// assets are the loaded config and the map source for a run.
type assets struct {
	cfg  *config.GameConfig
	maps *tilemap.Loader
	// mapsDir is the on-disk maps directory, empty for built-in maps.
	mapsDir string
}

// loadAssets reads game.yaml from configDir, or the built-in configs when
// configDir is empty. Maps come from mapsOverride when set, else from the
// maps directory next to game.yaml.
func loadAssets(configDir, mapsOverride string) (*assets, error) {
	var (
		loader *config.Loader
		maps   *tilemap.Loader
		dir    string
	)

	if configDir == "" {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
		mapsFS, err := fs.Sub(fsys, mapsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get maps subfs: %w", err)
		}
		maps = tilemap.NewLoader(mapsFS)
	} else {
		loader = config.NewLoader(configDir)
		dir = filepath.Join(configDir, mapsDir)
	}

	if mapsOverride != "" {
		dir = mapsOverride
	}
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("maps directory: %w", err)
		}
		maps = tilemap.NewDirLoader(dir)
	}

	cfg, err := loader.LoadGame()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &assets{cfg: cfg, maps: maps, mapsDir: dir}, nil
}

// physicsFactory builds one Chipmunk world per level.
func (a *assets) physicsFactory() func() engine.Physics {
	pc := physics.Config{Gravity: a.cfg.Physics.Gravity, Iterations: a.cfg.Physics.Iterations}
	return func() engine.Physics {
		return physics.New(pc)
	}
}

func (a *assets) sequencer(input engine.Input, store *save.Store, logger *log.Logger) (*sequence.Sequencer, error) {
	return sequence.New(sequence.Options{
		Config:     a.cfg,
		Maps:       a.maps,
		NewPhysics: a.physicsFactory(),
		Input:      input,
		Store:      store,
		Logger:     logger,
	})
}

// startLevel returns key, or the first level when key is empty.
func (a *assets) startLevel(key string) (string, error) {
	if key == "" {
		return a.cfg.Levels[0].Key, nil
	}
	if _, ok := a.cfg.Level(key); !ok {
		return "", fmt.Errorf("unknown level %q (run 'game levels' to list them)", key)
	}
	return key, nil
}

func newLogger(level string) (*log.Logger, error) {
	return logging.New(os.Stderr, level, appName)
}
