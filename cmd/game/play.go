package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/gemrun/internal/application/game"
	"github.com/younwookim/gemrun/internal/application/replay"
	"github.com/younwookim/gemrun/internal/application/scene"
	"github.com/younwookim/gemrun/internal/application/sequence"
	"github.com/younwookim/gemrun/internal/application/system"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/infrastructure/save"
	"github.com/younwookim/gemrun/internal/infrastructure/watch"
)

type playFlags struct {
	maps   string
	level  string
	record string
	watch  bool
}

// openStore opens the progress storage for app. Unreadable progress starts
// over but is still saved; only a storage that cannot be opened at all
// falls back to memory.
func openStore(app string, logger *log.Logger) *save.Store {
	store, err := save.Open(app)
	if err == nil {
		return store
	}
	if store != nil {
		logger.Warn("saved progress is unreadable, starting over", "error", err)
		return store
	}
	logger.Warn("progress will not be saved", "error", err)
	store, _ = save.New(nil)
	return store
}

func runPlay(cmd *cobra.Command, flags *rootFlags, play *playFlags) error {
	logger, err := newLogger(flags.logLevel)
	if err != nil {
		return err
	}

	a, err := loadAssets(flags.configDir, play.maps)
	if err != nil {
		return err
	}
	start, err := a.startLevel(play.level)
	if err != nil {
		return err
	}

	store := openStore(appName, logger)

	var input engine.Input = system.NewKeyboardInput(system.DefaultBindings)
	var recorder *replay.Recorder
	if play.record != "" {
		recorder = replay.NewRecorder(input, start)
		input = recorder
	}

	seq, err := a.sequencer(input, store, logger)
	if err != nil {
		return err
	}
	first, err := seq.Start(start, sequence.Payload{})
	if err != nil {
		return err
	}

	d := a.cfg.Display
	g, err := game.New(first, d.ScreenWidth, d.ScreenHeight)
	if err != nil {
		return err
	}
	g.SetDT(1.0 / float64(d.Framerate))
	defer g.Close()

	if play.watch {
		stop, err := watchMaps(g, a, seq, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle("Gem Run")
	ebiten.SetTPS(d.Framerate)

	runErr := ebiten.RunGame(g)

	if recorder != nil {
		saveRecording(recorder, play.record, logger)
	}
	if runErr != nil {
		return fmt.Errorf("game stopped: %w", runErr)
	}
	return nil
}

// watchMaps restarts the current level whenever its map changes on disk.
func watchMaps(g *game.Game, a *assets, seq *sequence.Sequencer, logger *log.Logger) (func(), error) {
	if a.mapsDir == "" {
		return nil, fmt.Errorf("--watch needs maps on disk; pass --config or --maps")
	}

	w, err := watch.NewWatcher(a.mapsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", a.mapsDir, err)
	}
	go func() {
		for err := range w.Errors {
			logger.Warn("map watcher", "error", err)
		}
	}()

	g.WatchReload(w.Events, func(path string) (scene.Scene, error) {
		a.maps.Invalidate("")
		return seq.Reload(path)
	})
	logger.Info("watching maps", "dir", a.mapsDir)

	return func() { _ = w.Close() }, nil
}

func saveRecording(r *replay.Recorder, filename string, logger *log.Logger) {
	if filename == "" {
		filename = fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
	}
	if err := r.Save(filename); err != nil {
		logger.Error("failed to save recording", "file", filename, "error", err)
		return
	}
	logger.Info("recording saved", "file", filename, "frames", r.FrameCount())
}
