// Package sequence moves a run through the configured levels.
//
// Levels play in config order. Reaching the exit of a level starts the next
// one with the score carried over; leaving the last level completes the run.
// A skull touching the player ends the run. Both endings show a result
// screen that starts a fresh run on Confirm.
package sequence

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/younwookim/gemrun/internal/application/scene"
	"github.com/younwookim/gemrun/internal/application/scene/level"
	"github.com/younwookim/gemrun/internal/application/scene/result"
	"github.com/younwookim/gemrun/internal/application/state"
	"github.com/younwookim/gemrun/internal/engine"
	"github.com/younwookim/gemrun/internal/infrastructure/config"
	"github.com/younwookim/gemrun/internal/infrastructure/logging"
	"github.com/younwookim/gemrun/internal/infrastructure/save"
)

// Payload is handed to a level when it starts.
type Payload struct {
	// Score carried in from the previous level. Nil starts at the
	// configured start score.
	Score *int
}

// WithScore returns a payload carrying score.
func WithScore(score int) Payload {
	return Payload{Score: &score}
}

// Options configure a Sequencer.
type Options struct {
	Config     *config.GameConfig
	Maps       engine.MapSource
	NewPhysics func() engine.Physics
	Input      engine.Input
	Store      *save.Store // optional
	Logger     *log.Logger
}

// Sequencer starts levels and decides what follows each one.
type Sequencer struct {
	opts    Options
	log     *log.Logger
	current *level.Level
}

var _ level.Outcome = (*Sequencer)(nil)

// New creates a sequencer.
func New(opts Options) (*Sequencer, error) {
	if opts.Config == nil || len(opts.Config.Levels) == 0 {
		return nil, errors.New("sequence: no levels configured")
	}
	if opts.Maps == nil || opts.NewPhysics == nil || opts.Input == nil {
		return nil, errors.New("sequence: incomplete options")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Sequencer{opts: opts, log: logger}, nil
}

// Start creates the level named key. The level is loaded when the game
// enters it.
func (s *Sequencer) Start(key string, p Payload) (*level.Level, error) {
	cfg, ok := s.opts.Config.Level(key)
	if !ok {
		return nil, fmt.Errorf("unknown level %q", key)
	}

	score := s.opts.Config.Scoring.StartScore
	if p.Score != nil {
		score = *p.Score
	}

	l := level.New(cfg, score, level.Deps{
		Config:     s.opts.Config,
		Maps:       s.opts.Maps,
		NewPhysics: s.opts.NewPhysics,
		Input:      s.opts.Input,
		Outcome:    s,
		Logger:     s.log,
	})
	s.current = l
	return l, nil
}

// First starts a fresh run at the first level.
func (s *Sequencer) First() (*level.Level, error) {
	return s.Start(s.opts.Config.Levels[0].Key, Payload{})
}

// Restart is First as a result.RestartFunc.
func (s *Sequencer) Restart() (scene.Scene, error) {
	return s.startScene(s.opts.Config.Levels[0].Key, Payload{})
}

// startScene is Start returning an untyped nil scene on error.
func (s *Sequencer) startScene(key string, p Payload) (scene.Scene, error) {
	l, err := s.Start(key, p)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Current returns the most recently started level.
func (s *Sequencer) Current() *level.Level {
	return s.current
}

// ExitReached starts the next level, or completes the run after the last one.
func (s *Sequencer) ExitReached(key string, score int) (scene.Scene, error) {
	next, ok := s.opts.Config.NextLevel(key)
	if ok {
		s.log.Info("next level", "from", key, "to", next.Key, "score", score)
		return s.startScene(next.Key, WithScore(score))
	}

	s.log.Info("run complete", "score", score)
	return s.finish(state.StateComplete, key, score), nil
}

// PlayerDefeated ends the run.
func (s *Sequencer) PlayerDefeated(key string, score int) (scene.Scene, error) {
	s.log.Info("game over", "level", key, "score", score)
	return s.finish(state.StateGameOver, key, score), nil
}

func (s *Sequencer) finish(outcome state.GameState, key string, score int) scene.Scene {
	summary := result.Summary{Outcome: outcome, Level: key, Score: score, Best: score}

	if st := s.opts.Store; st != nil {
		newBest, err := st.RecordRun(score, key, outcome == state.StateComplete)
		if err != nil {
			s.log.Warn("failed to save progress", "error", err)
		}
		summary.Best = st.Best()
		summary.NewBest = newBest
	}

	return result.New(summary, s.opts.Input, s.Restart)
}

// Reload restarts the current level with the score it was entered with when
// path is its map. It returns nil when nothing should change, including
// after the run has ended.
func (s *Sequencer) Reload(path string) (scene.Scene, error) {
	if s.current == nil || s.current.State().Terminal() {
		return nil, nil
	}
	cfg, ok := s.opts.Config.Level(s.current.Key())
	if !ok || filepath.Base(cfg.Map) != filepath.Base(path) {
		s.log.Debug("ignoring change", "path", path)
		return nil, nil
	}

	s.log.Info("reloading level", "level", cfg.Key, "path", path)
	return s.startScene(cfg.Key, WithScore(s.current.EntryScore()))
}
