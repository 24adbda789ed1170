package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/gemrun/internal/application/game"
	"github.com/younwookim/gemrun/internal/application/replay"
	"github.com/younwookim/gemrun/internal/application/scene/level"
	"github.com/younwookim/gemrun/internal/application/scene/result"
	"github.com/younwookim/gemrun/internal/application/sequence"
	"github.com/younwookim/gemrun/internal/application/state"
)

func newReplayCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Re-run a recording without a window",
		Long: `Plays a recording made with --record against the configured levels
using the real physics, then prints where the run ended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(flags.logLevel)
			if err != nil {
				return err
			}
			a, err := loadAssets(flags.configDir, "")
			if err != nil {
				return err
			}
			data, err := replay.LoadReplay(args[0])
			if err != nil {
				return err
			}

			out, err := runReplay(a, *data, logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// replayOutcome describes where a replayed run stopped.
type replayOutcome struct {
	Frames int
	Level  string
	State  state.GameState
	Score  int
}

func (o replayOutcome) String() string {
	return fmt.Sprintf("frames=%d level=%s state=%s score=%d", o.Frames, o.Level, o.State, o.Score)
}

// replaySession is a headless game fed by a recording.
type replaySession struct {
	game     *game.Game
	replayer *replay.Replayer
}

func newReplaySession(a *assets, data replay.ReplayData, logger *log.Logger) (*replaySession, error) {
	start, err := a.startLevel(data.Level)
	if err != nil {
		return nil, err
	}

	replayer := replay.NewReplayer(data)
	seq, err := a.sequencer(replayer, nil, logger)
	if err != nil {
		return nil, err
	}
	first, err := seq.Start(start, sequence.Payload{})
	if err != nil {
		return nil, err
	}

	d := a.cfg.Display
	g, err := game.New(first, d.ScreenWidth, d.ScreenHeight)
	if err != nil {
		return nil, err
	}
	g.SetDT(1.0 / float64(d.Framerate))

	logger.Info("replaying", "level", start, "frames", replayer.TotalFrames())
	return &replaySession{game: g, replayer: replayer}, nil
}

// step runs one frame. It reports false once the recording is used up.
func (s *replaySession) step() (bool, error) {
	if s.replayer.Done() {
		return false, nil
	}
	if err := s.game.Update(); err != nil {
		return false, fmt.Errorf("frame %d: %w", s.replayer.CurrentFrame(), err)
	}
	return true, nil
}

func (s *replaySession) outcome() replayOutcome {
	out := replayOutcome{Frames: s.game.Frame()}
	switch sc := s.game.Current().(type) {
	case *level.Level:
		out.Level, out.State, out.Score = sc.Key(), sc.State(), sc.Score()
	case *result.Result:
		sum := sc.Summary()
		out.Level, out.State, out.Score = sum.Level, sum.Outcome, sum.Score
	}
	return out
}

func (s *replaySession) close() {
	s.game.Close()
}

// runReplay drives the game loop once per recorded frame.
func runReplay(a *assets, data replay.ReplayData, logger *log.Logger) (replayOutcome, error) {
	s, err := newReplaySession(a, data, logger)
	if err != nil {
		return replayOutcome{}, err
	}
	defer s.close()

	for {
		more, err := s.step()
		if err != nil {
			return replayOutcome{}, err
		}
		if !more {
			return s.outcome(), nil
		}
	}
}
