// Package result provides the end-of-run screen.
package result

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/gemrun/internal/application/scene"
	"github.com/younwookim/gemrun/internal/application/state"
	"github.com/younwookim/gemrun/internal/engine"
)

var (
	colorComplete = color.RGBA{30, 60, 40, 255}
	colorGameOver = color.RGBA{60, 20, 30, 255}
)

// RestartFunc builds the first scene of a fresh run.
type RestartFunc func() (scene.Scene, error)

// Summary is what the screen shows.
type Summary struct {
	Outcome state.GameState // StateComplete or StateGameOver
	Level   string          // level the run ended on
	Score   int
	Best    int
	NewBest bool
}

// Result shows the final score until Confirm is pressed.
type Result struct {
	summary Summary
	input   engine.Input
	restart RestartFunc
}

var _ scene.Scene = (*Result)(nil)

// New creates a result screen.
func New(summary Summary, input engine.Input, restart RestartFunc) *Result {
	return &Result{summary: summary, input: input, restart: restart}
}

// Summary returns the run summary.
func (r *Result) Summary() Summary {
	return r.summary
}

func (r *Result) Update(float64) (scene.Scene, error) {
	if r.input == nil || r.restart == nil {
		return nil, nil
	}
	if r.input.Poll().Confirm {
		return r.restart()
	}
	return nil, nil
}

func (r *Result) Draw(screen *ebiten.Image) {
	bg := colorGameOver
	title := "GAME OVER"
	if r.summary.Outcome == state.StateComplete {
		bg = colorComplete
		title = "ALL LEVELS CLEAR"
	}
	screen.Fill(bg)

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	x := w/2 - 60
	y := h/2 - 30

	ebitenutil.DebugPrintAt(screen, title, x, y)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level: %s", r.summary.Level), x, y+16)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", r.summary.Score), x, y+32)
	best := fmt.Sprintf("Best:  %d", r.summary.Best)
	if r.summary.NewBest {
		best += "  NEW!"
	}
	ebitenutil.DebugPrintAt(screen, best, x, y+48)
	ebitenutil.DebugPrintAt(screen, "Press ENTER to play again", x, y+72)
}

func (r *Result) OnEnter() error { return nil }

func (r *Result) OnExit() {}
