// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/gemrun/internal/application/scene"
)

// ReloadFunc builds the scene to switch to after a watched file changed.
// Returning a nil scene keeps the current one.
type ReloadFunc func(path string) (scene.Scene, error)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frame   int

	reloads <-chan string
	reload  ReloadFunc
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) (*Game, error) {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	if err := g.current.OnEnter(); err != nil {
		return nil, fmt.Errorf("failed to enter initial scene: %w", err)
	}
	return g, nil
}

// WatchReload makes Update consult events before every frame. Each path
// received is passed to fn and the returned scene replaces the current one.
func (g *Game) WatchReload(events <-chan string, fn ReloadFunc) {
	g.reloads = events
	g.reload = fn
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if err := g.pollReload(); err != nil {
		return err
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	g.frame++

	// Handle scene transition
	if next != nil {
		return g.switchTo(next)
	}

	return nil
}

func (g *Game) pollReload() error {
	if g.reloads == nil || g.reload == nil {
		return nil
	}
	select {
	case path, ok := <-g.reloads:
		if !ok {
			g.reloads = nil
			return nil
		}
		next, err := g.reload(path)
		if err != nil {
			return fmt.Errorf("failed to reload %s: %w", path, err)
		}
		if next != nil {
			return g.switchTo(next)
		}
	default:
	}
	return nil
}

func (g *Game) switchTo(next scene.Scene) error {
	g.current.OnExit()
	g.current = next
	return g.current.OnEnter()
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}

// Frame returns the number of completed updates.
func (g *Game) Frame() int {
	return g.frame
}

// Close exits the current scene.
func (g *Game) Close() {
	g.current.OnExit()
}
