package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/gemrun/internal/engine"
)

// KeyBindings lists the keys that drive each control.
type KeyBindings struct {
	Left    []ebiten.Key
	Right   []ebiten.Key
	Jump    []ebiten.Key
	Pause   []ebiten.Key
	Confirm []ebiten.Key
}

// DefaultBindings uses the cursor keys plus WASD-style alternatives.
var DefaultBindings = KeyBindings{
	Left:    []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
	Right:   []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
	Jump:    []ebiten.Key{ebiten.KeySpace},
	Pause:   []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
	Confirm: []ebiten.Key{ebiten.KeyEnter, ebiten.KeyZ},
}

// KeyboardInput reads the keyboard through ebiten.
type KeyboardInput struct {
	bindings KeyBindings
	pressed  func(ebiten.Key) bool
	just     func(ebiten.Key) bool
}

var _ engine.Input = (*KeyboardInput)(nil)

// NewKeyboardInput creates a keyboard input with the given bindings
func NewKeyboardInput(b KeyBindings) *KeyboardInput {
	return &KeyboardInput{
		bindings: b,
		pressed:  ebiten.IsKeyPressed,
		just:     inpututil.IsKeyJustPressed,
	}
}

// Poll reads the current input state
func (k *KeyboardInput) Poll() engine.InputState {
	return engine.InputState{
		Left:        anyKey(k.pressed, k.bindings.Left),
		Right:       anyKey(k.pressed, k.bindings.Right),
		Jump:        anyKey(k.pressed, k.bindings.Jump),
		JumpPressed: anyKey(k.just, k.bindings.Jump),
		Pause:       anyKey(k.just, k.bindings.Pause),
		Confirm:     anyKey(k.just, k.bindings.Confirm),
	}
}

func anyKey(check func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, key := range keys {
		if check(key) {
			return true
		}
	}
	return false
}
