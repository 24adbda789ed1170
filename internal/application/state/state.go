package state

import "fmt"

// GameState represents the current state of a level or run
type GameState int

const (
	StateLoading GameState = iota
	StatePlaying
	StatePaused
	StateLevelClear
	StateGameOver
	StateComplete
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateLevelClear:
		return "LevelClear"
	case StateGameOver:
		return "GameOver"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition can leave s.
func (s GameState) Terminal() bool {
	return s == StateLevelClear || s == StateGameOver || s == StateComplete
}

var transitions = map[GameState][]GameState{
	StateLoading: {StatePlaying},
	StatePlaying: {StatePaused, StateLevelClear, StateGameOver, StateComplete},
	StatePaused:  {StatePlaying},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to GameState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine tracks a state and rejects invalid transitions.
type Machine struct {
	current GameState
}

// NewMachine starts in StateLoading.
func NewMachine() *Machine {
	return &Machine{current: StateLoading}
}

// Current returns the current state.
func (m *Machine) Current() GameState {
	return m.current
}

// Is reports whether the machine is in s.
func (m *Machine) Is(s GameState) bool {
	return m.current == s
}

// Transition moves to the next state.
func (m *Machine) Transition(to GameState) error {
	if !CanTransition(m.current, to) {
		return fmt.Errorf("invalid state transition %s -> %s", m.current, to)
	}
	m.current = to
	return nil
}
