// Package replay records player input and plays it back.
//
// A recording is the per-frame engine.InputState of a run, stored as JSON.
// The game is deterministic for a fixed timestep, so replaying the same
// frames from the same level reproduces the run.
package replay

import "github.com/younwookim/gemrun/internal/engine"

// Version is the current file format version.
const Version = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	J  bool `json:"j,omitempty"`  // Jump
	JP bool `json:"jp,omitempty"` // JumpPressed
	P  bool `json:"p,omitempty"`  // Pause
	C  bool `json:"c,omitempty"`  // Confirm
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

func toFrame(f int, in engine.InputState) FrameInput {
	return FrameInput{
		F:  f,
		L:  in.Left,
		R:  in.Right,
		J:  in.Jump,
		JP: in.JumpPressed,
		P:  in.Pause,
		C:  in.Confirm,
	}
}

func (fi FrameInput) state() engine.InputState {
	return engine.InputState{
		Left:        fi.L,
		Right:       fi.R,
		Jump:        fi.J,
		JumpPressed: fi.JP,
		Pause:       fi.P,
		Confirm:     fi.C,
	}
}
