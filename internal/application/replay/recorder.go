package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/gemrun/internal/engine"
)

// ErrEmpty is returned when saving a recording without frames.
var ErrEmpty = errors.New("no frames to save")

// Recorder wraps an input source and records every polled frame.
type Recorder struct {
	source    engine.Input
	data      ReplayData
	recording bool
}

var _ engine.Input = (*Recorder)(nil)

// NewRecorder records source, starting at level.
func NewRecorder(source engine.Input, level string) *Recorder {
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:   Version,
			Level:     level,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// Poll reads the wrapped input and records it.
func (r *Recorder) Poll() engine.InputState {
	in := r.source.Poll()
	if r.recording {
		r.data.Frames = append(r.data.Frames, toFrame(len(r.data.Frames), in))
	}
	return in
}

// Stop stops recording. Poll keeps passing input through.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording so far.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// Write encodes the recording as indented JSON.
func (r *Recorder) Write(w io.Writer) error {
	if len(r.data.Frames) == 0 {
		return ErrEmpty
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Save writes the recording to a file.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrEmpty
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := r.Write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
