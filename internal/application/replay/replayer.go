package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/gemrun/internal/engine"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

var _ engine.Input = (*Replayer)(nil)

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// Decode reads replay data from r.
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}
	return &data, nil
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Next returns the input for the current frame and advances
func (r *Replayer) Next() (engine.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return engine.InputState{}, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.state(), true
}

// Poll is Next without the flag. Past the last frame it reports idle input.
func (r *Replayer) Poll() engine.InputState {
	in, _ := r.Next()
	return in
}

// Done reports whether every recorded frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Level returns the level the recording starts at.
func (r *Replayer) Level() string {
	return r.data.Level
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing (idle player)
func CreateTestReplayData(frames int, level string) ReplayData {
	data := ReplayData{
		Version:   Version,
		Level:     level,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
	}

	return data
}
