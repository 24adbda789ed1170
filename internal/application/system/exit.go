package system

import "github.com/younwookim/gemrun/internal/domain/entity"

// TileQuery looks up the tile under a world position.
type TileQuery interface {
	TileAtWorld(x, y float64) (index int, ok bool)
}

// ExitDetector reports the first frame the player stands on an exit tile.
type ExitDetector struct {
	layer TileQuery
	fired bool
}

// NewExitDetector creates a detector over the exit layer. A nil layer never fires.
func NewExitDetector(layer TileQuery) *ExitDetector {
	return &ExitDetector{layer: layer}
}

// Check returns true exactly once, when (x, y) is first over an exit tile.
func (d *ExitDetector) Check(x, y float64) bool {
	if d.fired || d.layer == nil {
		return false
	}
	index, ok := d.layer.TileAtWorld(x, y)
	if !ok || !entity.IsExitTile(index) {
		return false
	}
	d.fired = true
	return true
}

// Fired reports whether the exit has been reached.
func (d *ExitDetector) Fired() bool {
	return d.fired
}
