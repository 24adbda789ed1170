package level

import (
	"math"

	"github.com/younwookim/gemrun/internal/domain/entity"
	"github.com/younwookim/gemrun/internal/infrastructure/config"
	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

// camera follows the player and never shows anything outside the map.
type camera struct {
	viewW, viewH   float64 // in world pixels
	worldW, worldH float64
	zoom           float64
	x, y           float64 // top-left in world pixels
}

func newCamera(d config.DisplayConfig, m *tilemap.Map) camera {
	zoom := d.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return camera{
		viewW:  float64(d.ScreenWidth) / zoom,
		viewH:  float64(d.ScreenHeight) / zoom,
		worldW: m.WidthInPixels(),
		worldH: m.HeightInPixels(),
		zoom:   zoom,
	}
}

// follow centres the view on p.
func (c *camera) follow(p entity.Point) {
	c.x = clampView(p.X-c.viewW/2, c.viewW, c.worldW)
	c.y = clampView(p.Y-c.viewH/2, c.viewH, c.worldH)
}

// clampView keeps a view of size view inside [0, world]. A world smaller
// than the view is pinned at 0.
func clampView(pos, view, world float64) float64 {
	if world <= view {
		return 0
	}
	return math.Max(0, math.Min(pos, world-view))
}

// rect converts a world rectangle to screen space.
func (c camera) rect(r entity.Rect) (x, y, w, h float64) {
	return (r.X - c.x) * c.zoom, (r.Y - c.y) * c.zoom, r.W * c.zoom, r.H * c.zoom
}

// visible reports whether a world rectangle intersects the view.
func (c camera) visible(r entity.Rect) bool {
	return r.Overlaps(entity.Rect{X: c.x, Y: c.y, W: c.viewW, H: c.viewH})
}
