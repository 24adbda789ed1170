// Package tilemap reads Tiled JSON maps (orthogonal, finite).
package tilemap

import (
	"math"

	"github.com/younwookim/gemrun/internal/domain/entity"
)

// gidMask strips the Tiled flip/rotation flags from a global tile id.
const gidMask = 0x1FFFFFFF

// Map is a loaded tilemap.
type Map struct {
	Width      int // in tiles
	Height     int
	TileWidth  int
	TileHeight int

	tileLayers   map[string]*TileLayer
	objectLayers map[string]*ObjectLayer
	order        []string
}

// WidthInPixels returns the map width in world pixels.
func (m *Map) WidthInPixels() float64 {
	return float64(m.Width * m.TileWidth)
}

// HeightInPixels returns the map height in world pixels.
func (m *Map) HeightInPixels() float64 {
	return float64(m.Height * m.TileHeight)
}

// TileLayer returns the tile layer with the given name.
func (m *Map) TileLayer(name string) (*TileLayer, bool) {
	l, ok := m.tileLayers[name]
	return l, ok
}

// ObjectLayer returns the object layer with the given name.
func (m *Map) ObjectLayer(name string) (*ObjectLayer, bool) {
	l, ok := m.objectLayers[name]
	return l, ok
}

// LayerNames lists every layer in file order (groups flattened).
func (m *Map) LayerNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// TileLayer is a grid of tile indices. Index 0 means no tile.
type TileLayer struct {
	Name       string
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	Visible    bool

	data []int
}

// TileAt returns the tile index at tile coordinates, or 0 outside the layer.
func (l *TileLayer) TileAt(tx, ty int) int {
	if tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return 0
	}
	return l.data[ty*l.Width+tx]
}

// TileAtWorld returns the tile index under a world position.
// ok is false when the position is outside the layer or the cell is empty.
func (l *TileLayer) TileAtWorld(x, y float64) (index int, ok bool) {
	if l.TileWidth <= 0 || l.TileHeight <= 0 {
		return 0, false
	}
	tx := int(math.Floor(x / float64(l.TileWidth)))
	ty := int(math.Floor(y / float64(l.TileHeight)))
	index = l.TileAt(tx, ty)
	return index, index != 0
}

// Each calls fn for every non-empty cell in row-major order.
func (l *TileLayer) Each(fn func(tx, ty, index int)) {
	for i, index := range l.data {
		if index == 0 {
			continue
		}
		fn(i%l.Width, i/l.Width, index)
	}
}

// Count returns the number of non-empty cells.
func (l *TileLayer) Count() int {
	n := 0
	for _, index := range l.data {
		if index != 0 {
			n++
		}
	}
	return n
}

// ObjectLayer holds the objects placed in the editor.
type ObjectLayer struct {
	Name    string
	Objects []Object
}

// Object is a placed map object.
type Object struct {
	ID         int
	Name       string
	Type       string
	X, Y       float64 // top-left
	Width      float64
	Height     float64
	GID        int // non-zero for tile objects
	Properties []entity.Property
}

// Rect returns the object's rectangle in world pixels.
func (o Object) Rect() entity.Rect {
	return entity.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// ObjectsOfType returns the objects with the given type in layer order.
func (l *ObjectLayer) ObjectsOfType(typ string) []Object {
	var out []Object
	for _, o := range l.Objects {
		if o.Type == typ {
			out = append(out, o)
		}
	}
	return out
}
