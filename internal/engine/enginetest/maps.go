package enginetest

import (
	"encoding/json"

	"github.com/younwookim/gemrun/internal/infrastructure/tilemap"
)

// Obj is an object placed by MapBuilder.
type Obj struct {
	ID         int
	Type       string
	X, Y, W, H float64
	Props      []Prop
}

// Prop is a custom object property. A nil Value is written without a value.
type Prop struct {
	Name  string
	Type  string
	Value any
}

// MapBuilder assembles small Tiled JSON maps for tests.
type MapBuilder struct {
	width, height, tile int
	layers              []map[string]any
}

// NewMapBuilder starts a map of w x h tiles, each tile px square.
func NewMapBuilder(w, h, tile int) *MapBuilder {
	return &MapBuilder{width: w, height: h, tile: tile}
}

// Tiles adds a tile layer; cells maps {tx, ty} to a tile index.
func (b *MapBuilder) Tiles(name string, cells map[[2]int]int) *MapBuilder {
	data := make([]int, b.width*b.height)
	for pos, index := range cells {
		data[pos[1]*b.width+pos[0]] = index
	}
	b.layers = append(b.layers, map[string]any{
		"name": name, "type": "tilelayer",
		"width": b.width, "height": b.height, "data": data,
	})
	return b
}

// Row fills row ty of a tile layer from tx0 to tx1 inclusive.
func Row(cells map[[2]int]int, ty, tx0, tx1, index int) map[[2]int]int {
	if cells == nil {
		cells = make(map[[2]int]int)
	}
	for tx := tx0; tx <= tx1; tx++ {
		cells[[2]int{tx, ty}] = index
	}
	return cells
}

// Objects adds an object layer.
func (b *MapBuilder) Objects(name string, objs ...Obj) *MapBuilder {
	list := make([]map[string]any, 0, len(objs))
	for _, o := range objs {
		props := make([]map[string]any, 0, len(o.Props))
		for _, p := range o.Props {
			entry := map[string]any{"name": p.Name, "type": p.Type}
			if p.Value != nil {
				entry["value"] = p.Value
			}
			props = append(props, entry)
		}
		list = append(list, map[string]any{
			"id": o.ID, "type": o.Type,
			"x": o.X, "y": o.Y, "width": o.W, "height": o.H,
			"properties": props,
		})
	}
	b.layers = append(b.layers, map[string]any{
		"name": name, "type": "objectgroup", "objects": list,
	})
	return b
}

// JSON returns the encoded map.
func (b *MapBuilder) JSON() []byte {
	doc := map[string]any{
		"width": b.width, "height": b.height,
		"tilewidth": b.tile, "tileheight": b.tile,
		"orientation": "orthogonal",
		"layers":      b.layers,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}

// Build parses the map.
func (b *MapBuilder) Build() (*tilemap.Map, error) {
	return tilemap.Parse(b.JSON())
}
