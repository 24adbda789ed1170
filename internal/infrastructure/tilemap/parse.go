package tilemap

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/younwookim/gemrun/internal/domain/entity"
)

// Tiled JSON layout (subset used by the game).
type rawMap struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	TileWidth   int        `json:"tilewidth"`
	TileHeight  int        `json:"tileheight"`
	Infinite    bool       `json:"infinite"`
	Orientation string     `json:"orientation"`
	Layers      []rawLayer `json:"layers"`
}

type rawLayer struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Visible     *bool           `json:"visible"`
	Data        json.RawMessage `json:"data"`
	Encoding    string          `json:"encoding"`
	Compression string          `json:"compression"`
	Objects     []rawObject     `json:"objects"`
	Layers      []rawLayer      `json:"layers"`
}

type rawObject struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	Class      string        `json:"class"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	GID        uint32        `json:"gid"`
	Properties []rawProperty `json:"properties"`
}

type rawProperty struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// ErrInfinite is returned for maps saved with the "infinite" option.
var ErrInfinite = errors.New("infinite maps are not supported")

// Parse decodes a Tiled JSON map.
func Parse(data []byte) (*Map, error) {
	var raw rawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	if raw.Infinite {
		return nil, ErrInfinite
	}
	if raw.Orientation != "" && raw.Orientation != "orthogonal" {
		return nil, fmt.Errorf("unsupported orientation %q", raw.Orientation)
	}
	if raw.Width <= 0 || raw.Height <= 0 || raw.TileWidth <= 0 || raw.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d tiles of %dx%d", raw.Width, raw.Height, raw.TileWidth, raw.TileHeight)
	}

	m := &Map{
		Width:        raw.Width,
		Height:       raw.Height,
		TileWidth:    raw.TileWidth,
		TileHeight:   raw.TileHeight,
		tileLayers:   make(map[string]*TileLayer),
		objectLayers: make(map[string]*ObjectLayer),
	}
	if err := m.addLayers(raw.Layers); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Map) addLayers(layers []rawLayer) error {
	for _, rl := range layers {
		switch rl.Type {
		case "tilelayer":
			l, err := m.decodeTileLayer(rl)
			if err != nil {
				return fmt.Errorf("layer %q: %w", rl.Name, err)
			}
			m.tileLayers[rl.Name] = l
		case "objectgroup":
			m.objectLayers[rl.Name] = decodeObjectLayer(rl)
		case "group":
			if err := m.addLayers(rl.Layers); err != nil {
				return err
			}
			continue
		default:
			// image layers carry nothing the game reads
		}
		m.order = append(m.order, rl.Name)
	}
	return nil
}

func (m *Map) decodeTileLayer(rl rawLayer) (*TileLayer, error) {
	w, h := rl.Width, rl.Height
	if w == 0 && h == 0 {
		w, h = m.Width, m.Height
	}

	gids, err := decodeData(rl)
	if err != nil {
		return nil, err
	}
	if len(gids) != w*h {
		return nil, fmt.Errorf("expected %d tiles, got %d", w*h, len(gids))
	}

	data := make([]int, len(gids))
	for i, gid := range gids {
		data[i] = int(gid & gidMask)
	}

	return &TileLayer{
		Name:       rl.Name,
		Width:      w,
		Height:     h,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		Visible:    rl.Visible == nil || *rl.Visible,
		data:       data,
	}, nil
}

func decodeData(rl rawLayer) ([]uint32, error) {
	switch rl.Encoding {
	case "", "csv":
		var gids []uint32
		if err := json.Unmarshal(rl.Data, &gids); err != nil {
			return nil, fmt.Errorf("failed to decode tile data: %w", err)
		}
		return gids, nil
	case "base64":
		var s string
		if err := json.Unmarshal(rl.Data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode tile data: %w", err)
		}
		buf, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 tile data: %w", err)
		}
		buf, err = decompress(rl.Compression, buf)
		if err != nil {
			return nil, err
		}
		if len(buf)%4 != 0 {
			return nil, fmt.Errorf("tile data length %d is not a multiple of 4", len(buf))
		}
		gids := make([]uint32, len(buf)/4)
		for i := range gids {
			gids[i] = binary.LittleEndian.Uint32(buf[i*4:])
		}
		return gids, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", rl.Encoding)
	}
}

func decompress(kind string, buf []byte) ([]byte, error) {
	var r io.ReadCloser
	var err error
	switch kind {
	case "":
		return buf, nil
	case "gzip":
		r, err = gzip.NewReader(bytes.NewReader(buf))
	case "zlib":
		r, err = zlib.NewReader(bytes.NewReader(buf))
	default:
		return nil, fmt.Errorf("unsupported compression %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s tile data: %w", kind, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s tile data: %w", kind, err)
	}
	return out, nil
}

func decodeObjectLayer(rl rawLayer) *ObjectLayer {
	layer := &ObjectLayer{Name: rl.Name, Objects: make([]Object, 0, len(rl.Objects))}
	for _, ro := range rl.Objects {
		typ := ro.Type
		if typ == "" {
			typ = ro.Class
		}
		obj := Object{
			ID:     ro.ID,
			Name:   ro.Name,
			Type:   typ,
			X:      ro.X,
			Y:      ro.Y,
			Width:  ro.Width,
			Height: ro.Height,
			GID:    int(ro.GID & gidMask),
		}
		// tile objects are anchored at their bottom-left corner
		if obj.GID != 0 {
			obj.Y -= obj.Height
		}
		for _, rp := range ro.Properties {
			obj.Properties = append(obj.Properties, entity.Property{Name: rp.Name, Type: rp.Type, Value: rp.Value})
		}
		layer.Objects = append(layer.Objects, obj)
	}
	return layer
}
