package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// GIDMask strips the flip flags from a tile gid.
const GIDMask uint32 = 0x1FFFFFFF

type Level struct {
	Name          string         `json:"name"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	TileWidth     int            `json:"tile_width"`
	TileHeight    int            `json:"tile_height"`
	Tileset       Tileset        `json:"tileset"`
	Layers        []Layer        `json:"layers"`
	Objects       []Object       `json:"objects,omitempty"`
	AnimatedTiles []AnimatedTile `json:"animated_tiles,omitempty"`
	Spawn         Point          `json:"spawn"`
}

type Tileset struct {
	Image    string `json:"image"`
	Columns  int    `json:"columns"`
	FirstGID uint32 `json:"first_gid"`
}

type Layer struct {
	Name   string   `json:"name"`
	Data   []uint32 `json:"data"`
	Hidden bool     `json:"hidden,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object is a free-form map object. Polygon points are relative to X, Y.
type Object struct {
	Type    string         `json:"type"`
	Name    string         `json:"name,omitempty"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Width   float64        `json:"width,omitempty"`
	Height  float64        `json:"height,omitempty"`
	Polygon []Point        `json:"polygon,omitempty"`
	Props   map[string]any `json:"props,omitempty"`
}

type AnimatedTile struct {
	Layer  string      `json:"layer"`
	Col    int         `json:"col"`
	Row    int         `json:"row"`
	Frames []TileFrame `json:"frames"`
}

type TileFrame struct {
	GID      uint32  `json:"gid"`
	Duration float64 `json:"duration"`
}

func (l *Level) Layer(name string) (*Layer, bool) {
	for i := range l.Layers {
		if strings.EqualFold(l.Layers[i].Name, name) {
			return &l.Layers[i], true
		}
	}
	return nil, false
}

func (l *Level) PixelWidth() float64 {
	return float64(l.Width * l.TileWidth)
}

func (l *Level) PixelHeight() float64 {
	return float64(l.Height * l.TileHeight)
}

// TileAt returns the masked gid at col, row or 0 when out of range.
func (l *Level) TileAt(layer *Layer, col, row int) uint32 {
	if layer == nil || col < 0 || row < 0 || col >= l.Width || row >= l.Height {
		return 0
	}
	i := row*l.Width + col
	if i >= len(layer.Data) {
		return 0
	}
	return layer.Data[i] & GIDMask
}

// SetTile writes a gid into a layer, used by animated tiles.
func (l *Level) SetTile(layer *Layer, col, row int, gid uint32) {
	if layer == nil || col < 0 || row < 0 || col >= l.Width || row >= l.Height {
		return
	}
	i := row*l.Width + col
	if i >= len(layer.Data) {
		return
	}
	layer.Data[i] = gid
}

// StringProp reads a string property from an object.
func (o Object) StringProp(key string) string {
	if v, ok := o.Props[key].(string); ok {
		return v
	}
	return ""
}

// IntProp reads a numeric property from an object, falling back to def.
func (o Object) IntProp(key string, def int) int {
	switch v := o.Props[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// LoadLevel reads a level by name. A file under levels/ on disk wins over the
// embedded copy.
func LoadLevel(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: %q has invalid size %dx%d", lvl.Name, lvl.Width, lvl.Height)
	}
	if lvl.TileWidth <= 0 || lvl.TileHeight <= 0 {
		return nil, fmt.Errorf("levels: %q has invalid tile size %dx%d", lvl.Name, lvl.TileWidth, lvl.TileHeight)
	}
	if lvl.Tileset.FirstGID == 0 {
		lvl.Tileset.FirstGID = 1
	}
	return &lvl, nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
