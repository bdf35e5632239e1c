// Package collision answers whether a world position is walkable.
package collision

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/anewworld/levels"
)

// LayerName is the tile layer whose nonzero gids block movement.
const LayerName = "Collisions"

// ObjectType marks map objects that are solid obstacles.
const ObjectType = "collision"

const legacyLayerName = "Collision"

// Grid combines a tile collision layer with rectangle and polygon obstacles.
// Without a collision layer, or with a non-positive tile size, only obstacles
// block.
type Grid struct {
	enabled  bool
	cols     int
	rows     int
	tileW    float64
	tileH    float64
	cells    []bool
	rects    []cp.BB
	polygons [][]cp.Vector
}

func NewGrid(lvl *levels.Level) *Grid {
	g := &Grid{}
	if lvl == nil {
		return g
	}

	layer, ok := lvl.Layer(LayerName)
	if !ok {
		layer, ok = lvl.Layer(legacyLayerName)
	}
	if ok && lvl.TileWidth > 0 && lvl.TileHeight > 0 {
		g.enabled = true
		g.cols = lvl.Width
		g.rows = lvl.Height
		g.tileW = float64(lvl.TileWidth)
		g.tileH = float64(lvl.TileHeight)
		g.cells = make([]bool, g.cols*g.rows)
		for row := 0; row < g.rows; row++ {
			for col := 0; col < g.cols; col++ {
				g.cells[row*g.cols+col] = lvl.TileAt(layer, col, row) != 0
			}
		}
	}

	for _, obj := range lvl.Objects {
		if obj.Type != ObjectType {
			continue
		}
		if len(obj.Polygon) >= 3 {
			points := make([]cp.Vector, 0, len(obj.Polygon))
			for _, p := range obj.Polygon {
				points = append(points, cp.Vector{X: obj.X + p.X, Y: obj.Y + p.Y})
			}
			g.AddPolygon(points)
			continue
		}
		if obj.Width > 0 && obj.Height > 0 {
			g.AddRect(cp.NewBBForExtents(cp.Vector{X: obj.X + obj.Width/2, Y: obj.Y + obj.Height/2}, obj.Width/2, obj.Height/2))
		}
	}

	return g
}

func (g *Grid) Enabled() bool {
	return g.enabled
}

func (g *Grid) AddRect(bb cp.BB) {
	g.rects = append(g.rects, bb)
}

// AddPolygon registers a closed polygon. Fewer than three points is ignored.
func (g *Grid) AddPolygon(points []cp.Vector) {
	if len(points) < 3 {
		return
	}
	g.polygons = append(g.polygons, append([]cp.Vector(nil), points...))
}

func (g *Grid) IsBlocked(x, y float64) bool {
	p := cp.Vector{X: x, Y: y}
	for _, bb := range g.rects {
		if bb.ContainsVect(p) {
			return true
		}
	}
	for _, poly := range g.polygons {
		if pointInPolygon(p, poly) {
			return true
		}
	}

	if !g.enabled {
		return false
	}
	if x < 0 || y < 0 {
		return true
	}
	col := int(x / g.tileW)
	row := int(y / g.tileH)
	if col >= g.cols || row >= g.rows {
		return true
	}
	return g.cells[row*g.cols+col]
}

const edgeEpsilon = 1e-9

// pointInPolygon casts a ray along +X. Points on an edge are outside.
func pointInPolygon(p cp.Vector, poly []cp.Vector) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if onSegment(p, a, b) {
			return false
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(p, a, b cp.Vector) bool {
	ab := b.Sub(a)
	ap := p.Sub(a)
	if math.Abs(ab.Cross(ap)) > edgeEpsilon*(1+ab.Length()) {
		return false
	}
	dot := ap.Dot(ab)
	return dot >= -edgeEpsilon && dot <= ab.LengthSq()+edgeEpsilon
}
