// Package render draws the level and the world's sprites through the camera
// and the HUD on top.
package render

import (
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/anewworld/camera"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/levels"
)

// OverheadPrefix marks tile layers drawn above sprites.
const OverheadPrefix = "Above"

type WorldRenderer struct {
	images *ImageCache
	cam    *camera.Service
	level  *levels.Level
}

func NewWorldRenderer(images *ImageCache, cam *camera.Service, level *levels.Level) *WorldRenderer {
	return &WorldRenderer{images: images, cam: cam, level: level}
}

func (r *WorldRenderer) SetLevel(level *levels.Level) {
	r.level = level
}

// Draw fills the camera background, then draws ground tiles, sprites and
// overhead tiles.
func (r *WorldRenderer) Draw(screen *ebiten.Image, w *ecs.World) {
	if r == nil || screen == nil {
		return
	}
	screen.Fill(background(w))
	r.drawLayers(screen, false)
	r.drawSprites(screen, w)
	r.drawLayers(screen, true)
}

func background(w *ecs.World) color.Color {
	cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return color.Black
	}
	if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && c.Background != nil {
		return c.Background
	}
	return color.Black
}

func (r *WorldRenderer) drawLayers(screen *ebiten.Image, overhead bool) {
	lvl := r.level
	if lvl == nil || r.cam == nil {
		return
	}
	sheet, ok := r.images.Get(lvl.Tileset.Image)
	if !ok {
		return
	}

	tw, th := lvl.TileWidth, lvl.TileHeight
	minCol, minRow, maxCol, maxRow := visibleTiles(r.cam.Visible(), tw, th, lvl.Width, lvl.Height)
	zoom := r.cam.Zoom

	for i := range lvl.Layers {
		layer := &lvl.Layers[i]
		if layer.Hidden || strings.HasPrefix(layer.Name, OverheadPrefix) != overhead {
			continue
		}
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				src, ok := tileSource(lvl.TileAt(layer, col, row), lvl.Tileset, tw, th)
				if !ok {
					continue
				}
				sub, ok := sheet.SubImage(src).(*ebiten.Image)
				if !ok {
					continue
				}
				p := r.cam.WorldToScreen(cp.Vector{X: float64(col * tw), Y: float64(row * th)})
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(zoom, zoom)
				op.GeoM.Translate(p.X, p.Y)
				screen.DrawImage(sub, op)
			}
		}
	}
}

// visibleTiles returns the inclusive tile range covering bb, clamped to the
// map.
func visibleTiles(bb cp.BB, tw, th, cols, rows int) (minCol, minRow, maxCol, maxRow int) {
	if tw <= 0 || th <= 0 {
		return 0, 0, -1, -1
	}
	minCol = max(int(bb.L)/tw-1, 0)
	minRow = max(int(bb.B)/th-1, 0)
	maxCol = min(int(bb.R)/tw+1, cols-1)
	maxRow = min(int(bb.T)/th+1, rows-1)
	return minCol, minRow, maxCol, maxRow
}

// tileSource locates gid on the tileset sheet. Empty cells and gids below
// the tileset's first gid have no source.
func tileSource(gid uint32, ts levels.Tileset, tw, th int) (image.Rectangle, bool) {
	gid &= levels.GIDMask
	first := ts.FirstGID
	if first == 0 {
		first = 1
	}
	if gid == 0 || gid < first || ts.Columns <= 0 {
		return image.Rectangle{}, false
	}
	idx := int(gid - first)
	x := (idx % ts.Columns) * tw
	y := (idx / ts.Columns) * th
	return image.Rect(x, y, x+tw, y+th), true
}

func (r *WorldRenderer) drawSprites(screen *ebiten.Image, w *ecs.World) {
	if r.cam == nil {
		return
	}
	zoom := r.cam.Zoom
	for _, e := range drawOrder(w) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		img, ok := r.images.Get(s.Image)
		if !ok {
			continue
		}
		if s.UseSource {
			if sub, ok := img.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}

		p := r.cam.WorldToScreen(cp.Vector{X: t.X, Y: t.Y})
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(p.X, p.Y)
		screen.DrawImage(img, op)
	}
}

// drawOrder returns the visible sprites sorted by render layer, then by Y so
// lower entities overlap higher ones, then by entity id.
func drawOrder(w *ecs.World) []ecs.Entity {
	type drawable struct {
		e     ecs.Entity
		layer int
		y     float64
	}

	var out []drawable
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Hidden || s.Image == "" {
			return
		}
		d := drawable{e: e, y: t.Y}
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			d.layer = layer.Index
		}
		out = append(out, d)
	})

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].layer != out[j].layer {
			return out[i].layer < out[j].layer
		}
		if out[i].y != out[j].y {
			return out[i].y < out[j].y
		}
		return out[i].e < out[j].e
	})

	entities := make([]ecs.Entity, len(out))
	for i, d := range out {
		entities[i] = d.e
	}
	return entities
}
