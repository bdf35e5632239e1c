package system

import (
	"math"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/levels"
)

// TileAnimationSystem cycles animated map cells by elapsed time and writes
// the current gid back into the level so the renderer draws it.
type TileAnimationSystem struct {
	level *levels.Level
}

func NewTileAnimationSystem(level *levels.Level) *TileAnimationSystem {
	return &TileAnimationSystem{level: level}
}

func (s *TileAnimationSystem) SetLevel(level *levels.Level) {
	s.level = level
}

func (s *TileAnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimatedTileComponent.Kind(), func(_ ecs.Entity, tile *component.AnimatedTile) {
		gid, ok := advanceTile(tile, dt)
		if !ok || gid == tile.Current {
			return
		}
		tile.Current = gid
		if s.level == nil {
			return
		}
		if layer, ok := s.level.Layer(tile.Layer); ok {
			s.level.SetTile(layer, tile.Col, tile.Row, gid)
		}
	})
}

// advanceTile moves the tile clock forward and returns the gid showing at
// the new time. Frames without a positive duration are skipped.
func advanceTile(tile *component.AnimatedTile, dt float64) (uint32, bool) {
	total := 0.0
	for _, f := range tile.Frames {
		if f.Duration > 0 {
			total += f.Duration
		}
	}
	if total <= 0 {
		return 0, false
	}

	tile.Elapsed = math.Mod(tile.Elapsed+dt, total)
	t := tile.Elapsed
	for _, f := range tile.Frames {
		if f.Duration <= 0 {
			continue
		}
		if t < f.Duration {
			return f.GID, true
		}
		t -= f.Duration
	}
	return tile.Frames[len(tile.Frames)-1].GID, true
}
