package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

// Blocker answers whether a world position is solid.
type Blocker interface {
	IsBlocked(x, y float64) bool
}

// CollisionSystem stops velocity along any axis that would move an entity
// into a blocked position. Each axis is tested on its own so entities slide
// along walls.
type CollisionSystem struct {
	grid  Blocker
	slide float64
}

// NewCollisionSystem takes the factor a blocked axis's velocity is scaled by.
// Zero stops the axis outright.
func NewCollisionSystem(grid Blocker, slide float64) *CollisionSystem {
	return &CollisionSystem{grid: grid, slide: cp.Clamp01(slide)}
}

// SetGrid swaps the collision source, e.g. on map load.
func (s *CollisionSystem) SetGrid(grid Blocker) {
	s.grid = grid
}

func (s *CollisionSystem) Update(w *ecs.World, dt float64) {
	if s.grid == nil {
		return
	}

	for _, e := range ecs.Query(w, component.VelocityComponent.Kind()) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())

		nextX := t.X + v.X*dt*MoveSpeed
		nextY := t.Y + v.Y*dt*MoveSpeed
		if !s.grid.IsBlocked(nextX, nextY) {
			continue
		}

		if s.grid.IsBlocked(t.X, nextY) {
			v.Y *= s.slide
		}
		if s.grid.IsBlocked(nextX, t.Y) {
			v.X *= s.slide
		}
	}
}
