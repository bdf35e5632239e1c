package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

// FacingSystem points entities along their dominant axis of motion. Entities
// at rest keep the facing they had.
type FacingSystem struct{}

func NewFacingSystem() *FacingSystem {
	return &FacingSystem{}
}

func (s *FacingSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.FacingComponent.Kind(), func(_ ecs.Entity, v *component.Velocity, f *component.FacingDirection) {
		if !v.Moving() {
			return
		}
		f.Facing = component.FacingFromVector(v.X, v.Y)
	})
}
