package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

// MaxItemDrag bounds DroppedItemPhysics.Drag.
const MaxItemDrag = 20.0

// DroppedItemPhysicsSystem slides dropped items to a stop. Once an item is
// at or below its minimum speed the physics component is removed and the
// item stays put.
type DroppedItemPhysicsSystem struct{}

func NewDroppedItemPhysicsSystem() *DroppedItemPhysicsSystem {
	return &DroppedItemPhysicsSystem{}
}

func (s *DroppedItemPhysicsSystem) Update(w *ecs.World, dt float64) {
	var settled []ecs.Entity

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.DroppedItemPhysicsComponent.Kind(), func(e ecs.Entity, t *component.Transform, p *component.DroppedItemPhysics) {
		t.X += p.VelocityX * dt
		t.Y += p.VelocityY * dt

		if math.Hypot(p.VelocityX, p.VelocityY) <= p.MinSpeed {
			settled = append(settled, e)
			return
		}

		drag := cp.Clamp(p.Drag, 0, MaxItemDrag)
		decay := cp.Clamp01(1 - drag*dt)
		p.VelocityX *= decay
		p.VelocityY *= decay
	})

	for _, e := range settled {
		ecs.Remove(w, e, component.DroppedItemPhysicsComponent.Kind())
	}
}
