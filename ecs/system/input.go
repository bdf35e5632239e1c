package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/input"
)

// PlayerInputSystem turns the movement actions into the player's velocity.
type PlayerInputSystem struct {
	actions ActionSource
}

func NewPlayerInputSystem(actions ActionSource) *PlayerInputSystem {
	return &PlayerInputSystem{actions: actions}
}

func (s *PlayerInputSystem) Update(w *ecs.World, _ float64) {
	if s.actions == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, v *component.Velocity) {
		v.X, v.Y = 0, 0
		if s.actions.Active(input.ActionMoveUp) {
			v.Y = -1
		}
		if s.actions.Active(input.ActionMoveDown) {
			v.Y = 1
		}
		if s.actions.Active(input.ActionMoveLeft) {
			v.X = -1
		}
		if s.actions.Active(input.ActionMoveRight) {
			v.X = 1
		}
	})
}
