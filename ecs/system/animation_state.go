package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

// AnimationStateSystem picks the clip key from movement and facing. A key
// change restarts the clip; an unchanged key leaves playback alone.
type AnimationStateSystem struct{}

func NewAnimationStateSystem() *AnimationStateSystem {
	return &AnimationStateSystem{}
}

func (s *AnimationStateSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach3(w, component.SpriteAnimatorComponent.Kind(), component.VelocityComponent.Kind(), component.FacingComponent.Kind(), func(_ ecs.Entity, anim *component.SpriteAnimator, v *component.Velocity, f *component.FacingDirection) {
		action := component.ActionIdle
		if v.Moving() {
			action = component.ActionWalk
		}
		key := component.AnimationKey{Action: action, Facing: f.Facing}
		if key == anim.Key {
			return
		}
		anim.Key = key
		anim.Frame = 0
		anim.Elapsed = 0
	})
}
