package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Update advances each animator's current clip and writes the frame into the
// sprite's source rect. Missing or empty clips are skipped.
func (s *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.SpriteAnimatorComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.SpriteAnimator, sprite *component.Sprite) {
		clip := anim.Clip()
		if clip == nil || len(clip.Frames) == 0 {
			return
		}

		last := len(clip.Frames) - 1
		if anim.Frame < 0 || anim.Frame > last {
			anim.Frame = 0
		}

		if clip.FrameDuration > 0 {
			anim.Elapsed += dt
			for anim.Elapsed >= clip.FrameDuration {
				anim.Elapsed -= clip.FrameDuration
				if anim.Frame < last {
					anim.Frame++
					continue
				}
				if clip.Loop {
					anim.Frame = 0
					continue
				}
				// Non-looping clips hold their last frame.
				anim.Elapsed = 0
				break
			}
		}

		sprite.Source = clip.Frames[anim.Frame]
		sprite.UseSource = true
	})
}
