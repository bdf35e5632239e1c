package system

import (
	"github.com/milk9111/anewworld/camera"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

// CameraSystem moves the camera onto the target named by the camera entity
// while follow reports true, then clamps it to the world every frame.
type CameraSystem struct {
	cam          *camera.Service
	follow       func() bool
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem(cam *camera.Service, follow func() bool) *CameraSystem {
	return &CameraSystem{cam: cam, follow: follow}
}

func (cs *CameraSystem) Update(w *ecs.World, _ float64) {
	if cs.cam == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}
	if cs.follow == nil || cs.follow() {
		cs.track(w)
	}
	cs.cam.Clamp()

	if camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind()); ok {
		camTransform.SetPosition(cs.cam.Position())
	}
}

func (cs *CameraSystem) track(w *ecs.World) {
	camComp, hasCam := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())

	if !ecs.IsAlive(w, cs.targetEntity) {
		name := ""
		if hasCam {
			name = camComp.TargetName
		}
		cs.targetEntity, _ = findEntityByNameOrTag(w, name)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	pos := target.Position()
	if hasCam && camComp.Smoothness > 0 && camComp.Smoothness < 1 {
		pos = cs.cam.Position().Lerp(pos, 1-camComp.Smoothness)
	}
	cs.cam.Update(pos)
}

// Reset forgets the cached camera and target, e.g. after a map change.
func (cs *CameraSystem) Reset() {
	cs.camEntity = 0
	cs.targetEntity = 0
}
