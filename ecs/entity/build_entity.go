package entity

import (
	"fmt"
	"image"
	"sort"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/items"
	"github.com/milk9111/anewworld/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"name":         addName,
	"transform":    addTransform,
	"velocity":     addVelocity,
	"facing":       addFacing,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"animation":    addAnimation,
	"inventory":    addInventory,
	"camera":       addCamera,
	"interactable": addInteractable,
}

// animation writes the first frame into the sprite, so sprite must come
// first.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"name",
	"transform",
	"velocity",
	"facing",
	"sprite",
	"render_layer",
	"animation",
	"inventory",
	"camera",
	"interactable",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.NameComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addFacing(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FacingComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode facing spec: %w", err)
	}
	return ecs.Add(w, e, component.FacingComponent.Kind(), &component.FacingDirection{Facing: component.ParseFacing(spec.Facing)})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:     spec.Image,
		UseSource: spec.UseSource,
		OriginX:   spec.OriginX,
		OriginY:   spec.OriginY,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if spec.FrameW <= 0 || spec.FrameH <= 0 {
		return fmt.Errorf("animation frame size %dx%d must be positive", spec.FrameW, spec.FrameH)
	}

	clips := make(map[component.AnimationKey]*component.AnimationClip, len(spec.Clips))
	for name, def := range spec.Clips {
		key, ok := component.ParseAnimationKey(name)
		if !ok {
			return fmt.Errorf("unknown animation clip %q", name)
		}
		clips[key] = buildClip(def, spec.FrameW, spec.FrameH)
	}

	current := component.AnimationKey{Action: component.ActionIdle, Facing: component.FacingDown}
	if spec.Current != "" {
		key, ok := component.ParseAnimationKey(spec.Current)
		if !ok {
			return fmt.Errorf("unknown current clip %q", spec.Current)
		}
		current = key
	}

	animator := &component.SpriteAnimator{Clips: clips, Key: current}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		if clip := animator.Clip(); clip != nil && len(clip.Frames) > 0 {
			sprite.Source = clip.Frames[0]
			sprite.UseSource = true
		}
	}
	return ecs.Add(w, e, component.SpriteAnimatorComponent.Kind(), animator)
}

func buildClip(def prefabs.AnimationClipComponentSpec, frameW, frameH int) *component.AnimationClip {
	count := max(def.FrameCount, 1)
	frames := make([]image.Rectangle, 0, count)
	for i := 0; i < count; i++ {
		x := (def.ColStart + i) * frameW
		y := def.Row * frameH
		frames = append(frames, image.Rect(x, y, x+frameW, y+frameH))
	}
	duration := def.FrameDuration
	if duration <= 0 {
		duration = 0.1
	}
	loop := def.Loop == nil || *def.Loop
	return &component.AnimationClip{Frames: frames, FrameDuration: duration, Loop: loop}
}

// addInventory seeds stacks as written. InventorySystem clamps them to the
// item definitions on the first frame.
func addInventory(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InventoryComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode inventory spec: %w", err)
	}
	inv := component.NewInventory()
	ids := make([]string, 0, len(spec.Items))
	for id := range spec.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		qty := spec.Items[id]
		key := items.Normalize(id)
		if key == "" || qty <= 0 {
			continue
		}
		inv.Stacks[key] = &component.ItemStack{ItemID: key, Quantity: qty}
		items.RegisterSlot(inv, key)
	}
	return ecs.Add(w, e, component.InventoryComponent.Kind(), inv)
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	cam := &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	}
	if spec.Background != nil {
		cam.Background = spec.Background.Color
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InteractableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interactable spec: %w", err)
	}
	return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
		Radius:  spec.Radius,
		Prompt:  spec.Prompt,
		Enabled: true,
	})
}
