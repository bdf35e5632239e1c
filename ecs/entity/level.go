package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/levels"
	"github.com/milk9111/anewworld/logger"
)

const (
	ItemObjectType = "item"
	SignObjectType = "sign"
)

// LoadLevelToWorld creates the entities a level describes besides its
// tiles: world items, interactable signs and animated tiles. Objects that
// fail to spawn are logged and skipped.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, spawner *WorldItemFactory) int {
	count := 0
	for _, obj := range lvl.Objects {
		var err error
		switch obj.Type {
		case ItemObjectType:
			if spawner == nil {
				continue
			}
			_, err = spawner.SpawnWorldItem(w, obj.StringProp("item"), obj.IntProp("quantity", 1), cp.Vector{X: obj.X, Y: obj.Y}, cp.Vector{})
		case SignObjectType:
			_, err = spawnSign(w, obj)
		default:
			continue
		}
		if err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{"level": lvl.Name, "object": obj.Name}).Warn("level object skipped")
			continue
		}
		count++
	}

	return count + spawnAnimatedTiles(w, lvl)
}

func spawnSign(w *ecs.World, obj levels.Object) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: obj.X, Y: obj.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: obj.Name}); err != nil {
		return fail(err)
	}
	if interactable, _ := obj.Props["interactable"].(bool); interactable {
		if err := ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
			Radius:  float64(obj.IntProp("radius", int(component.DefaultInteractRadius))),
			Prompt:  obj.StringProp("prompt"),
			Enabled: true,
		}); err != nil {
			return fail(err)
		}
	}
	if id := obj.StringProp("dialogue_id"); id != "" {
		if err := ecs.Add(w, e, component.DialogueRefComponent.Kind(), &component.DialogueRef{DialogueID: id}); err != nil {
			return fail(err)
		}
	}
	return e, nil
}

func spawnAnimatedTiles(w *ecs.World, lvl *levels.Level) int {
	count := 0
	for _, at := range lvl.AnimatedTiles {
		if len(at.Frames) == 0 {
			continue
		}
		current := at.Frames[0].GID
		if layer, ok := lvl.Layer(at.Layer); ok {
			if gid := lvl.TileAt(layer, at.Col, at.Row); gid != 0 {
				current = gid
			}
		}
		frames := make([]component.TileFrame, 0, len(at.Frames))
		for _, f := range at.Frames {
			frames = append(frames, component.TileFrame{GID: f.GID & levels.GIDMask, Duration: f.Duration})
		}

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.AnimatedTileComponent.Kind(), &component.AnimatedTile{
			Layer:   at.Layer,
			Col:     at.Col,
			Row:     at.Row,
			Frames:  frames,
			Current: current,
		}); err != nil {
			ecs.DestroyEntity(w, e)
			continue
		}
		count++
	}
	return count
}
