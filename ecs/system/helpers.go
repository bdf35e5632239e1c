package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

// ActionSource is the slice of the input action service systems read.
type ActionSource interface {
	JustPressed(action string) bool
	Active(action string) bool
}

func playerEntity(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.PlayerTagComponent.Kind())
}

func findEntityByNameOrTag(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" || name == "player" {
		return playerEntity(w)
	}
	for _, e := range ecs.Query(w, component.NameComponent.Kind()) {
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value == name {
			return e, true
		}
	}
	return 0, false
}
