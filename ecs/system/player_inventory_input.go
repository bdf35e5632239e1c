package system

import (
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/input"
	"github.com/milk9111/anewworld/items"
	"github.com/milk9111/anewworld/logger"
	"github.com/milk9111/anewworld/sound"
)

const (
	// DropDistance is how far in front of the player a dropped item appears.
	DropDistance = 18.0
	// DropImpulse is the initial speed of a dropped item.
	DropImpulse = 150.0
	DropAsset   = "drop"
)

var slotActions = [...]string{
	input.ActionSelectItem1,
	input.ActionSelectItem2,
	input.ActionSelectItem3,
	input.ActionSelectItem4,
}

// ItemSpawner places a world item entity.
type ItemSpawner interface {
	SpawnWorldItem(w *ecs.World, itemID string, qty int, pos, impulse cp.Vector) (ecs.Entity, error)
}

// PlayerInventoryInputSystem handles slot selection and dropping the
// selected item.
type PlayerInventoryInputSystem struct {
	actions   ActionSource
	inventory *items.Service
	spawner   ItemSpawner
	bus       *sound.Bus
}

func NewPlayerInventoryInputSystem(actions ActionSource, inventory *items.Service, spawner ItemSpawner, bus *sound.Bus) *PlayerInventoryInputSystem {
	return &PlayerInventoryInputSystem{actions: actions, inventory: inventory, spawner: spawner, bus: bus}
}

func (s *PlayerInventoryInputSystem) Update(w *ecs.World, _ float64) {
	if s.actions == nil {
		return
	}
	player, ok := playerEntity(w)
	if !ok {
		return
	}
	inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind())
	if !ok {
		return
	}

	for i, action := range slotActions {
		if s.actions.JustPressed(action) {
			items.SelectSlot(inv, i)
		}
	}
	if s.actions.JustPressed(input.ActionCycleItemNext) {
		items.CycleSlot(inv, 1)
	}
	if s.actions.JustPressed(input.ActionCycleItemPrev) {
		items.CycleSlot(inv, -1)
	}

	if s.actions.JustPressed(input.ActionDropItem) {
		s.drop(w, player, inv)
	}
}

func (s *PlayerInventoryInputSystem) drop(w *ecs.World, player ecs.Entity, inv *component.Inventory) {
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	itemID, ok := s.inventory.ConsumeSelected(inv)
	if !ok {
		return
	}

	dir := cp.Vector{X: 0, Y: 1}
	if f, ok := ecs.Get(w, player, component.FacingComponent.Kind()); ok {
		dx, dy := f.Facing.Offset()
		dir = cp.Vector{X: dx, Y: dy}
	}

	pos := t.Position().Add(dir.Mult(DropDistance))
	if s.spawner == nil {
		return
	}
	if _, err := s.spawner.SpawnWorldItem(w, itemID, 1, pos, dir.Mult(DropImpulse)); err != nil {
		logger.Log.WithError(err).WithField("item", itemID).Warn("drop: spawn world item")
		return
	}
	logger.Log.WithFields(logrus.Fields{"item": itemID, "x": pos.X, "y": pos.Y}).Debug("dropped item")
	if s.bus != nil {
		s.bus.PublishSfx(sound.PlaySfx{Asset: DropAsset, Volume: 0.7, Pitch: 1})
	}
}
