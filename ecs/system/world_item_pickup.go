package system

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/items"
	"github.com/milk9111/anewworld/logger"
	"github.com/milk9111/anewworld/sound"
)

// PickupAsset plays when the player picks something up.
const PickupAsset = "pickup"

// WorldItemPickupSystem moves world items the player interacted with into
// the player's inventory. Items that only partly fit stay in the world with
// the remainder.
type WorldItemPickupSystem struct {
	inventory *items.Service
	bus       *sound.Bus
}

func NewWorldItemPickupSystem(inventory *items.Service, bus *sound.Bus) *WorldItemPickupSystem {
	return &WorldItemPickupSystem{inventory: inventory, bus: bus}
}

func (s *WorldItemPickupSystem) Update(w *ecs.World, _ float64) {
	events := ecs.Events(w, component.InteractionStartedEvent).Events()
	if len(events) == 0 {
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

	for _, evt := range events {
		target := ecs.Entity(evt.Target)
		item, ok := ecs.Get(w, target, component.WorldItemComponent.Kind())
		if !ok {
			continue
		}

		added, err := s.inventory.AddItem(inv, item.ItemID, item.Quantity)
		if err != nil {
			if errors.Is(err, items.ErrUnknownItem) {
				logger.Log.WithField("item", item.ItemID).Warn("pickup: unknown item")
			}
			continue
		}
		if added <= 0 {
			continue
		}

		logger.Log.WithFields(logrus.Fields{"item": item.ItemID, "added": added}).Debug("picked up item")
		if s.bus != nil {
			s.bus.PublishSfx(sound.PlaySfx{Asset: PickupAsset, Volume: 0.8, Pitch: 1})
		}

		if added >= item.Quantity {
			ecs.DestroyEntity(w, target)
			continue
		}

		item.Quantity -= added
		if it, ok := ecs.Get(w, target, component.InteractableComponent.Kind()); ok {
			it.Prompt = items.PickupPrompt(item.DisplayName, item.Quantity)
		}
	}
}
