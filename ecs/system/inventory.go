package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/items"
	"github.com/milk9111/anewworld/logger"
)

// InventorySystem keeps every inventory consistent with the current item
// definitions, which can change on a content reload.
type InventorySystem struct {
	inventory *items.Service
}

func NewInventorySystem(inventory *items.Service) *InventorySystem {
	return &InventorySystem{inventory: inventory}
}

func (s *InventorySystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach(w, component.InventoryComponent.Kind(), func(e ecs.Entity, inv *component.Inventory) {
		if n := s.inventory.Sanitize(inv); n > 0 {
			logger.Log.WithField("entity", e).WithField("stacks", n).Debug("sanitized inventory")
		}
	})
}
