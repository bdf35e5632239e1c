package items

import (
	"fmt"
	"maps"
	"slices"

	"github.com/milk9111/anewworld/ecs/component"
)

// Service implements stack management on inventory components.
type Service struct {
	registry *Registry
}

func NewService(registry *Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) Registry() *Registry {
	return s.registry
}

// AddItem adds up to qty of itemID, capped by the item's max stack, and
// returns how many were added. Unknown ids return ErrUnknownItem.
func (s *Service) AddItem(inv *component.Inventory, itemID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, nil
	}
	def, ok := s.registry.Get(itemID)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if inv == nil {
		return 0, nil
	}
	ensure(inv)

	key := def.ID
	stack, ok := inv.Stacks[key]
	if !ok {
		stack = &component.ItemStack{ItemID: key}
	}

	space := def.MaxStack - stack.Quantity
	if space <= 0 {
		return 0, nil
	}
	added := min(space, qty)
	stack.Quantity += added
	if !ok {
		inv.Stacks[key] = stack
		RegisterSlot(inv, key)
	}
	return added, nil
}

// RemoveItem removes up to qty of itemID and returns how many were removed.
func (s *Service) RemoveItem(inv *component.Inventory, itemID string, qty int) int {
	if qty <= 0 || inv == nil || inv.Stacks == nil {
		return 0
	}
	key := Normalize(itemID)
	stack, ok := inv.Stacks[key]
	if !ok || stack.Quantity <= 0 {
		return 0
	}
	removed := min(stack.Quantity, qty)
	stack.Quantity -= removed
	if stack.Quantity <= 0 {
		delete(inv.Stacks, key)
		UnregisterSlot(inv, key)
	}
	return removed
}

func (s *Service) GetQuantity(inv *component.Inventory, itemID string) int {
	if inv == nil || inv.Stacks == nil {
		return 0
	}
	if stack, ok := inv.Stacks[Normalize(itemID)]; ok {
		return stack.Quantity
	}
	return 0
}

func (s *Service) ContainsAtLeast(inv *component.Inventory, itemID string, qty int) bool {
	if qty <= 0 {
		return true
	}
	return s.GetQuantity(inv, itemID) >= qty
}

// ConsumeSelected removes one unit of the selected item and returns its id.
func (s *Service) ConsumeSelected(inv *component.Inventory) (string, bool) {
	id, ok := ActiveItem(inv)
	if !ok {
		return "", false
	}
	if s.RemoveItem(inv, id, 1) == 0 {
		return "", false
	}
	return id, true
}

func (s *Service) Clear(inv *component.Inventory) {
	if inv == nil {
		return
	}
	inv.Stacks = make(map[string]*component.ItemStack)
	inv.Slots = nil
	inv.Selected = -1
}

// Sanitize clamps stacks above their max stack and drops stacks that are
// empty or whose definition no longer exists. It returns the number of
// stacks changed.
func (s *Service) Sanitize(inv *component.Inventory) int {
	if inv == nil || len(inv.Stacks) == 0 {
		return 0
	}
	changed := 0
	for _, key := range slices.Sorted(maps.Keys(inv.Stacks)) {
		stack := inv.Stacks[key]
		def, ok := s.registry.Get(key)
		if !ok || stack == nil || stack.Quantity <= 0 {
			delete(inv.Stacks, key)
			UnregisterSlot(inv, key)
			changed++
			continue
		}
		if stack.Quantity > def.MaxStack {
			stack.Quantity = def.MaxStack
			changed++
		}
	}
	return changed
}

func ensure(inv *component.Inventory) {
	if inv.Stacks == nil {
		inv.Stacks = make(map[string]*component.ItemStack)
	}
	if len(inv.Slots) == 0 {
		inv.Selected = -1
	}
}
