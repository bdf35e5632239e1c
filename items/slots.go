package items

import "github.com/milk9111/anewworld/ecs/component"

// RegisterSlot appends itemID to the slot list if absent. The first slot
// registered into an empty inventory becomes selected.
func RegisterSlot(inv *component.Inventory, itemID string) {
	if inv == nil {
		return
	}
	key := Normalize(itemID)
	for _, id := range inv.Slots {
		if id == key {
			return
		}
	}
	inv.Slots = append(inv.Slots, key)
	if inv.Selected < 0 {
		inv.Selected = len(inv.Slots) - 1
	}
}

// UnregisterSlot removes itemID from the slot list and keeps the selection
// in range.
func UnregisterSlot(inv *component.Inventory, itemID string) {
	if inv == nil {
		return
	}
	key := Normalize(itemID)
	for i, id := range inv.Slots {
		if id == key {
			inv.Slots = append(inv.Slots[:i], inv.Slots[i+1:]...)
			break
		}
	}
	clampSelection(inv)
}

// SelectSlot selects index, clamped to the slot range.
func SelectSlot(inv *component.Inventory, index int) {
	if inv == nil {
		return
	}
	inv.Selected = index
	clampSelection(inv)
}

// CycleSlot moves the selection by offset, wrapping around the slot list.
func CycleSlot(inv *component.Inventory, offset int) {
	if inv == nil {
		return
	}
	n := len(inv.Slots)
	if n == 0 {
		inv.Selected = -1
		return
	}
	cur := max(inv.Selected, 0)
	inv.Selected = ((cur+offset)%n + n) % n
}

// ActiveItem returns the item id in the selected slot.
func ActiveItem(inv *component.Inventory) (string, bool) {
	if inv == nil || inv.Selected < 0 || inv.Selected >= len(inv.Slots) {
		return "", false
	}
	return inv.Slots[inv.Selected], true
}

func clampSelection(inv *component.Inventory) {
	n := len(inv.Slots)
	switch {
	case n == 0:
		inv.Selected = -1
	case inv.Selected < 0:
		inv.Selected = 0
	case inv.Selected >= n:
		inv.Selected = n - 1
	}
}
