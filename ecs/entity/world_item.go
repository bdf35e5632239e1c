package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/items"
)

const (
	DefaultPickupRadius = 36.0
	DefaultItemDrag     = 4.0
	ItemMinSpeed        = 5.0
	ItemIconSize        = 16.0
	ItemRenderLayer     = 5
)

var ErrInvalidQuantity = errors.New("entity: quantity must be positive")

// WorldItemFactory places item entities in the world. It satisfies
// system.ItemSpawner.
type WorldItemFactory struct {
	registry     *items.Registry
	PickupRadius float64
	Drag         float64
}

func NewWorldItemFactory(registry *items.Registry) *WorldItemFactory {
	return &WorldItemFactory{
		registry:     registry,
		PickupRadius: DefaultPickupRadius,
		Drag:         DefaultItemDrag,
	}
}

// SpawnWorldItem creates a pickup for qty of itemID at pos, clamped to the
// item's max stack. A non-zero impulse slides the item until it settles.
func (f *WorldItemFactory) SpawnWorldItem(w *ecs.World, itemID string, qty int, pos, impulse cp.Vector) (ecs.Entity, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	def, ok := f.registry.Get(itemID)
	if !ok {
		return 0, fmt.Errorf("%w: %q", items.ErrUnknownItem, itemID)
	}

	qty = min(qty, max(def.MaxStack, 1))
	radius := f.PickupRadius
	if radius <= 0 {
		radius = DefaultPickupRadius
	}

	icon := def.Icon
	if icon == "" {
		icon = "items/" + def.ID + ".png"
	}

	e := ecs.CreateEntity(w)
	components := []func() error{
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1})
		},
		func() error {
			return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
				Image:   icon,
				OriginX: ItemIconSize / 2,
				OriginY: ItemIconSize - 4,
			})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: ItemRenderLayer})
		},
		func() error {
			return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: def.DisplayName + " Item"})
		},
		func() error {
			return ecs.Add(w, e, component.WorldItemComponent.Kind(), &component.WorldItem{
				ItemID:       def.ID,
				DisplayName:  def.DisplayName,
				Quantity:     qty,
				PickupRadius: radius,
			})
		},
		func() error {
			return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
				Radius:  radius,
				Prompt:  items.PickupPrompt(def.DisplayName, qty),
				Enabled: true,
			})
		},
	}
	if impulse.LengthSq() > 0 {
		components = append(components, func() error {
			return ecs.Add(w, e, component.DroppedItemPhysicsComponent.Kind(), &component.DroppedItemPhysics{
				VelocityX: impulse.X,
				VelocityY: impulse.Y,
				Drag:      cp.Clamp(f.Drag, 0, 20),
				MinSpeed:  ItemMinSpeed,
			})
		})
	}

	for _, addComponent := range components {
		if err := addComponent(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("world item %s: %w", def.ID, err)
		}
	}
	return e, nil
}
