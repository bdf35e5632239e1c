package component

type ItemStack struct {
	ItemID   string
	Quantity int
}

// Inventory holds stacks by normalized item id. Slots lists distinct item ids
// in acquisition order; Selected is -1 exactly when Slots is empty.
type Inventory struct {
	Stacks   map[string]*ItemStack
	Slots    []string
	Selected int
}

func NewInventory() *Inventory {
	return &Inventory{Stacks: make(map[string]*ItemStack), Selected: -1}
}

var InventoryComponent = NewComponent[Inventory]()

// WorldItem is an item lying in the world waiting to be picked up.
type WorldItem struct {
	ItemID       string
	DisplayName  string
	Quantity     int
	PickupRadius float64
}

var WorldItemComponent = NewComponent[WorldItem]()

// DroppedItemPhysics slides a freshly dropped item until it comes to rest.
type DroppedItemPhysics struct {
	VelocityX float64
	VelocityY float64
	Drag      float64
	MinSpeed  float64
}

var DroppedItemPhysicsComponent = NewComponent[DroppedItemPhysics]()
