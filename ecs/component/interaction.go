package component

// DefaultInteractRadius applies when an Interactable has no positive radius.
const DefaultInteractRadius = 24.0

type Interactable struct {
	Radius  float64
	Prompt  string
	Enabled bool
}

// EffectiveRadius returns Radius, or the default when it is not positive.
func (i Interactable) EffectiveRadius() float64 {
	if i.Radius <= 0 {
		return DefaultInteractRadius
	}
	return i.Radius
}

var InteractableComponent = NewComponent[Interactable]()

// InteractionStarted is emitted when the player confirms an interaction.
type InteractionStarted struct {
	Target uint64 // ecs.Entity is uint64
}

var InteractionStartedEvent = NewEventKind[InteractionStarted]()
