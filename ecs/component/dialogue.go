package component

// DialogueRef links an entity to a dialogue graph by id.
type DialogueRef struct {
	DialogueID string
}

var DialogueRefComponent = NewComponent[DialogueRef]()
