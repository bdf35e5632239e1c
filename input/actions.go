package input

//go:generate go tool mockgen -destination=../mocks/key_source_mock.go -package=mocks . KeySource

// Action names bound in bindings.json.
const (
	ActionMoveUp        = "MoveUp"
	ActionMoveDown      = "MoveDown"
	ActionMoveLeft      = "MoveLeft"
	ActionMoveRight     = "MoveRight"
	ActionInteract      = "Interact"
	ActionDropItem      = "DropItem"
	ActionSelectItem1   = "SelectItem1"
	ActionSelectItem2   = "SelectItem2"
	ActionSelectItem3   = "SelectItem3"
	ActionSelectItem4   = "SelectItem4"
	ActionCycleItemNext = "CycleItemNext"
	ActionCycleItemPrev = "CycleItemPrev"
	ActionPause         = "Pause"
	ActionToggleOverlay = "ToggleOverlay"
)

// KeySource reports whether a physical key, named as in bindings.json, is
// held down right now.
type KeySource interface {
	IsKeyDown(name string) bool
}

// Bindings maps an action name to the physical keys that trigger it.
type Bindings map[string][]string

// ActionService turns raw key state into named actions with edge detection.
// Call Update at the start of a frame and EndFrame once at the end.
type ActionService struct {
	bindings Bindings
	source   KeySource
	current  map[string]bool
	previous map[string]bool
	overlay  bool
}

func NewActionService(bindings Bindings, source KeySource) *ActionService {
	return &ActionService{
		bindings: bindings,
		source:   source,
		current:  make(map[string]bool),
		previous: make(map[string]bool),
		overlay:  true,
	}
}

// SetBindings replaces the binding table, e.g. after a content reload.
func (s *ActionService) SetBindings(bindings Bindings) {
	s.bindings = bindings
}

func (s *ActionService) Bindings() Bindings {
	return s.bindings
}

// Update samples every bound key.
func (s *ActionService) Update() {
	clear(s.current)
	if s.source != nil {
		for _, keys := range s.bindings {
			for _, k := range keys {
				if _, seen := s.current[k]; seen {
					continue
				}
				s.current[k] = s.source.IsKeyDown(k)
			}
		}
	}
	if s.JustPressed(ActionToggleOverlay) {
		s.overlay = !s.overlay
	}
}

// EndFrame rolls the current key state into the previous one.
func (s *ActionService) EndFrame() {
	s.previous, s.current = s.current, s.previous
	clear(s.current)
}

// JustPressed reports whether any key bound to action went down this frame.
func (s *ActionService) JustPressed(action string) bool {
	for _, k := range s.bindings[action] {
		if s.current[k] && !s.previous[k] {
			return true
		}
	}
	return false
}

// Active reports whether any key bound to action is held.
func (s *ActionService) Active(action string) bool {
	for _, k := range s.bindings[action] {
		if s.current[k] {
			return true
		}
	}
	return false
}

// OverlayActive reports whether the debug overlay is toggled on.
func (s *ActionService) OverlayActive() bool {
	return s.overlay
}
