package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

// DialogueState reports whether a conversation is running.
type DialogueState interface {
	Active() bool
}

// NPCInteractionSystem switches NPCs into Interact when the player talks to
// them and restores their previous behavior once no dialogue is running.
type NPCInteractionSystem struct {
	dialogue DialogueState
	entered  map[ecs.Entity]struct{}
}

func NewNPCInteractionSystem(dialogue DialogueState) *NPCInteractionSystem {
	return &NPCInteractionSystem{dialogue: dialogue, entered: make(map[ecs.Entity]struct{})}
}

func (s *NPCInteractionSystem) Update(w *ecs.World, _ float64) {
	clear(s.entered)

	for _, evt := range ecs.Events(w, component.InteractionStartedEvent).Events() {
		target := ecs.Entity(evt.Target)
		if !ecs.Has(w, target, component.NPCTagComponent.Kind()) {
			continue
		}
		brain, ok := ecs.Get(w, target, component.NPCBrainComponent.Kind())
		if !ok {
			continue
		}
		if brain.Current != component.BehaviorInteract {
			brain.Saved = brain.Current
		}
		brain.Current = component.BehaviorInteract
		s.entered[target] = struct{}{}
		s.facePlayer(w, target)
	}

	if s.dialogue != nil && s.dialogue.Active() {
		return
	}

	// The dialogue for an interaction that started this frame has not been
	// opened yet, so those NPCs are left in Interact.
	ecs.ForEach(w, component.NPCBrainComponent.Kind(), func(e ecs.Entity, brain *component.NPCBrain) {
		if brain.Current != component.BehaviorInteract {
			return
		}
		if _, ok := s.entered[e]; ok {
			return
		}
		brain.Current = brain.Saved
		brain.StateTimer = 0
	})
}

func (s *NPCInteractionSystem) facePlayer(w *ecs.World, npc ecs.Entity) {
	player, ok := playerEntity(w)
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	nt, ok := ecs.Get(w, npc, component.TransformComponent.Kind())
	if !ok {
		return
	}
	facing, ok := ecs.Get(w, npc, component.FacingComponent.Kind())
	if !ok {
		return
	}
	facing.Facing = component.FacingFromVector(pt.X-nt.X, pt.Y-nt.Y)
}
