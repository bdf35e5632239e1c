package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/input"
)

// InteractionTarget is the interactable closest to the player this frame.
type InteractionTarget struct {
	Entity   ecs.Entity
	Position cp.Vector
	Radius   float64
	Prompt   string
}

// InteractionSystem finds the nearest enabled interactable in range of the
// player and emits InteractionStarted when the player confirms.
type InteractionSystem struct {
	actions ActionSource
	current InteractionTarget
	ok      bool
}

func NewInteractionSystem(actions ActionSource) *InteractionSystem {
	return &InteractionSystem{actions: actions}
}

// Current returns the interactable the prompt should point at.
func (s *InteractionSystem) Current() (InteractionTarget, bool) {
	return s.current, s.ok
}

func (s *InteractionSystem) Update(w *ecs.World, _ float64) {
	s.current, s.ok = InteractionTarget{}, false

	player, ok := playerEntity(w)
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerPos := pt.Position()

	best := math.Inf(1)
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.InteractableComponent.Kind(), func(e ecs.Entity, t *component.Transform, it *component.Interactable) {
		if e == player || !it.Enabled {
			return
		}
		r := it.EffectiveRadius()
		pos := t.Position()
		d := playerPos.DistanceSq(pos)
		if d > r*r || d >= best {
			return
		}
		best = d
		s.current = InteractionTarget{Entity: e, Position: pos, Radius: r, Prompt: it.Prompt}
		s.ok = true
	})

	if !s.ok || s.actions == nil || !s.actions.JustPressed(input.ActionInteract) {
		return
	}

	ecs.Emit(w, component.InteractionStartedEvent, component.InteractionStarted{Target: uint64(s.current.Entity)})
	s.current, s.ok = InteractionTarget{}, false
}
