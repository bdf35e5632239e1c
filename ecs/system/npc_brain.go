package system

import (
	"math/rand/v2"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

const (
	// IdleCheckInterval is how long an idle NPC waits between wander rolls.
	IdleCheckInterval = 5.0
	// IdleToWanderChance is the probability a wander roll succeeds.
	IdleToWanderChance = 0.1
	// WanderDuration is how long a wandering NPC whose default is Idle keeps
	// wandering.
	WanderDuration = 30.0
)

// NPCBrainSystem runs the self transitions of the NPC behavior machine.
// Interact is owned by NPCInteractionSystem.
type NPCBrainSystem struct {
	rng *rand.Rand
}

func NewNPCBrainSystem(rng *rand.Rand) *NPCBrainSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}
	return &NPCBrainSystem{rng: rng}
}

func (s *NPCBrainSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.NPCBrainComponent.Kind(), func(e ecs.Entity, brain *component.NPCBrain) {
		brain.StateTimer += dt

		switch brain.Current {
		case component.BehaviorIdle:
			if !ecs.Has(w, e, component.WanderComponent.Kind()) || brain.Default == component.BehaviorIdle {
				return
			}
			if brain.StateTimer <= IdleCheckInterval {
				return
			}
			if s.rng.Float64() < IdleToWanderChance {
				brain.Current = component.BehaviorWander
			}
			brain.StateTimer = 0
		case component.BehaviorWander:
			if brain.Default == component.BehaviorIdle && brain.StateTimer > WanderDuration {
				brain.Current = component.BehaviorIdle
				brain.StateTimer = 0
			}
		}
	})
}
