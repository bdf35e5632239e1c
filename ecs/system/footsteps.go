package system

import (
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/sound"
)

const (
	FootstepAsset   = "footsteps"
	footstepLoopKey = "player_footsteps"
)

// FootstepSystem loops the footstep sound while the player walks.
type FootstepSystem struct {
	bus     *sound.Bus
	walking bool
}

func NewFootstepSystem(bus *sound.Bus) *FootstepSystem {
	return &FootstepSystem{bus: bus}
}

func (s *FootstepSystem) Update(w *ecs.World, _ float64) {
	moving := false
	if player, ok := playerEntity(w); ok {
		if v, ok := ecs.Get(w, player, component.VelocityComponent.Kind()); ok {
			moving = v.Moving()
		}
	}

	switch {
	case moving && !s.walking:
		s.walking = true
		if s.bus != nil {
			s.bus.PublishStartLoop(sound.StartLoop{Asset: FootstepAsset, Key: footstepLoopKey, Volume: 0.5, Pitch: 1})
		}
	case !moving && s.walking:
		s.Stop()
	}
}

// Stop silences the loop, e.g. when gameplay pauses mid-stride.
func (s *FootstepSystem) Stop() {
	if !s.walking {
		return
	}
	s.walking = false
	if s.bus != nil {
		s.bus.PublishStopLoop(sound.StopLoop{Key: footstepLoopKey})
	}
}
