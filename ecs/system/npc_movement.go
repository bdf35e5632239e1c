package system

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

const (
	// NPCSpeed is in pixels per second before MovementSystem scales it again.
	NPCSpeed = 50.0
	// ReachDistance is how close counts as arriving at a waypoint or target.
	ReachDistance = 5.0
)

// NPCMovementSystem turns the current NPC behavior into a velocity. Steering
// velocity is already scaled by dt and MovementSystem scales it again.
type NPCMovementSystem struct {
	rng *rand.Rand
}

func NewNPCMovementSystem(rng *rand.Rand) *NPCMovementSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &NPCMovementSystem{rng: rng}
}

func (s *NPCMovementSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach3(w, component.NPCBrainComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, brain *component.NPCBrain, t *component.Transform, v *component.Velocity) {
		switch brain.Current {
		case component.BehaviorPatrol:
			if path, ok := ecs.Get(w, e, component.PatrolPathComponent.Kind()); ok {
				s.patrol(path, t, v, dt)
				return
			}
		case component.BehaviorWander:
			if wander, ok := ecs.Get(w, e, component.WanderComponent.Kind()); ok {
				s.wander(wander, t, v, dt)
				return
			}
		}
		v.X, v.Y = 0, 0
	})
}

func (s *NPCMovementSystem) patrol(path *component.PatrolPath, t *component.Transform, v *component.Velocity, dt float64) {
	if len(path.Waypoints) == 0 || path.Done {
		v.X, v.Y = 0, 0
		return
	}
	if path.WaitTimer > 0 {
		path.WaitTimer -= dt
		v.X, v.Y = 0, 0
		return
	}
	if path.Index < 0 || path.Index >= len(path.Waypoints) {
		path.Index = 0
	}

	delta := path.Waypoints[path.Index].Sub(t.Position())
	if delta.Length() < ReachDistance {
		path.WaitTimer = path.WaitTime
		switch {
		case path.Index < len(path.Waypoints)-1:
			path.Index++
		case path.Loop:
			path.Index = 0
		default:
			path.Done = true
		}
		v.X, v.Y = 0, 0
		return
	}

	v.Set(delta.Normalize().Mult(NPCSpeed * dt))
}

func (s *NPCMovementSystem) wander(wd *component.Wander, t *component.Transform, v *component.Velocity, dt float64) {
	if wd.WaitTimer > 0 {
		wd.WaitTimer -= dt
		v.X, v.Y = 0, 0
		return
	}
	if !wd.HasTarget {
		wd.Target = s.pickTarget(wd)
		wd.HasTarget = true
	}

	delta := wd.Target.Sub(t.Position())
	if delta.Length() < ReachDistance {
		wd.WaitTimer = wd.WaitTime
		wd.Target = s.pickTarget(wd)
		v.X, v.Y = 0, 0
		return
	}

	v.Set(delta.Normalize().Mult(NPCSpeed * dt))
}

// pickTarget samples uniformly in angle and radius, so targets cluster
// toward the origin.
func (s *NPCMovementSystem) pickTarget(wd *component.Wander) cp.Vector {
	angle := s.rng.Float64() * 2 * math.Pi
	radius := s.rng.Float64() * wd.Radius
	return wd.Origin.Add(cp.ForAngle(angle).Mult(radius))
}
