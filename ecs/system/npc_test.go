package system

import (
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"pgregory.net/rapid"
)

func npcEntity(t tb, w *ecs.World, x, y float64, brain component.NPCBrain) (ecs.Entity, *component.NPCBrain) {
	t.Helper()
	e := mover(t, w, x, y, 0, 0)
	b := brain
	addComponent(t, w, e, component.NPCTagComponent, &component.NPCTag{})
	addComponent(t, w, e, component.NPCBrainComponent, &b)
	return e, &b
}

func velocityOf(w *ecs.World, e ecs.Entity) *component.Velocity {
	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	return v
}

func TestNPCBrainIdleToWander(t *testing.T) {
	tests := []struct {
		name       string
		hasWander  bool
		def        component.NPCBehavior
		timer      float64
		want       component.NPCBehavior
		wantTimer0 bool
	}{
		{"no_wander_component", false, component.BehaviorWander, 6, component.BehaviorIdle, false},
		{"default_idle", true, component.BehaviorIdle, 6, component.BehaviorIdle, false},
		{"before_interval", true, component.BehaviorWander, 1, component.BehaviorIdle, false},
		{"check_resets_timer", true, component.BehaviorWander, 6, component.BehaviorIdle, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, brain := npcEntity(t, w, 0, 0, component.NPCBrain{Current: component.BehaviorIdle, Default: tc.def, StateTimer: tc.timer})
			if tc.hasWander {
				addComponent(t, w, e, component.WanderComponent, &component.Wander{Radius: 10})
			}

			// A source that always rolls 0.99 never passes the 10% check.
			sys := NewNPCBrainSystem(rand.New(constSource(0.99)))
			sys.Update(w, frameDT)

			if brain.Current != tc.want {
				t.Fatalf("behavior = %s, want %s", brain.Current, tc.want)
			}
			if tc.wantTimer0 && brain.StateTimer != 0 {
				t.Fatalf("timer = %v, want reset", brain.StateTimer)
			}
			if !tc.wantTimer0 && brain.StateTimer == 0 {
				t.Fatalf("timer should keep accumulating")
			}
		})
	}
}

func TestNPCBrainWanderRollSucceeds(t *testing.T) {
	w := ecs.NewWorld()
	e, brain := npcEntity(t, w, 0, 0, component.NPCBrain{Current: component.BehaviorIdle, Default: component.BehaviorWander, StateTimer: 5.5})
	addComponent(t, w, e, component.WanderComponent, &component.Wander{Radius: 10})

	NewNPCBrainSystem(rand.New(constSource(0.01))).Update(w, frameDT)

	if brain.Current != component.BehaviorWander || brain.StateTimer != 0 {
		t.Fatalf("got %s timer=%v, want wander with reset timer", brain.Current, brain.StateTimer)
	}
}

func TestNPCBrainWanderToIdle(t *testing.T) {
	tests := []struct {
		name  string
		def   component.NPCBehavior
		timer float64
		want  component.NPCBehavior
	}{
		{"default_idle_expired", component.BehaviorIdle, 31, component.BehaviorIdle},
		{"default_idle_running", component.BehaviorIdle, 10, component.BehaviorWander},
		{"default_wander", component.BehaviorWander, 100, component.BehaviorWander},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, brain := npcEntity(t, w, 0, 0, component.NPCBrain{Current: component.BehaviorWander, Default: tc.def, StateTimer: tc.timer})

			NewNPCBrainSystem(nil).Update(w, frameDT)

			if brain.Current != tc.want {
				t.Fatalf("behavior = %s, want %s", brain.Current, tc.want)
			}
		})
	}
}

func TestNPCBrainNoSelfTransitions(t *testing.T) {
	for _, b := range []component.NPCBehavior{component.BehaviorPatrol, component.BehaviorFacePlayer, component.BehaviorInteract} {
		t.Run(b.String(), func(t *testing.T) {
			w := ecs.NewWorld()
			_, brain := npcEntity(t, w, 0, 0, component.NPCBrain{Current: b, Default: component.BehaviorIdle, StateTimer: 100})

			NewNPCBrainSystem(rand.New(constSource(0))).Update(w, 1)

			if brain.Current != b || brain.StateTimer != 101 {
				t.Fatalf("got %s timer=%v", brain.Current, brain.StateTimer)
			}
		})
	}
}

func TestNPCMovementStillBehaviorsZeroVelocity(t *testing.T) {
	for _, b := range []component.NPCBehavior{component.BehaviorIdle, component.BehaviorFacePlayer, component.BehaviorInteract} {
		t.Run(b.String(), func(t *testing.T) {
			w := ecs.NewWorld()
			e, _ := npcEntity(t, w, 0, 0, component.NPCBrain{Current: b})
			v := velocityOf(w, e)
			v.X, v.Y = 3, -4

			NewNPCMovementSystem(nil).Update(w, frameDT)

			if v.X != 0 || v.Y != 0 {
				t.Fatalf("velocity = (%v,%v), want zero", v.X, v.Y)
			}
		})
	}
}

func TestNPCMovementPatrol(t *testing.T) {
	waypoints := []cp.Vector{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}

	tests := []struct {
		name      string
		pos       cp.Vector
		index     int
		loop      bool
		wait      float64
		wantIndex int
		wantWait  float64
		wantDone  bool
		wantMove  bool
	}{
		{"reach_advances", cp.Vector{X: 98, Y: 0}, 1, true, 2, 2, 2, false, false},
		{"reach_last_wraps", cp.Vector{X: 100, Y: 97}, 2, true, 2, 0, 2, false, false},
		{"reach_last_clamps", cp.Vector{X: 100, Y: 97}, 2, false, 2, 2, 2, true, false},
		{"steers", cp.Vector{X: 50, Y: 0}, 1, true, 2, 1, 0, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, _ := npcEntity(t, w, tc.pos.X, tc.pos.Y, component.NPCBrain{Current: component.BehaviorPatrol, Default: component.BehaviorPatrol})
			path := &component.PatrolPath{Waypoints: waypoints, Index: tc.index, WaitTime: tc.wait, Loop: tc.loop}
			addComponent(t, w, e, component.PatrolPathComponent, path)

			NewNPCMovementSystem(nil).Update(w, frameDT)

			if path.Index != tc.wantIndex || path.WaitTimer != tc.wantWait || path.Done != tc.wantDone {
				t.Fatalf("index=%d wait=%v done=%v, want %d %v %v", path.Index, path.WaitTimer, path.Done, tc.wantIndex, tc.wantWait, tc.wantDone)
			}
			v := velocityOf(w, e)
			if tc.wantMove {
				want := NPCSpeed * frameDT
				if !near(v.X, want) || v.Y != 0 {
					t.Fatalf("velocity = (%v,%v), want (%v,0)", v.X, v.Y, want)
				}
			} else if v.X != 0 || v.Y != 0 {
				t.Fatalf("velocity = (%v,%v), want zero", v.X, v.Y)
			}
		})
	}
}

func TestNPCMovementPatrolWaitsAndHalts(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := npcEntity(t, w, 0, 0, component.NPCBrain{Current: component.BehaviorPatrol})
	path := &component.PatrolPath{Waypoints: []cp.Vector{{X: 50, Y: 0}}, WaitTimer: 1}
	addComponent(t, w, e, component.PatrolPathComponent, path)
	sys := NewNPCMovementSystem(nil)

	sys.Update(w, 0.25)
	if path.WaitTimer != 0.75 || velocityOf(w, e).X != 0 {
		t.Fatalf("waiting NPC should count down and hold, timer=%v", path.WaitTimer)
	}

	path.WaitTimer = 0
	path.Done = true
	sys.Update(w, frameDT)
	if velocityOf(w, e).X != 0 {
		t.Fatalf("finished path should hold still")
	}

	empty, _ := npcEntity(t, w, 0, 0, component.NPCBrain{Current: component.BehaviorPatrol})
	addComponent(t, w, empty, component.PatrolPathComponent, &component.PatrolPath{})
	sys.Update(w, frameDT)
	if v := velocityOf(w, empty); v.X != 0 || v.Y != 0 {
		t.Fatalf("empty path should hold still")
	}
}

func TestNPCMovementWanderTargetsStayInRadius(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		radius := rapid.Float64Range(1, 200).Draw(t, "radius")
		origin := cp.Vector{X: rapid.Float64Range(-500, 500).Draw(t, "ox"), Y: rapid.Float64Range(-500, 500).Draw(t, "oy")}

		sys := NewNPCMovementSystem(rand.New(rand.NewPCG(seed, seed^0x9e37)))
		wd := &component.Wander{Origin: origin, Radius: radius}
		for i := 0; i < 20; i++ {
			target := sys.pickTarget(wd)
			if target.Distance(origin) > radius+1e-9 {
				t.Fatalf("target %v is %v from origin, radius %v", target, target.Distance(origin), radius)
			}
		}
	})
}

func TestNPCMovementWanderSeededIsDeterministic(t *testing.T) {
	run := func() cp.Vector {
		w := ecs.NewWorld()
		e, _ := npcEntity(t, w, 10, 10, component.NPCBrain{Current: component.BehaviorWander, Default: component.BehaviorWander})
		wd := &component.Wander{Origin: cp.Vector{X: 10, Y: 10}, Radius: 40, WaitTime: 1}
		addComponent(t, w, e, component.WanderComponent, wd)
		NewNPCMovementSystem(rand.New(rand.NewPCG(7, 11))).Update(w, frameDT)
		if !wd.HasTarget {
			t.Fatalf("expected a target to be picked")
		}
		return wd.Target
	}

	if a, b := run(), run(); a != b {
		t.Fatalf("same seed picked %v and %v", a, b)
	}
}

func TestNPCMovementWanderReachWaitsAndRepicks(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := npcEntity(t, w, 10, 10, component.NPCBrain{Current: component.BehaviorWander})
	wd := &component.Wander{Origin: cp.Vector{X: 10, Y: 10}, Radius: 40, WaitTime: 2, Target: cp.Vector{X: 12, Y: 10}, HasTarget: true}
	addComponent(t, w, e, component.WanderComponent, wd)

	NewNPCMovementSystem(rand.New(rand.NewPCG(3, 4))).Update(w, frameDT)

	if wd.WaitTimer != 2 {
		t.Fatalf("wait timer = %v, want 2", wd.WaitTimer)
	}
	if wd.Target == (cp.Vector{X: 12, Y: 10}) {
		t.Fatalf("expected a new target")
	}
	if v := velocityOf(w, e); v.X != 0 || v.Y != 0 {
		t.Fatalf("velocity should be zero on arrival")
	}
}

type fakeDialogue bool

func (d fakeDialogue) Active() bool { return bool(d) }

func TestNPCInteractionSystem(t *testing.T) {
	w := ecs.NewWorld()
	player := mover(t, w, 50, 0, 0, 0)
	addComponent(t, w, player, component.PlayerTagComponent, &component.PlayerTag{})
	npc, brain := npcEntity(t, w, 0, 0, component.NPCBrain{Current: component.BehaviorPatrol, Default: component.BehaviorPatrol, StateTimer: 3})

	ecs.Emit(w, component.InteractionStartedEvent, component.InteractionStarted{Target: uint64(npc)})
	NewNPCInteractionSystem(fakeDialogue(false)).Update(w, frameDT)

	if brain.Current != component.BehaviorInteract || brain.Saved != component.BehaviorPatrol {
		t.Fatalf("got current=%s saved=%s", brain.Current, brain.Saved)
	}
	f, _ := ecs.Get(w, npc, component.FacingComponent.Kind())
	if f.Facing != component.FacingRight {
		t.Fatalf("npc should face the player to its right, got %s", f.Facing)
	}

	w.ClearEvents()
	NewNPCInteractionSystem(fakeDialogue(true)).Update(w, frameDT)
	if brain.Current != component.BehaviorInteract {
		t.Fatalf("behavior should hold while dialogue is active")
	}

	sys := NewNPCInteractionSystem(fakeDialogue(false))
	sys.Update(w, frameDT)
	if brain.Current != component.BehaviorPatrol || brain.StateTimer != 0 {
		t.Fatalf("got current=%s timer=%v, want restored patrol", brain.Current, brain.StateTimer)
	}
	sys.Update(w, frameDT)
	if brain.Current != component.BehaviorPatrol {
		t.Fatalf("restore should be idempotent")
	}
}

func TestNPCInteractionIgnoresNonNPCTargets(t *testing.T) {
	w := ecs.NewWorld()
	other := mover(t, w, 0, 0, 0, 0)
	b := &component.NPCBrain{Current: component.BehaviorIdle}
	addComponent(t, w, other, component.NPCBrainComponent, b)

	ecs.Emit(w, component.InteractionStartedEvent, component.InteractionStarted{Target: uint64(other)})
	NewNPCInteractionSystem(fakeDialogue(false)).Update(w, frameDT)

	if b.Current != component.BehaviorIdle {
		t.Fatalf("untagged entity should be ignored")
	}
}

// constSource is a rand.Source whose Float64 is always v.
type constSource float64

func (c constSource) Uint64() uint64 {
	return uint64(float64(c) * (1 << 53))
}
