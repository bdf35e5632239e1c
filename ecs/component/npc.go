package component

import (
	"strings"

	"github.com/jakecoffman/cp"
)

type NPCBehavior int

const (
	BehaviorIdle NPCBehavior = iota
	BehaviorPatrol
	BehaviorWander
	BehaviorFacePlayer
	BehaviorInteract
)

func (b NPCBehavior) String() string {
	switch b {
	case BehaviorPatrol:
		return "Patrol"
	case BehaviorWander:
		return "Wander"
	case BehaviorFacePlayer:
		return "FacePlayer"
	case BehaviorInteract:
		return "Interact"
	default:
		return "Idle"
	}
}

// ParseNPCBehavior maps a content name to a behavior. Unknown names are Idle.
func ParseNPCBehavior(name string) NPCBehavior {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "patrol":
		return BehaviorPatrol
	case "wander":
		return BehaviorWander
	case "faceplayer", "face_player":
		return BehaviorFacePlayer
	case "interact":
		return BehaviorInteract
	default:
		return BehaviorIdle
	}
}

type NPCBrain struct {
	Current    NPCBehavior
	Default    NPCBehavior
	Saved      NPCBehavior
	StateTimer float64
}

var NPCBrainComponent = NewComponent[NPCBrain]()

type PatrolPath struct {
	Waypoints []cp.Vector
	Index     int
	WaitTime  float64
	WaitTimer float64
	Loop      bool
	// Done is set once a non-looping path reaches its last waypoint.
	Done bool
}

var PatrolPathComponent = NewComponent[PatrolPath]()

type Wander struct {
	Origin    cp.Vector
	Radius    float64
	Target    cp.Vector
	HasTarget bool
	WaitTime  float64
	WaitTimer float64
}

var WanderComponent = NewComponent[Wander]()

type NPCTag struct{}

var NPCTagComponent = NewComponent[NPCTag]()

// NPCData records which definition an NPC was spawned from.
type NPCData struct {
	DefinitionID string
	DisplayName  string
	SpawnKey     string
}

var NPCDataComponent = NewComponent[NPCData]()
