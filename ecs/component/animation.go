package component

import (
	"image"
	"strings"
)

type MovementAction int

const (
	ActionIdle MovementAction = iota
	ActionWalk
)

func (a MovementAction) String() string {
	if a == ActionWalk {
		return "walk"
	}
	return "idle"
}

// AnimationKey selects a clip by what the entity is doing and where it faces.
type AnimationKey struct {
	Action MovementAction
	Facing Facing
}

// String returns the clip name, e.g. "walkLeft".
func (k AnimationKey) String() string {
	f := k.Facing.String()
	return k.Action.String() + strings.ToUpper(f[:1]) + f[1:]
}

var animationKeyNames = map[string]AnimationKey{
	"idledown":  {Action: ActionIdle, Facing: FacingDown},
	"idleup":    {Action: ActionIdle, Facing: FacingUp},
	"idleleft":  {Action: ActionIdle, Facing: FacingLeft},
	"idleright": {Action: ActionIdle, Facing: FacingRight},
	"walkdown":  {Action: ActionWalk, Facing: FacingDown},
	"walkup":    {Action: ActionWalk, Facing: FacingUp},
	"walkleft":  {Action: ActionWalk, Facing: FacingLeft},
	"walkright": {Action: ActionWalk, Facing: FacingRight},
}

// ParseAnimationKey maps a clip name such as "walkLeft" to its key. Names
// are case-insensitive.
func ParseAnimationKey(name string) (AnimationKey, bool) {
	key, ok := animationKeyNames[strings.ToLower(name)]
	return key, ok
}

type AnimationClip struct {
	Frames        []image.Rectangle
	FrameDuration float64
	Loop          bool
}

type SpriteAnimator struct {
	Clips   map[AnimationKey]*AnimationClip
	Key     AnimationKey
	Frame   int
	Elapsed float64
}

// Clip returns the clip for the current key, or nil.
func (a *SpriteAnimator) Clip() *AnimationClip {
	if a == nil || a.Clips == nil {
		return nil
	}
	return a.Clips[a.Key]
}

var SpriteAnimatorComponent = NewComponent[SpriteAnimator]()

// TileFrame is one step of an animated map tile.
type TileFrame struct {
	GID      uint32
	Duration float64
}

// AnimatedTile cycles a map cell through Frames by elapsed time.
type AnimatedTile struct {
	Layer   string
	Col     int
	Row     int
	Frames  []TileFrame
	Elapsed float64
	Current uint32
}

var AnimatedTileComponent = NewComponent[AnimatedTile]()
