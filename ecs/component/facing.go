package component

import (
	"math"
	"strings"
)

type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

// Offset returns the unit vector pointing the way f faces in screen space.
func (f Facing) Offset() (float64, float64) {
	switch f {
	case FacingUp:
		return 0, -1
	case FacingLeft:
		return -1, 0
	case FacingRight:
		return 1, 0
	default:
		return 0, 1
	}
}

// FacingFromVector picks the dominant axis of (x, y). Ties go to the
// horizontal axis and positive y faces down.
func FacingFromVector(x, y float64) Facing {
	if math.Abs(x) >= math.Abs(y) {
		if x >= 0 {
			return FacingRight
		}
		return FacingLeft
	}
	if y >= 0 {
		return FacingDown
	}
	return FacingUp
}

type FacingDirection struct {
	Facing Facing
}

var FacingComponent = NewComponent[FacingDirection]()

// ParseFacing maps "up", "left" and "right" to their facing. Anything else
// faces down.
func ParseFacing(name string) Facing {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return FacingUp
	case "left":
		return FacingLeft
	case "right":
		return FacingRight
	default:
		return FacingDown
	}
}
