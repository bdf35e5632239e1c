package component

import "github.com/jakecoffman/cp"

type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func (t Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X = p.X
	t.Y = p.Y
}

var TransformComponent = NewComponent[Transform]()

// MovingThreshold is the squared speed above which an entity counts as moving
// for facing and animation purposes.
const MovingThreshold = 0.0001

// Velocity is a direction times speed in pixels per second.
type Velocity struct {
	X float64
	Y float64
}

func (v Velocity) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func (v *Velocity) Set(vec cp.Vector) {
	v.X = vec.X
	v.Y = vec.Y
}

func (v Velocity) Moving() bool {
	return v.X*v.X+v.Y*v.Y > MovingThreshold
}

var VelocityComponent = NewComponent[Velocity]()
