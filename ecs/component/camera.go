package component

import "image/color"

// Camera names the entity to follow. Smoothness in (0, 1) eases toward the
// target; 0 follows exactly.
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	Background color.Color
}

var CameraComponent = NewComponent[Camera]()
