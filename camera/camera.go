// Package camera tracks the view position over a fixed-size world.
package camera

import "github.com/jakecoffman/cp"

type Service struct {
	ViewWidth   float64
	ViewHeight  float64
	WorldWidth  float64
	WorldHeight float64
	Zoom        float64
	position    cp.Vector
}

func NewService(viewW, viewH, worldW, worldH, zoom float64) *Service {
	if zoom <= 0 {
		zoom = 1
	}
	return &Service{
		ViewWidth:   viewW,
		ViewHeight:  viewH,
		WorldWidth:  worldW,
		WorldHeight: worldH,
		Zoom:        zoom,
		position:    cp.Vector{X: viewW / 2, Y: viewH / 2},
	}
}

func (s *Service) Position() cp.Vector {
	return s.position
}

// Update moves the camera center to target exactly.
func (s *Service) Update(target cp.Vector) {
	s.position = target
}

func (s *Service) SetViewport(viewW, viewH float64) {
	s.ViewWidth = viewW
	s.ViewHeight = viewH
}

func (s *Service) SetWorld(worldW, worldH float64) {
	s.WorldWidth = worldW
	s.WorldHeight = worldH
}

// Clamp keeps the visible area inside the world. A world smaller than the
// view on an axis is centered on that axis.
func (s *Service) Clamp() {
	halfW := s.ViewWidth / 2 / s.Zoom
	halfH := s.ViewHeight / 2 / s.Zoom
	s.position.X = clampAxis(s.position.X, halfW, s.WorldWidth-halfW-1, s.WorldWidth/2)
	s.position.Y = clampAxis(s.position.Y, halfH, s.WorldHeight-halfH-1, s.WorldHeight/2)
}

func clampAxis(v, lo, hi, center float64) float64 {
	if hi < lo {
		return center
	}
	return cp.Clamp(v, lo, hi)
}

// WorldToScreen maps a world point to view coordinates.
func (s *Service) WorldToScreen(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: (p.X-s.position.X)*s.Zoom + s.ViewWidth/2,
		Y: (p.Y-s.position.Y)*s.Zoom + s.ViewHeight/2,
	}
}

func (s *Service) ScreenToWorld(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: (p.X-s.ViewWidth/2)/s.Zoom + s.position.X,
		Y: (p.Y-s.ViewHeight/2)/s.Zoom + s.position.Y,
	}
}

// Visible reports the world-space rectangle currently on screen.
func (s *Service) Visible() cp.BB {
	halfW := s.ViewWidth / 2 / s.Zoom
	halfH := s.ViewHeight / 2 / s.Zoom
	return cp.NewBBForExtents(s.position, halfW, halfH)
}
