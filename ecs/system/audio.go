package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/sound"
)

// Player is the part of the sound service the audio system drives.
type Player interface {
	Play(asset string, volume, pitch, pan float64)
	StartLoop(asset, key string, volume, pitch, pan float64)
	StopLoop(key string)
}

// AudioSystem drains the sound bus into the sound service once per frame.
// Positional sounds are panned against the listener when one is set.
type AudioSystem struct {
	sounds   Player
	bus      *sound.Bus
	listener func() (cp.Vector, bool)
	panRange float64
}

func NewAudioSystem(sounds Player, bus *sound.Bus) *AudioSystem {
	return &AudioSystem{sounds: sounds, bus: bus}
}

// SetListener makes PlaySfxAt pan by horizontal offset from the listener.
// Sounds panRange pixels or more to one side play fully on that side.
func (a *AudioSystem) SetListener(listener func() (cp.Vector, bool), panRange float64) {
	a.listener = listener
	a.panRange = panRange
}

func (a *AudioSystem) Update(_ *ecs.World, _ float64) {
	if a.bus == nil || a.sounds == nil {
		return
	}

	for _, evt := range a.bus.Sfx {
		a.sounds.Play(evt.Asset, volumeOrDefault(evt.Volume), evt.Pitch, evt.Pan)
	}
	for _, evt := range a.bus.SfxAt {
		a.sounds.Play(evt.Asset, volumeOrDefault(evt.Volume), evt.Pitch, a.pan(evt.X))
	}
	for _, evt := range a.bus.Loops {
		switch evt := evt.(type) {
		case sound.StartLoop:
			a.sounds.StartLoop(evt.Asset, evt.LoopKey(), volumeOrDefault(evt.Volume), evt.Pitch, evt.Pan)
		case sound.StopLoop:
			a.sounds.StopLoop(evt.LoopKey())
		}
	}

	a.bus.Clear()
}

func (a *AudioSystem) pan(x float64) float64 {
	if a.listener == nil || a.panRange <= 0 {
		return 0
	}
	pos, ok := a.listener()
	if !ok {
		return 0
	}
	return cp.Clamp((x-pos.X)/a.panRange, -1, 1)
}

func volumeOrDefault(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
