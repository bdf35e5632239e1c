package sound

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/anewworld/logger"
)

//go:generate go tool mockgen -destination=../mocks/sound_mock.go -package=mocks . Backend,Voice

// Voice is one playing instance of a sound.
type Voice interface {
	IsPlaying() bool
	Play()
	Stop()
	SetVolume(volume float64)
}

// Backend decodes and plays sound assets.
type Backend interface {
	PlayOnce(asset string, volume, pitch, pan float64) error
	NewLoop(asset string) (Voice, error)
}

// Service plays one-shots and keeps looping voices by logical key.
type Service struct {
	backend Backend
	master  float64
	loops   map[string]Voice
}

func NewService(backend Backend, master float64) *Service {
	if master <= 0 {
		master = 1
	}
	return &Service{
		backend: backend,
		master:  master,
		loops:   make(map[string]Voice),
	}
}

func (s *Service) Play(asset string, volume, pitch, pan float64) {
	if s.backend == nil || asset == "" {
		return
	}
	if err := s.backend.PlayOnce(asset, volume*s.master, pitch, pan); err != nil {
		logger.Log.WithError(err).WithField("asset", asset).Warn("sound: play failed")
	}
}

// StartLoop starts asset looping under key. A loop already registered under
// key is only restarted if it stopped playing.
func (s *Service) StartLoop(asset, key string, volume, pitch, pan float64) {
	if key == "" {
		key = asset
	}
	if v, ok := s.loops[key]; ok {
		if !v.IsPlaying() {
			v.SetVolume(volume * s.master)
			v.Play()
		}
		return
	}
	if s.backend == nil {
		return
	}
	v, err := s.backend.NewLoop(asset)
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"asset": asset, "key": key}).Warn("sound: loop failed")
		return
	}
	v.SetVolume(volume * s.master)
	v.Play()
	s.loops[key] = v
}

// StopLoop stops and forgets the loop under key. Unknown keys are ignored.
func (s *Service) StopLoop(key string) {
	v, ok := s.loops[key]
	if !ok {
		return
	}
	v.Stop()
	delete(s.loops, key)
}

func (s *Service) IsLooping(key string) bool {
	_, ok := s.loops[key]
	return ok
}

// StopAll stops every loop, e.g. on map change or shutdown.
func (s *Service) StopAll() {
	for key, v := range s.loops {
		v.Stop()
		delete(s.loops, key)
	}
}
