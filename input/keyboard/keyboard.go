// Package keyboard reads physical key state from ebiten for the action
// service.
package keyboard

import (
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/anewworld/input"
	"github.com/milk9111/anewworld/logger"
)

// Source implements input.KeySource over ebiten's keyboard state. Key names
// are ebiten key names such as "W", "ArrowUp" or "Digit1".
type Source struct {
	mu      sync.Mutex
	keys    map[string]ebiten.Key
	unknown map[string]struct{}
}

var _ input.KeySource = (*Source)(nil)

func New() *Source {
	return &Source{
		keys:    make(map[string]ebiten.Key),
		unknown: make(map[string]struct{}),
	}
}

func (s *Source) IsKeyDown(name string) bool {
	key, ok := s.resolve(name)
	return ok && ebiten.IsKeyPressed(key)
}

func (s *Source) resolve(name string) (ebiten.Key, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key, ok := s.keys[name]; ok {
		return key, true
	}
	if _, bad := s.unknown[name]; bad {
		return 0, false
	}
	key, ok := ParseKey(name)
	if !ok {
		s.unknown[name] = struct{}{}
		logger.Log.WithField("key", name).Warn("keyboard: unknown key name in bindings")
		return 0, false
	}
	s.keys[name] = key
	return key, true
}

// ParseKey converts an ebiten key name to its key.
func ParseKey(name string) (ebiten.Key, bool) {
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err != nil {
		return 0, false
	}
	return key, true
}

// UnknownKeys lists the key names in bindings that ebiten does not know,
// sorted and without duplicates.
func UnknownKeys(bindings input.Bindings) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, keys := range bindings {
		for _, name := range keys {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			if _, ok := ParseKey(name); !ok {
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}
