package items

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var ErrUnknownItem = errors.New("items: unknown item")

type Definition struct {
	ID          string             `json:"Id"`
	DisplayName string             `json:"DisplayName"`
	Description string             `json:"Description"`
	Icon        string             `json:"Icon"`
	MaxStack    int                `json:"MaxStack"`
	Properties  map[string]float64 `json:"Properties"`
}

// Catalog is the on-disk shape of items.json.
type Catalog struct {
	Items map[string]Definition `json:"Items"`
}

// Normalize folds an item id to its lookup form. Item ids are
// case-insensitive.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Registry holds item definitions keyed by normalized id. It is safe for
// concurrent use so the content watcher can swap definitions while the game
// runs.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

func NewRegistry(catalog Catalog) *Registry {
	r := &Registry{}
	r.Replace(catalog)
	return r
}

// Replace swaps in a new set of definitions.
func (r *Registry) Replace(catalog Catalog) {
	defs := make(map[string]*Definition, len(catalog.Items))
	for id, def := range catalog.Items {
		key := Normalize(id)
		if key == "" {
			continue
		}
		d := def
		d.ID = key
		if d.MaxStack < 1 {
			d.MaxStack = 1
		}
		if d.DisplayName == "" {
			d.DisplayName = id
		}
		defs[key] = &d
	}
	r.mu.Lock()
	r.defs = defs
	r.mu.Unlock()
}

func (r *Registry) Get(id string) (*Definition, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[Normalize(id)]
	return def, ok
}

// IDs returns every known id in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for id := range r.defs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DisplayName returns the item's display name, falling back to its id.
func (r *Registry) DisplayName(id string) string {
	if def, ok := r.Get(id); ok {
		return def.DisplayName
	}
	return id
}

// PickupPrompt is the interaction prompt shown over a world item.
func PickupPrompt(displayName string, qty int) string {
	if qty > 1 {
		return fmt.Sprintf("Pick up %s x%d", displayName, qty)
	}
	return fmt.Sprintf("Pick up %s", displayName)
}
