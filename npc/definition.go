package npc

import (
	"image"
	"sync"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/anewworld/ecs/component"
)

// Data is the on-disk shape of npcs.json.
type Data struct {
	Npcs map[string]*Definition `json:"Npcs"`
}

type ClipData struct {
	Row           int     `json:"Row"`
	Frames        []int   `json:"Frames"`
	FrameDuration float64 `json:"FrameDuration"`
}

type Definition struct {
	ID              string              `json:"Id"`
	DisplayName     string              `json:"DisplayName"`
	Description     string              `json:"Description"`
	SpriteSheet     string              `json:"SpriteSheet"`
	SpriteWidth     int                 `json:"SpriteWidth"`
	SpriteHeight    int                 `json:"SpriteHeight"`
	DefaultBehavior string              `json:"DefaultBehavior"`
	DialogueID      string              `json:"DialogueId"`
	InteractRadius  float64             `json:"InteractRadius"`
	AnimationClips  map[string]ClipData `json:"AnimationClips"`
	PatrolWaypoints []cp.Vector         `json:"PatrolWaypoints"`
	PatrolLoop      *bool               `json:"PatrolLoop"`
	PatrolWaitTime  float64             `json:"PatrolWaitTime"`
	WanderRadius    float64             `json:"WanderRadius"`
	WanderWaitTime  float64             `json:"WanderWaitTime"`
}

// applyDefaults fills the zero values content authors usually omit.
func (d *Definition) applyDefaults() {
	if d.SpriteWidth <= 0 {
		d.SpriteWidth = 64
	}
	if d.SpriteHeight <= 0 {
		d.SpriteHeight = 64
	}
	if d.DefaultBehavior == "" {
		d.DefaultBehavior = "Idle"
	}
	if d.InteractRadius <= 0 {
		d.InteractRadius = 32
	}
	if d.PatrolLoop == nil {
		loop := true
		d.PatrolLoop = &loop
	}
	if d.PatrolWaitTime <= 0 {
		d.PatrolWaitTime = 2
	}
	if d.WanderRadius <= 0 {
		d.WanderRadius = 50
	}
	if d.WanderWaitTime <= 0 {
		d.WanderWaitTime = 3
	}
	for name, clip := range d.AnimationClips {
		if clip.FrameDuration <= 0 {
			clip.FrameDuration = 0.1
			d.AnimationClips[name] = clip
		}
	}
}

func (d *Definition) Loops() bool {
	return d.PatrolLoop == nil || *d.PatrolLoop
}

// BuildAnimationClips converts the definition's named clips into looping
// clips keyed by action and facing. Unknown clip names and clips without
// frames are skipped.
func BuildAnimationClips(d *Definition) map[component.AnimationKey]*component.AnimationClip {
	clips := make(map[component.AnimationKey]*component.AnimationClip)
	if d == nil {
		return clips
	}
	w, h := d.SpriteWidth, d.SpriteHeight
	for name, data := range d.AnimationClips {
		key, ok := component.ParseAnimationKey(name)
		if !ok || len(data.Frames) == 0 {
			continue
		}
		frames := make([]image.Rectangle, 0, len(data.Frames))
		for _, col := range data.Frames {
			frames = append(frames, image.Rect(col*w, data.Row*h, col*w+w, data.Row*h+h))
		}
		clips[key] = &component.AnimationClip{
			Frames:        frames,
			FrameDuration: data.FrameDuration,
			Loop:          true,
		}
	}
	return clips
}

// Database holds NPC definitions and per-map spawn rules.
type Database struct {
	mu     sync.RWMutex
	defs   map[string]*Definition
	spawns map[string]*MapSpawnData
}

func NewDatabase() *Database {
	return &Database{
		defs:   make(map[string]*Definition),
		spawns: make(map[string]*MapSpawnData),
	}
}

func (db *Database) LoadDefinitions(data Data) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for id, def := range data.Npcs {
		if id == "" || def == nil {
			continue
		}
		def.ID = id
		def.applyDefaults()
		db.defs[id] = def
	}
}

func (db *Database) LoadSpawnRules(data SpawnData) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for mapID, spawns := range data.Spawns {
		if mapID == "" || spawns == nil {
			continue
		}
		spawns.MapID = mapID
		db.spawns[mapID] = spawns
	}
}

func (db *Database) Definition(id string) (*Definition, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	d, ok := db.defs[id]
	return d, ok
}

func (db *Database) SpawnRules(mapID string) (*MapSpawnData, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	s, ok := db.spawns[mapID]
	return s, ok
}
