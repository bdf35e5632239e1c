package entity

import (
	"fmt"
	"image"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/logger"
	"github.com/milk9111/anewworld/npc"
)

const (
	// NPCRenderLayer matches the player so NPCs and the player sort by Y.
	NPCRenderLayer = 10
	NPCPrompt      = "Talk"
)

// NPCSpawner creates the NPCs a map's spawn rules allow and remembers which
// rules it has already spawned.
type NPCSpawner struct {
	db      *npc.Database
	spawned map[string]struct{}
}

func NewNPCSpawner(db *npc.Database) *NPCSpawner {
	return &NPCSpawner{db: db, spawned: make(map[string]struct{})}
}

// SpawnKey identifies one spawn rule on one map.
func SpawnKey(mapID, npcID string, at cp.Vector) string {
	return fmt.Sprintf("%s_%s_%v_%v", mapID, npcID, at.X, at.Y)
}

// Spawn creates every NPC of mapID whose conditions pass and which is not
// already spawned. It returns the number created.
func (s *NPCSpawner) Spawn(w *ecs.World, mapID string, ws npc.WorldState) int {
	rules, ok := s.db.SpawnRules(mapID)
	if !ok {
		return 0
	}

	count := 0
	for _, rule := range rules.Npcs {
		if !rule.Conditions.Allows(ws) {
			continue
		}
		def, ok := s.db.Definition(rule.NpcID)
		if !ok {
			logger.Log.WithFields(logrus.Fields{"map": mapID, "npc": rule.NpcID}).Warn("npc spawner: unknown definition")
			continue
		}
		key := SpawnKey(mapID, rule.NpcID, rule.SpawnPoint)
		if _, done := s.spawned[key]; done {
			continue
		}
		e, err := SpawnNPC(w, def, rule.SpawnPoint)
		if err != nil {
			logger.Log.WithError(err).WithField("npc", rule.NpcID).Warn("npc spawner: spawn failed")
			continue
		}
		if data, ok := ecs.Get(w, e, component.NPCDataComponent.Kind()); ok {
			data.SpawnKey = key
		}
		s.spawned[key] = struct{}{}
		count++
	}

	logger.Log.WithFields(logrus.Fields{"map": mapID, "spawned": count}).Debug("spawned npcs")
	return count
}

// Despawn forgets the spawn keys of mapID and destroys every NPC.
func (s *NPCSpawner) Despawn(w *ecs.World, mapID string) int {
	prefix := mapID + "_"
	for key := range s.spawned {
		if strings.HasPrefix(key, prefix) {
			delete(s.spawned, key)
		}
	}

	npcs := ecs.Query(w, component.NPCTagComponent.Kind())
	for _, e := range npcs {
		ecs.DestroyEntity(w, e)
	}
	return len(npcs)
}

// Refresh respawns mapID against the current world state, e.g. after a
// dialogue set a flag a spawn rule depends on.
func (s *NPCSpawner) Refresh(w *ecs.World, mapID string, ws npc.WorldState) int {
	s.Despawn(w, mapID)
	return s.Spawn(w, mapID, ws)
}

// Spawned reports whether the rule behind key is currently spawned.
func (s *NPCSpawner) Spawned(key string) bool {
	_, ok := s.spawned[key]
	return ok
}

// SpawnNPC builds one NPC from its definition. NPCs without a sprite sheet
// spawn without visuals.
func SpawnNPC(w *ecs.World, def *npc.Definition, pos cp.Vector) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	add := func(err error, what string) error {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("npc %s: add %s: %w", def.ID, what, err)
		}
		return nil
	}

	behavior := component.ParseNPCBehavior(def.DefaultBehavior)

	if err := add(ecs.Add(w, e, component.NPCTagComponent.Kind(), &component.NPCTag{}), "tag"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.NPCDataComponent.Kind(), &component.NPCData{
		DefinitionID: def.ID,
		DisplayName:  def.DisplayName,
	}), "data"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: def.DisplayName}), "name"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}), "transform"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}), "velocity"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.FacingComponent.Kind(), &component.FacingDirection{Facing: component.FacingDown}), "facing"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.NPCBrainComponent.Kind(), &component.NPCBrain{
		Current: behavior,
		Default: behavior,
		Saved:   behavior,
	}), "brain"); err != nil {
		return 0, err
	}

	if behavior == component.BehaviorPatrol && len(def.PatrolWaypoints) > 0 {
		waypoints := append([]cp.Vector(nil), def.PatrolWaypoints...)
		if err := add(ecs.Add(w, e, component.PatrolPathComponent.Kind(), &component.PatrolPath{
			Waypoints: waypoints,
			WaitTime:  def.PatrolWaitTime,
			Loop:      def.Loops(),
		}), "patrol path"); err != nil {
			return 0, err
		}
	}
	if behavior == component.BehaviorWander {
		if err := add(ecs.Add(w, e, component.WanderComponent.Kind(), &component.Wander{
			Origin:    pos,
			Radius:    def.WanderRadius,
			Target:    pos,
			WaitTime:  def.WanderWaitTime,
			WaitTimer: def.WanderWaitTime,
		}), "wander"); err != nil {
			return 0, err
		}
	}

	if err := add(ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
		Radius:  def.InteractRadius,
		Prompt:  NPCPrompt,
		Enabled: true,
	}), "interactable"); err != nil {
		return 0, err
	}
	if def.DialogueID != "" {
		if err := add(ecs.Add(w, e, component.DialogueRefComponent.Kind(), &component.DialogueRef{DialogueID: def.DialogueID}), "dialogue ref"); err != nil {
			return 0, err
		}
	}

	if def.SpriteSheet == "" {
		logger.Log.WithField("npc", def.ID).Warn("npc has no sprite sheet")
		return e, nil
	}
	if err := add(ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:     def.SpriteSheet,
		Source:    image.Rect(0, 0, def.SpriteWidth, def.SpriteHeight),
		UseSource: true,
		OriginX:   float64(def.SpriteWidth) / 2,
		OriginY:   float64(def.SpriteHeight) / 2,
	}), "sprite"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: NPCRenderLayer}), "render layer"); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.SpriteAnimatorComponent.Kind(), &component.SpriteAnimator{
		Clips: npc.BuildAnimationClips(def),
		Key:   component.AnimationKey{Action: component.ActionIdle, Facing: component.FacingDown},
	}), "animator"); err != nil {
		return 0, err
	}

	return e, nil
}
