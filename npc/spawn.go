package npc

import (
	"strings"

	"github.com/jakecoffman/cp"
)

// SpawnData is the on-disk shape of npc_spawns.json.
type SpawnData struct {
	Spawns map[string]*MapSpawnData `json:"Spawns"`
}

type MapSpawnData struct {
	MapID string      `json:"MapId"`
	Npcs  []SpawnRule `json:"Npcs"`
}

type SpawnRule struct {
	NpcID      string         `json:"NpcId"`
	SpawnPoint cp.Vector      `json:"SpawnPoint"`
	Conditions SpawnCondition `json:"Conditions"`
}

type SpawnCondition struct {
	RequiredFlags  []string `json:"RequiredFlags"`
	ForbiddenFlags []string `json:"ForbiddenFlags"`
	TimeOfDay      string   `json:"TimeOfDay"`
	QuestStage     string   `json:"QuestStage"`
	MinPlayerLevel int      `json:"MinPlayerLevel"`
}

// WorldState is what spawn conditions are checked against.
type WorldState struct {
	Flag        func(name string) bool
	TimeOfDay   string
	QuestStage  string
	PlayerLevel int
}

// Allows reports whether a rule with these conditions may spawn. Time of day
// and quest stage only constrain when both sides are set.
func (c SpawnCondition) Allows(ws WorldState) bool {
	flag := ws.Flag
	if flag == nil {
		flag = func(string) bool { return false }
	}
	for _, f := range c.RequiredFlags {
		if !flag(f) {
			return false
		}
	}
	for _, f := range c.ForbiddenFlags {
		if flag(f) {
			return false
		}
	}
	if c.TimeOfDay != "" && ws.TimeOfDay != "" && !strings.EqualFold(c.TimeOfDay, ws.TimeOfDay) {
		return false
	}
	if c.QuestStage != "" && ws.QuestStage != "" && c.QuestStage != ws.QuestStage {
		return false
	}
	if c.MinPlayerLevel > 0 && ws.PlayerLevel < c.MinPlayerLevel {
		return false
	}
	return true
}
