package npc

import (
	"image"
	"testing"

	"github.com/milk9111/anewworld/ecs/component"
)

func TestBuildAnimationClips(t *testing.T) {
	t.Run("single_clip", func(t *testing.T) {
		def := &Definition{
			SpriteWidth:  64,
			SpriteHeight: 64,
			AnimationClips: map[string]ClipData{
				"idleDown": {Row: 0, Frames: []int{0, 1}, FrameDuration: 0.2},
			},
		}
		clips := BuildAnimationClips(def)
		clip, ok := clips[component.AnimationKey{Action: component.ActionIdle, Facing: component.FacingDown}]
		if !ok {
			t.Fatal("expected idleDown clip")
		}
		if len(clip.Frames) != 2 {
			t.Fatalf("expected 2 frames, got %d", len(clip.Frames))
		}
		if clip.Frames[0] != image.Rect(0, 0, 64, 64) || clip.Frames[1] != image.Rect(64, 0, 128, 64) {
			t.Fatalf("unexpected frames %v", clip.Frames)
		}
		if clip.FrameDuration != 0.2 || !clip.Loop {
			t.Fatalf("expected looping 0.2s clip, got %+v", clip)
		}
	})

	t.Run("rows", func(t *testing.T) {
		def := &Definition{
			SpriteWidth:  32,
			SpriteHeight: 32,
			AnimationClips: map[string]ClipData{
				"idleDown":  {Row: 0, Frames: []int{0}},
				"idleUp":    {Row: 1, Frames: []int{0}},
				"idleLeft":  {Row: 2, Frames: []int{0}},
				"idleRight": {Row: 3, Frames: []int{0}},
			},
		}
		clips := BuildAnimationClips(def)
		if len(clips) != 4 {
			t.Fatalf("expected 4 clips, got %d", len(clips))
		}
		cases := []struct {
			facing component.Facing
			want   image.Rectangle
		}{
			{component.FacingDown, image.Rect(0, 0, 32, 32)},
			{component.FacingUp, image.Rect(0, 32, 32, 64)},
			{component.FacingLeft, image.Rect(0, 64, 32, 96)},
			{component.FacingRight, image.Rect(0, 96, 32, 128)},
		}
		for _, c := range cases {
			got := clips[component.AnimationKey{Action: component.ActionIdle, Facing: c.facing}].Frames[0]
			if got != c.want {
				t.Fatalf("%v: expected %v, got %v", c.facing, c.want, got)
			}
		}
	})

	t.Run("skips_unknown_and_empty", func(t *testing.T) {
		def := &Definition{
			SpriteWidth:  16,
			SpriteHeight: 16,
			AnimationClips: map[string]ClipData{
				"dance":    {Frames: []int{0, 1}},
				"walkDown": {Frames: nil},
			},
		}
		if clips := BuildAnimationClips(def); len(clips) != 0 {
			t.Fatalf("expected no clips, got %d", len(clips))
		}
	})

	t.Run("nil_definition", func(t *testing.T) {
		if clips := BuildAnimationClips(nil); len(clips) != 0 {
			t.Fatal("expected empty map")
		}
	})
}

func TestDatabaseDefaults(t *testing.T) {
	db := NewDatabase()
	db.LoadDefinitions(Data{Npcs: map[string]*Definition{
		"elder": {DisplayName: "Elder", AnimationClips: map[string]ClipData{"idleDown": {Frames: []int{0}}}},
	}})
	def, ok := db.Definition("elder")
	if !ok {
		t.Fatal("expected definition")
	}
	if def.ID != "elder" || def.SpriteWidth != 64 || def.DefaultBehavior != "Idle" || def.InteractRadius != 32 {
		t.Fatalf("defaults not applied: %+v", def)
	}
	if !def.Loops() || def.PatrolWaitTime != 2 || def.WanderRadius != 50 || def.WanderWaitTime != 3 {
		t.Fatalf("movement defaults not applied: %+v", def)
	}
	if def.AnimationClips["idleDown"].FrameDuration != 0.1 {
		t.Fatalf("expected clip default duration 0.1")
	}
}

func TestSpawnConditionAllows(t *testing.T) {
	flags := map[string]bool{"met_elder": true}
	ws := WorldState{Flag: func(f string) bool { return flags[f] }, TimeOfDay: "day", QuestStage: "1", PlayerLevel: 3}

	tests := []struct {
		name string
		cond SpawnCondition
		want bool
	}{
		{"empty", SpawnCondition{}, true},
		{"required_present", SpawnCondition{RequiredFlags: []string{"met_elder"}}, true},
		{"required_missing", SpawnCondition{RequiredFlags: []string{"saved_town"}}, false},
		{"forbidden_present", SpawnCondition{ForbiddenFlags: []string{"met_elder"}}, false},
		{"forbidden_absent", SpawnCondition{ForbiddenFlags: []string{"saved_town"}}, true},
		{"time_matches_case_insensitive", SpawnCondition{TimeOfDay: "Day"}, true},
		{"time_mismatch", SpawnCondition{TimeOfDay: "night"}, false},
		{"quest_mismatch", SpawnCondition{QuestStage: "2"}, false},
		{"level_too_low", SpawnCondition{MinPlayerLevel: 5}, false},
		{"level_ok", SpawnCondition{MinPlayerLevel: 3}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cond.Allows(ws); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
