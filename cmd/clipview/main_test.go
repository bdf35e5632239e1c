package main

import (
	"testing"

	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
)

func TestViewerCyclesPlayerClips(t *testing.T) {
	v, err := newViewer("", "", 8)
	if err != nil {
		t.Fatalf("newViewer: %v", err)
	}
	defer v.images.Close()

	if len(v.keys) != 8 {
		t.Fatalf("keys = %v", v.keys)
	}
	if v.keys[0] != (component.AnimationKey{Action: component.ActionIdle, Facing: component.FacingDown}) {
		t.Fatalf("first key = %v", v.keys[0])
	}

	tests := []struct {
		name string
		to   int
		want component.AnimationKey
	}{
		{"wrap_back", -1, component.AnimationKey{Action: component.ActionWalk, Facing: component.FacingRight}},
		{"wrap_forward", 9, component.AnimationKey{Action: component.ActionIdle, Facing: component.FacingUp}},
		{"walk", 4, component.AnimationKey{Action: component.ActionWalk, Facing: component.FacingDown}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v.show(tc.to)
			anim, _ := ecs.Get(v.world, v.subject, component.SpriteAnimatorComponent.Kind())
			if anim.Key != tc.want || anim.Frame != 0 {
				t.Fatalf("key = %v frame = %d, want %v", anim.Key, anim.Frame, tc.want)
			}
		})
	}
}

func TestViewerNPC(t *testing.T) {
	v, err := newViewer("guard", "", 4)
	if err != nil {
		t.Fatalf("newViewer: %v", err)
	}
	defer v.images.Close()
	if v.name != "Guard Tobin" || len(v.keys) != 8 {
		t.Fatalf("name = %q keys = %d", v.name, len(v.keys))
	}

	if _, err := newViewer("dragon", "", 4); err == nil {
		t.Fatal("unknown npc should fail")
	}
}
