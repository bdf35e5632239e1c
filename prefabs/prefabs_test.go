package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedPrefabs(t *testing.T) {
	tests := []struct {
		file       string
		wantName   string
		components []string
	}{
		{"player.yaml", "player", []string{"player_tag", "transform", "velocity", "facing", "sprite", "animation", "inventory"}},
		{"prefabs/camera.yaml", "camera", []string{"camera_tag", "transform", "camera"}},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name != tc.wantName {
				t.Fatalf("name = %q, want %q", spec.Name, tc.wantName)
			}
			for _, c := range tc.components {
				if _, ok := spec.Components[c]; !ok {
					t.Fatalf("missing component %q", c)
				}
			}
		})
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadEntityBuildSpec("nope.yaml"); err == nil {
		t.Fatal("expected an error for a missing prefab")
	}
}

func TestDecodePlayerAnimation(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	anim, err := DecodeComponentSpec[AnimationComponentSpec](spec.Components["animation"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(anim.Clips) != 8 {
		t.Fatalf("clips = %d, want 8", len(anim.Clips))
	}
	if walk := anim.Clips["walkLeft"]; walk.FrameCount != 4 || walk.FrameDuration != 0.12 {
		t.Fatalf("walkLeft = %+v", walk)
	}
	if idle := anim.Clips["idleDown"]; idle.FrameCount != 1 || idle.FrameDuration != 0.2 {
		t.Fatalf("idleDown = %+v", idle)
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[TransformComponentSpec](nil)
	if err != nil || got != (TransformComponentSpec{}) {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 255, G: 128, A: 255}, false},
		{`"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{`"#fff"`, nil, true},
		{`"#gg0000"`, nil, true},
		{`[1, 2]`, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && c.Color != tc.want {
				t.Fatalf("color = %v, want %v", c.Color, tc.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		want   ChangeKind
		wantOK bool
	}{
		{"prefabs/player.yaml", PrefabChange, true},
		{"prefabs/x.YML", PrefabChange, true},
		{"content/items.json", ContentChange, true},
		{"assets/player.png", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := classify(tc.path)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("classify = %v %v, want %v %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
