package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab file: a name plus raw component specs keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type NameComponentSpec struct {
	Value string `yaml:"value"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type FacingComponentSpec struct {
	Facing string `yaml:"facing"`
}

type SpriteComponentSpec struct {
	Image     string  `yaml:"image"`
	UseSource bool    `yaml:"use_source"`
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationClipComponentSpec struct {
	Row           int     `yaml:"row"`
	ColStart      int     `yaml:"col_start"`
	FrameCount    int     `yaml:"frame_count"`
	FrameDuration float64 `yaml:"frame_duration"`
	Loop          *bool   `yaml:"loop"`
}

type AnimationComponentSpec struct {
	FrameW  int                                   `yaml:"frame_w"`
	FrameH  int                                   `yaml:"frame_h"`
	Current string                                `yaml:"current"`
	Clips   map[string]AnimationClipComponentSpec `yaml:"clips"`
}

type InventoryComponentSpec struct {
	Items map[string]int `yaml:"items"`
}

type CameraComponentSpec struct {
	TargetName string     `yaml:"target_name"`
	Zoom       float64    `yaml:"zoom"`
	Smoothness float64    `yaml:"smoothness"`
	Background *YAMLColor `yaml:"background"`
}

type InteractableComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Prompt string  `yaml:"prompt"`
}
