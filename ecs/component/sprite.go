package component

import "image"

// Sprite references an image by asset key. The renderer resolves the key
// through its image cache, so components stay free of GPU handles.
type Sprite struct {
	Image     string
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
	Hidden    bool
}

var SpriteComponent = NewComponent[Sprite]()

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
