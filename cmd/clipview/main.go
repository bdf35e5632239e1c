// Command clipview previews the animation clips of the player prefab or an
// NPC definition. Tab and the arrow keys step through clips.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/anewworld/camera"
	"github.com/milk9111/anewworld/content"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/ecs/entity"
	"github.com/milk9111/anewworld/ecs/render"
	"github.com/milk9111/anewworld/ecs/system"
	"github.com/milk9111/anewworld/logger"
	"github.com/milk9111/anewworld/npc"
)

const viewSize = 512

type viewer struct {
	world     *ecs.World
	subject   ecs.Entity
	name      string
	keys      []component.AnimationKey
	current   int
	animation *system.AnimationSystem
	renderer  *render.WorldRenderer
	images    *render.ImageCache
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.show(v.current + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.show(v.current - 1)
	}
	v.animation.Update(v.world, 1.0/60)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.renderer.Draw(screen, v.world)
	if len(v.keys) == 0 {
		ebitenutil.DebugPrint(screen, v.name+": no clips")
		return
	}
	anim, _ := ecs.Get(v.world, v.subject, component.SpriteAnimatorComponent.Kind())
	clip := anim.Clip()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %s  frame %d/%d  (%.2fs)\nTab / arrows: next clip",
		v.name, anim.Key, anim.Frame+1, len(clip.Frames), clip.FrameDuration))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

// show switches the subject to clip i, wrapping around.
func (v *viewer) show(i int) {
	if len(v.keys) == 0 {
		return
	}
	v.current = (i%len(v.keys) + len(v.keys)) % len(v.keys)
	if anim, ok := ecs.Get(v.world, v.subject, component.SpriteAnimatorComponent.Kind()); ok {
		anim.Key = v.keys[v.current]
		anim.Frame = 0
		anim.Elapsed = 0
	}
}

// sortedKeys orders clips idle before walk, then by facing.
func sortedKeys(clips map[component.AnimationKey]*component.AnimationClip) []component.AnimationKey {
	keys := make([]component.AnimationKey, 0, len(clips))
	for k := range clips {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Action != keys[j].Action {
			return keys[i].Action < keys[j].Action
		}
		return keys[i].Facing < keys[j].Facing
	})
	return keys
}

func spawnSubject(w *ecs.World, npcID, contentDir string) (ecs.Entity, string, error) {
	if npcID == "" {
		e, err := entity.NewPlayer(w)
		return e, "player", err
	}

	data, err := content.LoadJSON[npc.Data](content.Source(contentDir), content.NpcsFile)
	if err != nil {
		return 0, "", err
	}
	db := npc.NewDatabase()
	db.LoadDefinitions(data)
	def, ok := db.Definition(npcID)
	if !ok {
		return 0, "", fmt.Errorf("unknown npc %q", npcID)
	}
	e, err := entity.SpawnNPC(w, def, cp.Vector{})
	return e, def.DisplayName, err
}

func newViewer(npcID, contentDir string, zoom float64) (*viewer, error) {
	w := ecs.NewWorld()
	subject, name, err := spawnSubject(w, npcID, contentDir)
	if err != nil {
		return nil, err
	}

	images, err := render.NewImageCache(render.LoadImage)
	if err != nil {
		return nil, err
	}
	cam := camera.NewService(viewSize, viewSize, 0, 0, zoom)
	cam.Update(cp.Vector{})

	v := &viewer{
		world:     w,
		subject:   subject,
		name:      name,
		animation: system.NewAnimationSystem(),
		renderer:  render.NewWorldRenderer(images, cam, nil),
		images:    images,
	}
	if anim, ok := ecs.Get(w, subject, component.SpriteAnimatorComponent.Kind()); ok {
		v.keys = sortedKeys(anim.Clips)
	}
	v.show(0)
	return v, nil
}

func main() {
	npcID := flag.String("npc", "", "NPC definition id to preview; empty previews the player prefab")
	contentDir := flag.String("content", "", "directory of content JSON overriding the embedded data")
	zoom := flag.Float64("zoom", 8, "pixel zoom")
	flag.Parse()

	v, err := newViewer(*npcID, *contentDir, *zoom)
	if err != nil {
		logger.Log.WithError(err).Error("clipview")
		os.Exit(1)
	}
	defer v.images.Close()

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Clip Viewer: " + v.name)
	if err := ebiten.RunGame(v); err != nil {
		logger.Log.WithError(err).Error("clipview")
	}
}
