package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/anewworld/assets"
	"github.com/milk9111/anewworld/camera"
	"github.com/milk9111/anewworld/collision"
	"github.com/milk9111/anewworld/config"
	"github.com/milk9111/anewworld/content"
	"github.com/milk9111/anewworld/dialogue"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/ecs/entity"
	"github.com/milk9111/anewworld/ecs/render"
	"github.com/milk9111/anewworld/ecs/system"
	"github.com/milk9111/anewworld/gamestate"
	"github.com/milk9111/anewworld/input"
	"github.com/milk9111/anewworld/input/keyboard"
	"github.com/milk9111/anewworld/items"
	"github.com/milk9111/anewworld/levels"
	"github.com/milk9111/anewworld/logger"
	"github.com/milk9111/anewworld/npc"
	"github.com/milk9111/anewworld/prefabs"
	"github.com/milk9111/anewworld/sound"
)

const (
	// listenerPanRange is how far to the side a sound has to be to play
	// entirely in one ear.
	listenerPanRange = 240.0
	playerNameVar    = "playerName"
	questVar         = "quest"
	prefabDir        = "prefabs"
)

type Game struct {
	cfg   *config.Config
	dt    float64
	mapID string
	quit  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	state     *gamestate.Service
	actions   *input.ActionService

	registry  *items.Registry
	dialogues *dialogue.Service
	npcs      *npc.Database
	spawner   *entity.NPCSpawner
	level     *levels.Level

	cam            *camera.Service
	sounds         *sound.Service
	dialogueSys    *system.DialogueSystem
	interactionSys *system.InteractionSystem
	cameraSys      *system.CameraSystem
	footsteps      *system.FootstepSystem

	images   *render.ImageCache
	renderer *render.WorldRenderer
	hud      *render.HUD
	pauseUI  *ebitenui.UI
	watcher  *prefabs.Watcher
}

func NewGame(cfg *config.Config) (*Game, error) {
	bundle, err := content.LoadAll(context.Background(), content.Source(cfg.Game.ContentDir))
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		dt:        1 / float64(max(cfg.Game.TPS, 1)),
		mapID:     cfg.Game.StartMap,
		world:     ecs.NewWorld(),
		state:     gamestate.NewService(),
		registry:  items.NewRegistry(bundle.Items),
		dialogues: dialogue.NewService(),
		npcs:      npc.NewDatabase(),
	}
	g.dialogues.Load(bundle.Dialogues)
	g.dialogues.Context.SetVar(playerNameVar, cfg.Game.PlayerName)
	g.npcs.LoadDefinitions(bundle.Npcs)
	g.npcs.LoadSpawnRules(bundle.Spawns)

	if unknown := keyboard.UnknownKeys(bundle.Bindings); len(unknown) > 0 {
		logger.Log.WithField("keys", unknown).Warn("bindings reference unknown keys")
	}
	g.actions = input.NewActionService(bundle.Bindings, keyboard.New())

	g.level, err = levels.LoadLevel(g.mapID)
	if err != nil {
		return nil, err
	}

	player, err := entity.NewPlayerAt(g.world, g.level.Spawn.X, g.level.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}
	camEntity, err := entity.NewCameraAt(g.world, g.level.Spawn.X, g.level.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("spawn camera: %w", err)
	}

	zoom := cfg.Window.Zoom
	if c, ok := ecs.Get(g.world, camEntity, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	g.cam = camera.NewService(float64(cfg.Window.Width), float64(cfg.Window.Height), g.level.PixelWidth(), g.level.PixelHeight(), zoom)

	inventory := items.NewService(g.registry)
	itemFactory := entity.NewWorldItemFactory(g.registry)
	g.spawner = entity.NewNPCSpawner(g.npcs)

	bus := sound.NewBus()
	g.sounds = sound.NewService(assets.NewAudioBackend(), cfg.Audio.MasterVolume)

	rng := rand.New(rand.NewPCG(uint64(cfg.Game.Seed), uint64(cfg.Game.Seed)))

	g.dialogueSys = system.NewDialogueSystem(g.dialogues, g.actions, bus, cfg.Dialogue.CharsPerSecond)
	g.interactionSys = system.NewInteractionSystem(g.actions)
	g.cameraSys = system.NewCameraSystem(g.cam, g.playing)
	g.footsteps = system.NewFootstepSystem(bus)
	audioSys := system.NewAudioSystem(g.sounds, bus)
	audioSys.SetListener(g.listener, listenerPanRange)

	g.state.OnChange(func(_, to gamestate.State) {
		if to != gamestate.Playing {
			g.footsteps.Stop()
		}
	})

	playing := g.playing
	unpaused := func() bool { return !g.state.Is(gamestate.Paused) }
	g.scheduler = ecs.NewScheduler(
		ecs.RunIf(playing, system.NewPlayerInputSystem(g.actions)),
		ecs.RunIf(playing, system.NewCollisionSystem(collision.NewGrid(g.level), cfg.Collision.SlideFactor)),
		ecs.RunIf(playing, system.NewMovementSystem()),
		ecs.RunIf(playing, system.NewNPCMovementSystem(rng)),
		ecs.RunIf(playing, system.NewFacingSystem()),
		ecs.RunIf(playing, g.interactionSys),
		ecs.RunIf(playing, system.NewWorldItemPickupSystem(inventory, bus)),
		ecs.RunIf(playing, system.NewNPCInteractionSystem(g.dialogueSys)),
		ecs.RunIf(playing, system.NewPlayerInventoryInputSystem(g.actions, inventory, itemFactory, bus)),
		ecs.RunIf(playing, system.NewInventorySystem(inventory)),
		ecs.RunIf(playing, system.NewDroppedItemPhysicsSystem()),
		ecs.RunIf(playing, system.NewAnimationStateSystem()),
		ecs.RunIf(playing, system.NewAnimationSystem()),
		ecs.RunIf(playing, g.footsteps),
		ecs.SystemFunc(g.syncInventoryFlags),
		ecs.RunIf(unpaused, g.dialogueSys),
		ecs.SystemFunc(g.syncDialogueState),
		ecs.RunIf(unpaused, system.NewNPCBrainSystem(rng)),
		system.NewTileAnimationSystem(g.level),
		g.cameraSys,
		audioSys,
	)

	spawned := entity.LoadLevelToWorld(g.world, g.level, itemFactory)
	npcs := g.spawner.Spawn(g.world, g.mapID, g.worldState())
	logger.Log.WithFields(logrus.Fields{
		"map":     g.mapID,
		"player":  player,
		"objects": spawned,
		"npcs":    npcs,
	}).Info("map loaded")

	g.images, err = render.NewImageCache(render.LoadImage)
	if err != nil {
		return nil, err
	}
	g.renderer = render.NewWorldRenderer(g.images, g.cam, g.level)
	g.hud = render.NewHUD(g.images, g.cam, g.registry, g.interactionSys, g.dialogueSys)
	g.pauseUI = NewPauseUI(g)
	g.watcher = newWatcher(prefabDir, cfg.Game.ContentDir)

	return g, nil
}

// newWatcher watches the directories that exist on disk. Hot reload is
// skipped when there are none.
func newWatcher(dirs ...string) *prefabs.Watcher {
	var existing []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		logger.Log.WithError(err).Warn("hot reload disabled")
		return nil
	}
	logger.Log.WithField("dirs", existing).Info("watching for changes")
	return w
}

func (g *Game) playing() bool {
	return g.state.Is(gamestate.Playing)
}

func (g *Game) listener() (cp.Vector, bool) {
	player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(g.world, player, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position(), true
}

func (g *Game) worldState() npc.WorldState {
	quest, _ := g.dialogues.Context.Var(questVar)
	return npc.WorldState{
		Flag:       g.dialogues.Context.Flag,
		QuestStage: quest,
	}
}

// syncInventoryFlags exposes the player's items to dialogue conditions as
// has_<item> flags.
func (g *Game) syncInventoryFlags(w *ecs.World, _ float64) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind())
	if !ok {
		return
	}
	for _, id := range g.registry.IDs() {
		stack, held := inv.Stacks[id]
		g.dialogues.Context.SetFlag("has_"+id, held && stack.Quantity > 0)
	}
}

// syncDialogueState mirrors the dialogue system into the game state. Ending
// a conversation may change flags spawn rules depend on.
func (g *Game) syncDialogueState(w *ecs.World, _ float64) {
	talking := g.dialogueSys.Active()
	switch {
	case talking && g.state.Is(gamestate.Playing):
		g.fire(gamestate.EventStartDialogue)
	case !talking && g.state.Is(gamestate.Dialogue):
		g.fire(gamestate.EventEndDialogue)
		if n := g.spawner.Spawn(w, g.mapID, g.worldState()); n > 0 {
			logger.Log.WithField("npcs", n).Info("new npcs arrived")
		}
	}
}

func (g *Game) fire(event string) {
	if err := g.state.Fire(event); err != nil {
		logger.Log.WithError(err).WithField("event", event).Warn("game state transition failed")
	}
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.actions.Update()

	if g.actions.JustPressed(input.ActionPause) {
		if err := g.state.TogglePause(); err != nil {
			logger.Log.WithError(err).Warn("toggle pause failed")
		}
	}
	g.hud.Debug = g.cfg.Game.Debug && g.actions.OverlayActive()

	g.scheduler.Update(g.world, g.dt)
	if g.state.Is(gamestate.Paused) {
		g.pauseUI.Update()
	}
	g.actions.EndFrame()

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world)
	g.hud.Draw(screen, g.world, g.state.Current())
	if g.state.Is(gamestate.Paused) {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Resume leaves the pause menu.
func (g *Game) Resume() {
	if g.state.Is(gamestate.Paused) {
		g.fire(gamestate.EventResume)
	}
}

// Quit ends the game after the current frame.
func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			logger.Log.WithError(err).Warn("close watcher")
		}
	}
	g.sounds.StopAll()
	g.images.Close()
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				logger.Log.WithError(err).Warn("file watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	log := logger.Log.WithField("path", change.Path)
	var err error
	switch change.Kind {
	case prefabs.ContentChange:
		err = g.reloadContent()
	case prefabs.PrefabChange:
		err = g.reloadPrefabs()
	}
	if err != nil {
		log.WithError(err).Warn("hot reload failed, keeping previous data")
		return
	}
	log.Info("hot reloaded")
}

// reloadContent swaps in freshly loaded content and respawns the map's NPCs
// against the new rules.
func (g *Game) reloadContent() error {
	bundle, err := content.LoadAll(context.Background(), content.Source(g.cfg.Game.ContentDir))
	if err != nil {
		return err
	}
	g.registry.Replace(bundle.Items)
	g.dialogues.Load(bundle.Dialogues)
	g.npcs.LoadDefinitions(bundle.Npcs)
	g.npcs.LoadSpawnRules(bundle.Spawns)
	g.actions.SetBindings(bundle.Bindings)
	if g.dialogueSys.Active() {
		return nil
	}
	g.spawner.Refresh(g.world, g.mapID, g.worldState())
	return nil
}

// reloadPrefabs rebuilds the player and camera from their prefabs, keeping
// the player's position and inventory.
func (g *Game) reloadPrefabs() error {
	var errs []error

	if old, ok := ecs.First(g.world, component.PlayerTagComponent.Kind()); ok {
		pos := cp.Vector{X: g.level.Spawn.X, Y: g.level.Spawn.Y}
		if t, ok := ecs.Get(g.world, old, component.TransformComponent.Kind()); ok {
			pos = t.Position()
		}
		inv, hasInv := ecs.Get(g.world, old, component.InventoryComponent.Kind())

		player, err := entity.NewPlayerAt(g.world, pos.X, pos.Y)
		if err != nil {
			errs = append(errs, fmt.Errorf("player: %w", err))
		} else {
			if hasInv {
				errs = append(errs, ecs.Add(g.world, player, component.InventoryComponent.Kind(), inv))
			}
			ecs.DestroyEntity(g.world, old)
		}
	}

	if old, ok := ecs.First(g.world, component.CameraTagComponent.Kind()); ok {
		pos := g.cam.Position()
		camEntity, err := entity.NewCameraAt(g.world, pos.X, pos.Y)
		if err != nil {
			errs = append(errs, fmt.Errorf("camera: %w", err))
		} else {
			if c, ok := ecs.Get(g.world, camEntity, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
				g.cam.Zoom = c.Zoom
			}
			ecs.DestroyEntity(g.world, old)
		}
	}

	g.cameraSys.Reset()
	return errors.Join(errs...)
}
