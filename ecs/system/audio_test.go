package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"go.uber.org/mock/gomock"

	"github.com/milk9111/anewworld/camera"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/levels"
	"github.com/milk9111/anewworld/mocks"
	"github.com/milk9111/anewworld/sound"
)

func TestAudioSystemDrainsBus(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	voice := mocks.NewMockVoice(ctrl)

	gomock.InOrder(
		backend.EXPECT().PlayOnce("pickup", 0.5, 1.0, 0.0).Return(nil),
		backend.EXPECT().PlayOnce("drop", 1.0, 1.0, 0.0).Return(nil),
	)
	backend.EXPECT().PlayOnce("splash", 1.0, 1.0, 0.5).Return(nil)
	backend.EXPECT().NewLoop("footsteps").Return(voice, nil)
	voice.EXPECT().SetVolume(0.5)
	voice.EXPECT().Play()
	voice.EXPECT().Stop()

	bus := sound.NewBus()
	bus.PublishSfx(sound.PlaySfx{Asset: "pickup", Volume: 0.5, Pitch: 1})
	bus.PublishSfx(sound.PlaySfx{Asset: "drop", Pitch: 1})
	bus.PublishSfxAt(sound.PlaySfxAt{Asset: "splash", X: 150, Pitch: 1})
	bus.PublishStartLoop(sound.StartLoop{Asset: "footsteps", Key: "walk", Volume: 0.5, Pitch: 1})
	bus.PublishStopLoop(sound.StopLoop{Key: "walk"})

	sys := NewAudioSystem(sound.NewService(backend, 1), bus)
	sys.SetListener(func() (cp.Vector, bool) { return cp.Vector{X: 100}, true }, 100)
	sys.Update(ecs.NewWorld(), frameDT)

	if bus.Len() != 0 {
		t.Fatalf("bus should be empty after draining, len=%d", bus.Len())
	}
}

func TestAudioSystemPan(t *testing.T) {
	tests := []struct {
		name     string
		listener func() (cp.Vector, bool)
		panRange float64
		x        float64
		want     float64
	}{
		{"no_listener", nil, 100, 500, 0},
		{"listener_missing", func() (cp.Vector, bool) { return cp.Vector{}, false }, 100, 500, 0},
		{"left", func() (cp.Vector, bool) { return cp.Vector{X: 100}, true }, 100, 50, -0.5},
		{"clamped_right", func() (cp.Vector, bool) { return cp.Vector{X: 100}, true }, 100, 900, 1},
		{"zero_range", func() (cp.Vector, bool) { return cp.Vector{X: 100}, true }, 0, 900, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sys := NewAudioSystem(nil, nil)
			sys.SetListener(tc.listener, tc.panRange)
			if got := sys.pan(tc.x); !near(got, tc.want) {
				t.Fatalf("pan = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFootstepSystem(t *testing.T) {
	w := ecs.NewWorld()
	player, _ := spawnPlayer(t, w, 0, 0)
	bus := sound.NewBus()
	sys := NewFootstepSystem(bus)

	steps := []struct {
		vx         float64
		wantStarts int
		wantStops  int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{1, 1, 0},
		{0, 1, 1},
		{0, 1, 1},
		{1, 2, 1},
	}
	for i, step := range steps {
		velocityOf(w, player).X = step.vx
		sys.Update(w, frameDT)
		if len(bus.Starts()) != step.wantStarts || len(bus.Stops()) != step.wantStops {
			t.Fatalf("step %d: starts=%d stops=%d, want %d %d", i, len(bus.Starts()), len(bus.Stops()), step.wantStarts, step.wantStops)
		}
	}

	sys.Stop()
	sys.Stop()
	if len(bus.Stops()) != 2 {
		t.Fatalf("Stop should publish once, stops=%d", len(bus.Stops()))
	}
}

func TestCameraSystem(t *testing.T) {
	tests := []struct {
		name       string
		follow     bool
		smoothness float64
		target     cp.Vector
		want       cp.Vector
	}{
		{"follows_exactly", true, 0, cp.Vector{X: 300, Y: 200}, cp.Vector{X: 300, Y: 200}},
		{"smoothed", true, 0.5, cp.Vector{X: 300, Y: 200}, cp.Vector{X: 230, Y: 145}},
		{"clamped", true, 0, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 80, Y: 45}},
		{"not_following", false, 0, cp.Vector{X: 300, Y: 200}, cp.Vector{X: 160, Y: 90}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			spawnPlayer(t, w, tc.target.X, tc.target.Y)
			camEntity := ecs.CreateEntity(w)
			camTransform := &component.Transform{}
			addComponent(t, w, camEntity, component.TransformComponent, camTransform)
			addComponent(t, w, camEntity, component.CameraComponent, &component.Camera{TargetName: "player", Zoom: 2, Smoothness: tc.smoothness})

			cam := camera.NewService(320, 180, 640, 480, 2)
			NewCameraSystem(cam, func() bool { return tc.follow }).Update(w, frameDT)

			got := cam.Position()
			if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
				t.Fatalf("camera = %v, want %v", got, tc.want)
			}
			if camTransform.Position() != got {
				t.Fatalf("camera entity = %v, want %v", camTransform.Position(), got)
			}
		})
	}
}

func TestCameraSystemSyncsRebuiltCameraWhilePaused(t *testing.T) {
	w := ecs.NewWorld()
	spawnPlayer(t, w, 300, 200)
	old := ecs.CreateEntity(w)
	addComponent(t, w, old, component.TransformComponent, &component.Transform{})
	addComponent(t, w, old, component.CameraComponent, &component.Camera{TargetName: "player"})

	cam := camera.NewService(320, 180, 640, 480, 2)
	playing := true
	sys := NewCameraSystem(cam, func() bool { return playing })
	sys.Update(w, frameDT)

	playing = false
	ecs.DestroyEntity(w, old)
	rebuilt := ecs.CreateEntity(w)
	rebuiltTransform := &component.Transform{}
	addComponent(t, w, rebuilt, component.TransformComponent, rebuiltTransform)
	addComponent(t, w, rebuilt, component.CameraComponent, &component.Camera{TargetName: "player"})
	sys.Reset()
	sys.Update(w, frameDT)

	if got := rebuiltTransform.Position(); got != cam.Position() || got != (cp.Vector{X: 300, Y: 200}) {
		t.Fatalf("rebuilt camera entity = %v, want %v", got, cam.Position())
	}
}

func TestCameraSystemFollowsNamedTarget(t *testing.T) {
	w := ecs.NewWorld()
	spawnPlayer(t, w, 300, 200)
	guard := mover(t, w, 400, 300, 0, 0)
	addComponent(t, w, guard, component.NameComponent, &component.Name{Value: "guard"})
	camEntity := ecs.CreateEntity(w)
	addComponent(t, w, camEntity, component.CameraComponent, &component.Camera{TargetName: "guard"})

	cam := camera.NewService(320, 180, 640, 480, 2)
	sys := NewCameraSystem(cam, nil)
	sys.Update(w, frameDT)

	if got := cam.Position(); got != (cp.Vector{X: 400, Y: 300}) {
		t.Fatalf("camera = %v, want guard position", got)
	}

	ecs.DestroyEntity(w, guard)
	sys.Reset()
	sys.Update(w, frameDT)
	if got := cam.Position(); got != (cp.Vector{X: 400, Y: 300}) {
		t.Fatalf("camera should hold when the target is gone, got %v", got)
	}
}

func TestAdvanceTile(t *testing.T) {
	frames := []component.TileFrame{{GID: 5, Duration: 0.3}, {GID: 6, Duration: 0}, {GID: 7, Duration: 0.3}}

	tests := []struct {
		name    string
		elapsed float64
		dt      float64
		want    uint32
	}{
		{"first", 0, 0.1, 5},
		{"skips_zero_duration", 0, 0.35, 7},
		{"wraps", 0.5, 0.2, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tile := &component.AnimatedTile{Frames: frames, Elapsed: tc.elapsed}
			got, ok := advanceTile(tile, tc.dt)
			if !ok || got != tc.want {
				t.Fatalf("gid = %d (%v), want %d", got, ok, tc.want)
			}
		})
	}

	if _, ok := advanceTile(&component.AnimatedTile{Frames: []component.TileFrame{{GID: 1}}}, 1); ok {
		t.Fatalf("frames without duration should not animate")
	}
}

func TestTileAnimationSystemWritesLevel(t *testing.T) {
	lvl := &levels.Level{
		Width: 2, Height: 1, TileWidth: 16, TileHeight: 16,
		Layers: []levels.Layer{{Name: "Ground", Data: []uint32{1, 5}}},
	}
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tile := &component.AnimatedTile{Layer: "ground", Col: 1, Row: 0, Current: 5, Frames: []component.TileFrame{{GID: 5, Duration: 0.3}, {GID: 6, Duration: 0.3}}}
	addComponent(t, w, e, component.AnimatedTileComponent, tile)

	sys := NewTileAnimationSystem(lvl)
	sys.Update(w, 0.1)
	if got := lvl.TileAt(&lvl.Layers[0], 1, 0); got != 5 {
		t.Fatalf("gid = %d, want 5", got)
	}
	sys.Update(w, 0.3)
	if got := lvl.TileAt(&lvl.Layers[0], 1, 0); got != 6 || tile.Current != 6 {
		t.Fatalf("gid = %d current = %d, want 6", got, tile.Current)
	}
}
