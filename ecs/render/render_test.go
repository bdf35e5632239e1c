package render

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/anewworld/dialogue"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/levels"
)

func TestTileSource(t *testing.T) {
	ts := levels.Tileset{Image: "tiles.png", Columns: 8, FirstGID: 1}
	tests := []struct {
		name   string
		gid    uint32
		ts     levels.Tileset
		want   image.Rectangle
		wantOK bool
	}{
		{"empty", 0, ts, image.Rectangle{}, false},
		{"first", 1, ts, image.Rect(0, 0, 16, 16), true},
		{"second_row", 9, ts, image.Rect(0, 16, 16, 32), true},
		{"flipped", 0x80000003, ts, image.Rect(32, 0, 48, 16), true},
		{"default_first_gid", 2, levels.Tileset{Columns: 8}, image.Rect(16, 0, 32, 16), true},
		{"below_first_gid", 3, levels.Tileset{Columns: 8, FirstGID: 5}, image.Rectangle{}, false},
		{"no_columns", 3, levels.Tileset{}, image.Rectangle{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tileSource(tc.gid, tc.ts, 16, 16)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("tileSource(%#x) = %v, %v; want %v, %v", tc.gid, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestVisibleTiles(t *testing.T) {
	tests := []struct {
		name                   string
		bb                     cp.BB
		minC, minR, maxC, maxR int
	}{
		{"inside", cp.BB{L: 80, B: 40, R: 240, T: 130}, 4, 1, 16, 9},
		{"clamped_low", cp.BB{L: -50, B: -50, R: 100, T: 60}, 0, 0, 7, 4},
		{"clamped_high", cp.BB{L: 600, B: 440, R: 800, T: 600}, 36, 26, 39, 29},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			minC, minR, maxC, maxR := visibleTiles(tc.bb, 16, 16, 40, 30)
			if minC != tc.minC || minR != tc.minR || maxC != tc.maxC || maxR != tc.maxR {
				t.Fatalf("got %d,%d..%d,%d", minC, minR, maxC, maxR)
			}
		})
	}

	if _, _, maxC, _ := visibleTiles(cp.BB{}, 0, 16, 40, 30); maxC != -1 {
		t.Fatal("zero tile size should yield an empty range")
	}
}

func sprite(t *testing.T, w *ecs.World, img string, layer int, y float64, hidden bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Image: img, Hidden: hidden}); err != nil {
		t.Fatalf("add sprite: %v", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		t.Fatalf("add layer: %v", err)
	}
	return e
}

func TestDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	player := sprite(t, w, "player.png", 10, 50, false)
	item := sprite(t, w, "items/apple.png", 5, 100, false)
	npc := sprite(t, w, "npc_elder.png", 10, 20, false)
	sprite(t, w, "npc_guard.png", 10, 30, true)
	sprite(t, w, "", 10, 40, false)
	twin := sprite(t, w, "npc_villager.png", 10, 50, false)

	want := []ecs.Entity{item, npc, player, twin}
	if got := drawOrder(w); !reflect.DeepEqual(got, want) {
		t.Fatalf("drawOrder = %v, want %v", got, want)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "Hello there", 20, []string{"Hello there"}},
		{"wraps", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"newline", "one\ntwo three", 20, []string{"one", "two three"}},
		{"long_word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty", "", 10, []string{""}},
		{"no_width", "as is", 0, []string{"as is"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrapText(tc.in, tc.width); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("wrapText(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}

func TestSlotRects(t *testing.T) {
	rects := slotRects(3, 640, 360)
	want := []image.Rectangle{
		image.Rect(256, 308, 296, 348),
		image.Rect(300, 308, 340, 348),
		image.Rect(344, 308, 384, 348),
	}
	if !reflect.DeepEqual(rects, want) {
		t.Fatalf("slotRects = %v, want %v", rects, want)
	}
	if slotRects(0, 640, 360) != nil {
		t.Fatal("no slots should lay out nothing")
	}
}

type fakeView struct {
	node     *dialogue.Node
	speaker  ecs.Entity
	selected int
	revealed bool
	blocked  map[int]bool
}

func (v fakeView) Active() bool               { return v.node != nil }
func (v fakeView) Speaker() ecs.Entity        { return v.speaker }
func (v fakeView) Node() *dialogue.Node       { return v.node }
func (v fakeView) VisibleText() string        { return v.node.Text }
func (v fakeView) FullyRevealed() bool        { return v.revealed }
func (v fakeView) Selected() int              { return v.selected }
func (v fakeView) ChoiceAvailable(i int) bool { return !v.blocked[i] }

func TestChoiceLines(t *testing.T) {
	node := &dialogue.Node{Text: "Well?", Choices: []dialogue.Choice{{Text: "Yes"}, {Text: "No"}, {Text: "Maybe"}}}

	lines, enabled := choiceLines(fakeView{node: node, selected: 1, revealed: true, blocked: map[int]bool{2: true}})
	if !reflect.DeepEqual(lines, []string{"  Yes", "> No", "  Maybe"}) {
		t.Fatalf("lines = %q", lines)
	}
	if !reflect.DeepEqual(enabled, []bool{true, true, false}) {
		t.Fatalf("enabled = %v", enabled)
	}

	if lines, _ := choiceLines(fakeView{node: node}); lines != nil {
		t.Fatal("choices should wait for the line to finish")
	}
	if lines, _ := choiceLines(fakeView{node: &dialogue.Node{Text: "Bye"}, revealed: true}); lines != nil {
		t.Fatal("a node without choices has no choice lines")
	}
}

func TestSpeakerName(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: "Elder"}); err != nil {
		t.Fatalf("add name: %v", err)
	}

	if got := speakerName(w, fakeView{node: &dialogue.Node{Speaker: "Old Man"}, speaker: e}); got != "Old Man" {
		t.Fatalf("node speaker = %q", got)
	}
	if got := speakerName(w, fakeView{node: &dialogue.Node{}, speaker: e}); got != "Elder" {
		t.Fatalf("entity name = %q", got)
	}
}

func TestImageCacheMissingLoadsOnce(t *testing.T) {
	calls := 0
	cache, err := NewImageCache(func(string) (*ebiten.Image, error) {
		calls++
		return nil, errors.New("not found")
	})
	if err != nil {
		t.Fatalf("NewImageCache: %v", err)
	}
	defer cache.Close()

	for range 3 {
		if _, ok := cache.Get("missing.png"); ok {
			t.Fatal("missing image reported present")
		}
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}

	cache.Invalidate()
	cache.Get("missing.png")
	if calls != 2 {
		t.Fatalf("loader called %d times after Invalidate, want 2", calls)
	}

	if _, ok := cache.Get(""); ok || calls != 2 {
		t.Fatal("empty key should not load")
	}
}
