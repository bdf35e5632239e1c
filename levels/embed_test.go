package levels

import "testing"

func TestLoadLevelEmbedded(t *testing.T) {
	lvl, err := LoadLevel("village")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lvl.Width != 40 || lvl.Height != 30 {
		t.Fatalf("size = %dx%d, want 40x30", lvl.Width, lvl.Height)
	}
	if _, ok := lvl.Layer("collisions"); !ok {
		t.Fatalf("expected a Collisions layer")
	}
	if lvl.PixelWidth() != 640 || lvl.PixelHeight() != 480 {
		t.Fatalf("pixel size = %vx%v", lvl.PixelWidth(), lvl.PixelHeight())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid", `{"name":"a","width":2,"height":1,"tile_width":16,"tile_height":16,"layers":[{"name":"Ground","data":[1,2]}]}`, false},
		{"zero_size", `{"name":"a","width":0,"height":1,"tile_width":16,"tile_height":16}`, true},
		{"zero_tile", `{"name":"a","width":1,"height":1,"tile_width":0,"tile_height":16}`, true},
		{"malformed", `{"name":`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Parse([]byte(tc.data))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if lvl.Tileset.FirstGID != 1 {
				t.Fatalf("FirstGID = %d, want default 1", lvl.Tileset.FirstGID)
			}
		})
	}
}

func TestTileAtMasksFlipFlags(t *testing.T) {
	lvl := &Level{Width: 2, Height: 2, TileWidth: 16, TileHeight: 16}
	layer := &Layer{Name: "Ground", Data: []uint32{0x80000003, 0, 0, 7}}

	tests := []struct {
		name     string
		col, row int
		want     uint32
	}{
		{"flipped", 0, 0, 3},
		{"empty", 1, 0, 0},
		{"plain", 1, 1, 7},
		{"out_of_range", 2, 0, 0},
		{"negative", -1, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lvl.TileAt(layer, tc.col, tc.row); got != tc.want {
				t.Fatalf("TileAt(%d,%d) = %d, want %d", tc.col, tc.row, got, tc.want)
			}
		})
	}

	lvl.SetTile(layer, 1, 0, 5)
	if got := lvl.TileAt(layer, 1, 0); got != 5 {
		t.Fatalf("after SetTile got %d, want 5", got)
	}
}

func TestObjectProps(t *testing.T) {
	obj := Object{Props: map[string]any{"item": "apple", "quantity": float64(3)}}
	if obj.StringProp("item") != "apple" {
		t.Fatalf("StringProp item = %q", obj.StringProp("item"))
	}
	if obj.IntProp("quantity", 1) != 3 {
		t.Fatalf("IntProp quantity = %d", obj.IntProp("quantity", 1))
	}
	if obj.IntProp("missing", 1) != 1 {
		t.Fatalf("IntProp missing should fall back")
	}
}
