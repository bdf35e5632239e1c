package assets

import (
	"encoding/binary"
	"testing"
)

func stereo(frames ...[2]int16) []byte {
	out := make([]byte, len(frames)*bytesPerFrame)
	for i, f := range frames {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(f[0]))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(f[1]))
	}
	return out
}

func frame(pcm []byte, i int) [2]int16 {
	return [2]int16{
		int16(binary.LittleEndian.Uint16(pcm[i*4:])),
		int16(binary.LittleEndian.Uint16(pcm[i*4+2:])),
	}
}

func TestShape(t *testing.T) {
	pcm := stereo([2]int16{1000, 1000}, [2]int16{2000, 2000}, [2]int16{3000, 3000}, [2]int16{4000, 4000})

	t.Run("unchanged", func(t *testing.T) {
		if got := shape(pcm, 1, 0); &got[0] != &pcm[0] {
			t.Fatal("neutral pitch and pan should return the input")
		}
	})

	t.Run("pitch_up", func(t *testing.T) {
		got := shape(pcm, 2, 0)
		if len(got) != 2*bytesPerFrame {
			t.Fatalf("len = %d, want %d", len(got), 2*bytesPerFrame)
		}
		if f := frame(got, 1); f != [2]int16{3000, 3000} {
			t.Fatalf("frame 1 = %v", f)
		}
	})

	t.Run("pitch_down", func(t *testing.T) {
		got := shape(pcm, 0.5, 0)
		if len(got) != 8*bytesPerFrame {
			t.Fatalf("len = %d", len(got))
		}
		if f := frame(got, 3); f != [2]int16{2000, 2000} {
			t.Fatalf("frame 3 = %v", f)
		}
	})

	tests := []struct {
		name        string
		pan         float64
		left, right int16
	}{
		{"hard_left", -1, 1414, 0},
		{"hard_right", 1, 0, 1414},
		{"clamped", 5, 0, 1414},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := frame(shape(pcm, 1, tc.pan), 0)
			if f[0] != tc.left || f[1] != tc.right {
				t.Fatalf("frame 0 = %v, want [%d %d]", f, tc.left, tc.right)
			}
		})
	}
}

func TestClampSample(t *testing.T) {
	if clampSample(40000) != 32767 || clampSample(-40000) != -32768 || clampSample(12.6) != 13 {
		t.Fatal("clampSample out of range")
	}
}

func TestSoundPath(t *testing.T) {
	for in, want := range map[string]string{"pickup": "pickup.wav", "drop.wav": "drop.wav"} {
		if got := soundPath(in); got != want {
			t.Fatalf("soundPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmbeddedAssets(t *testing.T) {
	for _, name := range []string{"tiles.png", "player.png", "npc_elder.png", "items/apple.png", "assets/items/coin.png", "footsteps.wav"} {
		if _, err := LoadFile(name); err != nil {
			t.Fatalf("LoadFile(%q): %v", name, err)
		}
	}
}
