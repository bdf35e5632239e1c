package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/milk9111/anewworld/sound"
)

const (
	SampleRate = 44100
	// bytesPerFrame is one 16-bit stereo frame.
	bytesPerFrame = 4
)

// AudioBackend plays embedded sounds through ebiten's audio context. Decoded
// PCM is cached per asset.
type AudioBackend struct {
	ctx *audio.Context

	mu      sync.Mutex
	pcm     map[string][]byte
	playing []*audio.Player
}

var _ sound.Backend = (*AudioBackend)(nil)

func NewAudioBackend() *AudioBackend {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	return &AudioBackend{ctx: ctx, pcm: make(map[string][]byte)}
}

// PlayOnce plays asset to completion. Pitch resamples the clip and pan
// shifts it between the left (-1) and right (1) channels.
func (b *AudioBackend) PlayOnce(asset string, volume, pitch, pan float64) error {
	pcm, err := b.decode(asset)
	if err != nil {
		return err
	}
	p := b.ctx.NewPlayerFromBytes(shape(pcm, pitch, pan))
	p.SetVolume(volume)
	p.Play()

	b.mu.Lock()
	live := b.playing[:0]
	for _, q := range b.playing {
		if q.IsPlaying() {
			live = append(live, q)
		}
	}
	b.playing = append(live, p)
	b.mu.Unlock()
	return nil
}

// NewLoop returns a stopped voice that repeats asset until stopped.
func (b *AudioBackend) NewLoop(asset string) (sound.Voice, error) {
	pcm, err := b.decode(asset)
	if err != nil {
		return nil, err
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	p, err := b.ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("assets: loop %s: %w", asset, err)
	}
	return &loopVoice{player: p}, nil
}

func (b *AudioBackend) decode(asset string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if pcm, ok := b.pcm[asset]; ok {
		return pcm, nil
	}

	path := soundPath(asset)
	data, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: sound %s: %w", asset, err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".wav") {
		return nil, fmt.Errorf("assets: sound %s: unsupported format", asset)
	}
	stream, err := wav.DecodeWithSampleRate(b.ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %s: %w", asset, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("assets: read wav %s: %w", asset, err)
	}
	pcm = pcm[:len(pcm)-len(pcm)%bytesPerFrame]
	b.pcm[asset] = pcm
	return pcm, nil
}

// shape resamples 16-bit stereo pcm by pitch and applies a constant-power
// pan. Pitch 1 and pan 0 return pcm unchanged.
func shape(pcm []byte, pitch, pan float64) []byte {
	if pitch <= 0 {
		pitch = 1
	}
	pan = max(-1, min(1, pan))
	if pitch == 1 && pan == 0 {
		return pcm
	}

	frames := len(pcm) / bytesPerFrame
	outFrames := int(float64(frames) / pitch)
	angle := (pan + 1) * math.Pi / 4
	left, right := math.Cos(angle)*math.Sqrt2, math.Sin(angle)*math.Sqrt2

	out := make([]byte, outFrames*bytesPerFrame)
	for i := 0; i < outFrames; i++ {
		src := int(float64(i)*pitch) * bytesPerFrame
		if src+bytesPerFrame > len(pcm) {
			break
		}
		l := float64(int16(binary.LittleEndian.Uint16(pcm[src:])))
		r := float64(int16(binary.LittleEndian.Uint16(pcm[src+2:])))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], uint16(clampSample(l*left)))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame+2:], uint16(clampSample(r*right)))
	}
	return out
}

func clampSample(v float64) int16 {
	return int16(max(math.MinInt16, min(math.MaxInt16, math.Round(v))))
}

type loopVoice struct {
	player *audio.Player
}

func (v *loopVoice) IsPlaying() bool {
	return v.player.IsPlaying()
}

func (v *loopVoice) Play() {
	v.player.Play()
}

// Stop pauses the loop and rewinds it so the next Play starts over.
func (v *loopVoice) Stop() {
	v.player.Pause()
	_ = v.player.Rewind()
}

func (v *loopVoice) SetVolume(volume float64) {
	v.player.SetVolume(volume)
}
