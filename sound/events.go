package sound

// PlaySfx is a one-shot global sound.
type PlaySfx struct {
	Asset  string
	Volume float64
	Pitch  float64
	Pan    float64
}

// PlaySfxAt is a one-shot sound emitted from a world position.
type PlaySfxAt struct {
	Asset  string
	X, Y   float64
	Volume float64
	Pitch  float64
}

// StartLoop starts a looping sound under Key, or under Asset when Key is
// empty.
type StartLoop struct {
	Asset  string
	Key    string
	Volume float64
	Pitch  float64
	Pan    float64
}

func (e StartLoop) LoopKey() string {
	if e.Key == "" {
		return e.Asset
	}
	return e.Key
}

// StopLoop stops the loop started under the same key.
type StopLoop struct {
	Key   string
	Asset string
}

func (e StopLoop) LoopKey() string {
	if e.Key == "" {
		return e.Asset
	}
	return e.Key
}

// Bus buffers sound requests made during a frame. The audio system drains
// it once per frame. Loops holds StartLoop and StopLoop values in publish
// order so a stop followed by a restart of the same key leaves it playing.
type Bus struct {
	Sfx   []PlaySfx
	SfxAt []PlaySfxAt
	Loops []any
}

func NewBus() *Bus {
	return &Bus{
		Sfx:   make([]PlaySfx, 0, 64),
		SfxAt: make([]PlaySfxAt, 0, 16),
		Loops: make([]any, 0, 8),
	}
}

func (b *Bus) PublishSfx(evt PlaySfx) {
	b.Sfx = append(b.Sfx, evt)
}

func (b *Bus) PublishSfxAt(evt PlaySfxAt) {
	b.SfxAt = append(b.SfxAt, evt)
}

func (b *Bus) PublishStartLoop(evt StartLoop) {
	b.Loops = append(b.Loops, evt)
}

func (b *Bus) PublishStopLoop(evt StopLoop) {
	b.Loops = append(b.Loops, evt)
}

// Starts returns the pending loop starts in publish order.
func (b *Bus) Starts() []StartLoop {
	var out []StartLoop
	for _, evt := range b.Loops {
		if start, ok := evt.(StartLoop); ok {
			out = append(out, start)
		}
	}
	return out
}

// Stops returns the pending loop stops in publish order.
func (b *Bus) Stops() []StopLoop {
	var out []StopLoop
	for _, evt := range b.Loops {
		if stop, ok := evt.(StopLoop); ok {
			out = append(out, stop)
		}
	}
	return out
}

// Len returns the number of pending events.
func (b *Bus) Len() int {
	return len(b.Sfx) + len(b.SfxAt) + len(b.Loops)
}

func (b *Bus) Clear() {
	b.Sfx = b.Sfx[:0]
	b.SfxAt = b.SfxAt[:0]
	clear(b.Loops)
	b.Loops = b.Loops[:0]
}
