package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/anewworld/assets"
	"github.com/milk9111/anewworld/logger"
)

// ImageLoader resolves an image key such as "player.png" to an image.
type ImageLoader func(key string) (*ebiten.Image, error)

// ImageCache caches decoded images by key. Keys that fail to load are logged
// once and then reported missing without retrying until Invalidate.
type ImageCache struct {
	load  ImageLoader
	cache *ristretto.Cache[string, *ebiten.Image]

	mu      sync.Mutex
	missing map[string]struct{}
}

func NewImageCache(load ImageLoader) (*ImageCache, error) {
	if load == nil {
		load = LoadImage
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *ebiten.Image]{
		NumCounters: 10000,
		MaxCost:     256 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("render: image cache: %w", err)
	}
	return &ImageCache{load: load, cache: cache, missing: make(map[string]struct{})}, nil
}

// Get returns the image for key, loading it on first use.
func (c *ImageCache) Get(key string) (*ebiten.Image, bool) {
	if c == nil || key == "" {
		return nil, false
	}
	if img, ok := c.cache.Get(key); ok {
		return img, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, gone := c.missing[key]; gone {
		return nil, false
	}
	img, err := c.load(key)
	if err != nil || img == nil {
		c.missing[key] = struct{}{}
		logger.Log.WithError(err).WithField("image", key).Warn("render: image unavailable, skipping")
		return nil, false
	}
	b := img.Bounds()
	c.cache.Set(key, img, int64(max(b.Dx()*b.Dy()*4, 1)))
	c.cache.Wait()
	return img, true
}

// Invalidate drops every cached and missing entry so changed files on disk
// are picked up.
func (c *ImageCache) Invalidate() {
	if c == nil {
		return
	}
	c.cache.Clear()
	c.mu.Lock()
	clear(c.missing)
	c.mu.Unlock()
}

func (c *ImageCache) Close() {
	if c != nil {
		c.cache.Close()
	}
}

// LoadImage reads key from an assets/ directory on disk when present and
// falls back to the embedded assets.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	for _, p := range []string{filepath.Join("assets", filepath.FromSlash(key)), key} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
			return ebiten.NewImageFromImage(im), nil
		}
	}
	img, err := assets.LoadImage(key)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", key, err)
	}
	return img, nil
}
