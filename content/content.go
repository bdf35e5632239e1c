// Package content loads the JSON game data: dialogues, NPCs, spawn rules,
// items and input bindings.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/anewworld/dialogue"
	"github.com/milk9111/anewworld/input"
	"github.com/milk9111/anewworld/items"
	"github.com/milk9111/anewworld/logger"
	"github.com/milk9111/anewworld/npc"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	DialoguesFile = "dialogues.json"
	NpcsFile      = "npcs.json"
	SpawnsFile    = "npc_spawns.json"
	ItemsFile     = "items.json"
	BindingsFile  = "bindings.json"
)

// Bundle is every content file loaded at once.
type Bundle struct {
	Dialogues dialogue.Data
	Npcs      npc.Data
	Spawns    npc.SpawnData
	Items     items.Catalog
	Bindings  input.Bindings
}

// LoadJSON decodes path from fsys into T. A missing or malformed file is an
// error.
func LoadJSON[T any](fsys fs.FS, path string) (T, error) {
	var zero T
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return zero, fmt.Errorf("content: read %s: %w", path, err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("content: unmarshal %s: %w", path, err)
	}
	return out, nil
}

// Embedded returns the content compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic("content: embedded data: " + err.Error())
	}
	return sub
}

// Source prefers dir on disk and falls back to the embedded content when dir
// is empty or missing.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Log.WithField("dir", dir).Debug("content dir not found, using embedded data")
		return Embedded()
	}
	return os.DirFS(dir)
}

// LoadAll reads every content file concurrently. The first failure cancels
// the rest and is returned.
func LoadAll(ctx context.Context, fsys fs.FS) (*Bundle, error) {
	var b Bundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return load(ctx, fsys, DialoguesFile, &b.Dialogues)
	})
	g.Go(func() error {
		return load(ctx, fsys, NpcsFile, &b.Npcs)
	})
	g.Go(func() error {
		return load(ctx, fsys, SpawnsFile, &b.Spawns)
	})
	g.Go(func() error {
		return load(ctx, fsys, ItemsFile, &b.Items)
	})
	g.Go(func() error {
		return load(ctx, fsys, BindingsFile, &b.Bindings)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"dialogues": len(b.Dialogues.Dialogues),
		"npcs":      len(b.Npcs.Npcs),
		"items":     len(b.Items.Items),
		"bindings":  len(b.Bindings),
	}).Info("content loaded")

	return &b, nil
}

func load[T any](ctx context.Context, fsys fs.FS, path string, dst *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v, err := LoadJSON[T](fsys, path)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
