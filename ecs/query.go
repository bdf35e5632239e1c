package ecs

import "github.com/milk9111/anewworld/ecs/component"

// Query returns the live entities carrying kind ordered by slot id. The
// result is a snapshot; callers may mutate the world while walking it.
func Query[T any](w *World, kind component.ComponentKind[T]) []Entity {
	store := storeFor(w, kind, false)
	if store == nil {
		return nil
	}
	return w.liveIDs(store.snapshot())
}

// ForEach visits every entity carrying kind in slot id order. Entities
// destroyed or stripped of the component by an earlier callback are skipped.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range Query(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if storeFor(w, kb, false) == nil {
		return
	}
	for _, e := range Query(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if storeFor(w, kb, false) == nil || storeFor(w, kc, false) == nil {
		return
	}
	for _, e := range Query(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if storeFor(w, kb, false) == nil || storeFor(w, kc, false) == nil || storeFor(w, kd, false) == nil {
		return
	}
	for _, e := range Query(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		d, ok := Get(w, e, kd)
		if !ok {
			continue
		}
		fn(e, a, b, c, d)
	}
}
