package ecs

import "github.com/milk9111/anewworld/ecs/component"

type eventQueue interface {
	clear()
}

// EventQueue buffers events of one type for the current frame. Every
// consumer reads the same slice; the scheduler clears it after the last
// system runs, so an event is seen for exactly one frame.
type EventQueue[T any] struct {
	items []T
}

// Push adds an event.
func (q *EventQueue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Events returns the pending events without consuming them.
func (q *EventQueue[T]) Events() []T {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue[T]) clear() {
	q.items = q.items[:0]
}

// Events returns the world queue for kind, creating it on first use.
func Events[T any](w *World, kind component.EventKind[T]) *EventQueue[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if existing, ok := w.queues[kind.ID()]; ok {
		q, _ := existing.(*EventQueue[T])
		return q
	}
	q := &EventQueue[T]{}
	w.queues[kind.ID()] = q
	return q
}

// Emit pushes evt onto the queue for kind.
func Emit[T any](w *World, kind component.EventKind[T], evt T) {
	Events(w, kind).Push(evt)
}
