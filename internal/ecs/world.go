// Package ecs is a small entity table: entity ids, typed sparse-set component
// stores and an explicit parent/child ownership relation.
//
// A World is driven by a single goroutine and does no locking.
package ecs

import (
	"errors"
	"fmt"
)

// ErrNoEntity is returned when an operation names an entity that is not alive.
var ErrNoEntity = errors.New("ecs: no such entity")

// Entity is a unique identifier for an entity. Zero is never allocated.
type Entity uint64

// World owns entity ids and the hierarchy. Entities live as long as the world.
type World struct {
	next     Entity
	alive    map[Entity]struct{}
	order    []Entity // creation order, for deterministic iteration
	parent   map[Entity]Entity
	children map[Entity][]Entity
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		next:     1,
		alive:    make(map[Entity]struct{}),
		parent:   make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
	}
}

// Spawn allocates a new entity with no components.
func (w *World) Spawn() Entity {
	e := w.next
	w.next++
	w.alive[e] = struct{}{}
	w.order = append(w.order, e)
	return e
}

// Alive reports whether e has been spawned by this world.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.alive)
}

// Entities returns all live entities in creation order.
func (w *World) Entities() []Entity {
	result := make([]Entity, len(w.order))
	copy(result, w.order)
	return result
}

// SetParent attaches child to parent. A child has at most one parent;
// attaching it again moves it.
func (w *World) SetParent(child, parent Entity) error {
	if !w.Alive(child) {
		return fmt.Errorf("attach child %d: %w", child, ErrNoEntity)
	}
	if !w.Alive(parent) {
		return fmt.Errorf("attach to parent %d: %w", parent, ErrNoEntity)
	}
	if child == parent {
		return fmt.Errorf("attach %d to itself", child)
	}
	for p, ok := parent, true; ok; p, ok = w.parent[p] {
		if p == child {
			return fmt.Errorf("attach %d under its own descendant %d", child, parent)
		}
	}

	w.detach(child)
	w.parent[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// Parent returns the parent of e, if any.
func (w *World) Parent(e Entity) (Entity, bool) {
	p, ok := w.parent[e]
	return p, ok
}

// Children returns the direct children of e in attach order.
func (w *World) Children(e Entity) []Entity {
	return w.children[e]
}

// detach removes e from its parent's child list.
func (w *World) detach(e Entity) {
	p, ok := w.parent[e]
	if !ok {
		return
	}
	siblings := w.children[p]
	for i, s := range siblings {
		if s == e {
			w.children[p] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	delete(w.parent, e)
}
