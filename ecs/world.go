package ecs

import (
	"fmt"

	"github.com/milk9111/camtransition/ecs/component"
)

// World owns entities, component stores, events and the system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler Scheduler
	events    EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func (w *World) store(kind component.Kind, create bool) *SparseSet {
	s := w.stores[kind.ID()]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[kind.ID()] = s
	}
	return s
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	w.scheduler.Add(s)
}

// Update runs every system once. Events pushed during the previous update
// are dropped first, so they stay readable between updates.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.events.flush()
	w.scheduler.Update(w)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities lists the live entities in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

func addComponent(w *World, e Entity, kind component.Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	w.store(kind, true).Set(e, value)
	return nil
}

func getComponent(w *World, e Entity, kind component.Kind) (any, bool) {
	if w == nil || !kind.Valid() {
		return nil, false
	}
	s := w.store(kind, false)
	if !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

func removeComponent(w *World, e Entity, kind component.Kind) bool {
	if w == nil || !kind.Valid() {
		return false
	}
	s := w.store(kind, false)
	if !s.Has(e) {
		return false
	}
	return s.Remove(e)
}

// Query returns the live entities that have every kind.
func Query(w *World, kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, len(kinds))
	for i, k := range kinds {
		sets[i] = w.store(k, false)
	}
	return intersect(sets...)
}
