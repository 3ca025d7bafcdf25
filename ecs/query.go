package ecs

import "iter"

// Query is a View whose matching archetypes and results are cached. The
// Scheduler calls Execute before each system that owns the query runs, so
// systems simply range over Iter.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	archetypes []*Archetype
	seen       int

	ids   []EntityId
	items []T
	ready bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. Called by Scheduler.Register.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.seen = 0
	q.ready = false
}

// Execute refreshes the cached results.
func (q *Query[T]) Execute() {
	if q.storage == nil {
		panic("Query.Execute() called on an unbound query")
	}
	if q.seen != len(q.storage.order) {
		for _, archetype := range q.storage.order[q.seen:] {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
		}
		q.seen = len(q.storage.order)
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, archetype := range q.archetypes {
		q.view.iterArchetype(archetype, func(id EntityId, item T) bool {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
			return true
		})
	}
	q.ready = true
}

func (q *Query[T]) mustBeReady() {
	if !q.ready {
		panic("Query used before Query.Execute()")
	}
}

// Iter yields (id, view) pairs captured by the last Execute.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeReady()
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Values yields the view structs captured by the last Execute.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeReady()
	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}

// Len returns the number of results from the last Execute.
func (q *Query[T]) Len() int {
	q.mustBeReady()
	return len(q.items)
}

// First returns the first result, typically for single-entity queries such
// as the player.
func (q *Query[T]) First() (EntityId, T, bool) {
	q.mustBeReady()
	if len(q.items) == 0 {
		var zero T
		return 0, zero, false
	}
	return q.ids[0], q.items[0], true
}
