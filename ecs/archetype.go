package ecs

import (
	"iter"
	"reflect"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity that has exactly the same set of component
// types. Slots are reused after deletion; slot 0 is reserved.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	index   map[reflect.Type]int

	alive []bool
	free  []uint32
	count int

	refs *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		index:   make(map[reflect.Type]int, len(types)),
		alive:   []bool{false},
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
		a.index[typ] = i
	}
	return a
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	return a.count
}

// HasComponent reports whether entities of this archetype carry compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	_, ok := a.index[compType]
	return ok
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot := range a.slots() {
			if !yield(NewEntityId(a.id, slot)) {
				return
			}
		}
	}
}

func (a *Archetype) slots() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for slot := 1; slot < len(a.alive); slot++ {
			if a.alive[slot] && !yield(uint32(slot)) {
				return
			}
		}
	}
}

func (a *Archetype) has(slot uint32) bool {
	return slot > 0 && int(slot) < len(a.alive) && a.alive[slot]
}

func (a *Archetype) allocate() uint32 {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		return slot
	}
	a.alive = append(a.alive, false)
	return uint32(len(a.alive) - 1)
}

// insert stores one value per component type and returns the slot used.
// The caller guarantees components cover exactly a.types.
func (a *Archetype) insert(components []any) uint32 {
	slot := a.allocate()
	for _, comp := range components {
		idx, ok := a.index[componentType(comp)]
		if !ok {
			continue
		}
		a.columns[idx].set(slot, comp)
	}
	a.alive[slot] = true
	a.count++
	return slot
}

func (a *Archetype) component(slot uint32, compType reflect.Type) any {
	if !a.has(slot) {
		return nil
	}
	idx, ok := a.index[compType]
	if !ok {
		return nil
	}
	return a.columns[idx].ptr(slot)
}

// values copies out every component of slot, in a.types order.
func (a *Archetype) values(slot uint32) []any {
	out := make([]any, len(a.columns))
	for i, col := range a.columns {
		out[i] = reflect.ValueOf(col.ptr(slot)).Elem().Interface()
	}
	return out
}

// remove frees slot. When invalidate is set any EntityRef pointing at the
// entity is zeroed; moves between archetypes pass false and re-home the ref.
func (a *Archetype) remove(slot uint32, invalidate bool) {
	if !a.has(slot) {
		return
	}
	id := NewEntityId(a.id, slot)
	if invalidate {
		if ptr, ok := a.refs.Get(id); ok {
			if ref := ptr.Value(); ref != nil {
				ref.Id = 0
				ref.Archetype = nil
			}
		}
	}
	a.refs.Del(id)

	for _, col := range a.columns {
		col.clear(slot)
	}
	a.alive[slot] = false
	a.free = append(a.free, slot)
	a.count--
}
