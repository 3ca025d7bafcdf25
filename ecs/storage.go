package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"unsafe"
	"weak"
)

// Storage owns all archetypes and singletons of one game world.
type Storage struct {
	archetypes map[uint32]*Archetype
	order      []*Archetype
	registry   *ComponentRegistry

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns the archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; the value is copied into storage.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	types := componentTypes(components)
	archetype := s.archetypeFor(types)
	slot := archetype.insert(components)
	return NewEntityId(archetype.id, slot)
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.has(id.Index())
}

// Delete removes the entity and invalidates refs to it. It returns false if
// the entity was not alive.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.has(id.Index()) {
		return false
	}
	archetype.remove(id.Index(), true)
	return true
}

// AddComponent attaches component to the entity, moving it to a new
// archetype. If the entity already has a component of that type the value
// is overwritten in place. The returned id replaces the old one.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.has(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if idx, exists := old.index[compType]; exists {
		old.columns[idx].set(id.Index(), component)
		return id
	}

	types := append(slices.Clone(old.types), compType)
	sortTypes(types)
	values := append(old.values(id.Index()), component)
	return s.move(id, old, types, values)
}

// RemoveComponent detaches compType from the entity. Removing the last
// component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.has(id.Index()) {
		return 0
	}
	idx, exists := old.index[compType]
	if !exists {
		return id
	}
	if len(old.types) == 1 {
		old.remove(id.Index(), true)
		return 0
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	values := old.values(id.Index())
	kept := make([]any, 0, len(values)-1)
	for i, typ := range old.types {
		if i == idx {
			continue
		}
		types = append(types, typ)
		kept = append(kept, values[i])
	}
	return s.move(id, old, types, kept)
}

func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, values []any) EntityId {
	target := s.archetypeFor(types)
	slot := target.insert(values)
	newId := NewEntityId(target.id, slot)

	if ptr, ok := old.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = target
			target.refs.Put(newId, ptr)
		}
	}
	old.remove(id.Index(), false)
	return newId
}

// GetComponent returns a pointer to the component (as any) or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.has(id.Index()) {
		return false
	}
	return archetype.HasComponent(compType)
}

// CreateEntityRef returns the shared ref for id, creating it if needed.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.has(id.Index()) {
		return nil
	}
	if ptr, ok := archetype.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			return ref
		}
	}
	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id of the referenced entity.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting it.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value in place so cached Singleton pointers stay valid.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("cannot add nil singleton")
	}
	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}
	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
	s.singletonOrder = append(s.singletonOrder, typ)
}

// ReadSingleton points *target at the stored singleton. target must be a
// pointer to a pointer, e.g. var cfg *Config; storage.ReadSingleton(&cfg).
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry := s.getSingletonEntry(v.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	if archetype, ok := s.archetypes[id]; ok {
		if !slices.Equal(archetype.types, types) {
			panic(fmt.Sprintf("archetype hash collision between %v and %v", archetype.types, types))
		}
		return archetype
	}
	archetype := newArchetype(id, types, s.registry)
	s.archetypes[id] = archetype
	s.order = append(s.order, archetype)
	return archetype
}

// componentType returns the value type of a component passed by value or
// by pointer.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("component cannot be nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		if slices.Contains(types, t) {
			panic("duplicate component type " + t.String())
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		switch {
		case typeKey(a) < typeKey(b):
			return -1
		case typeKey(a) > typeKey(b):
			return 1
		}
		return 0
	})
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

// hashTypes is FNV-1a over the qualified names of a sorted type list.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		for _, b := range []byte(typeKey(t)) {
			h ^= uint32(b)
			h *= prime
		}
		h ^= 0xff
		h *= prime
	}
	if h == 0 {
		h = 1
	}
	return h
}

// ComponentReader is implemented by Storage and by anything that can look up
// a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
