package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldKind uint8

const (
	fieldRequired fieldKind = iota
	fieldOptional
	fieldEntity
)

type viewField struct {
	kind   fieldKind
	typ    reflect.Type
	offset uintptr
}

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct shape. T must be a struct whose
// fields are component pointers; a field of type EntityId (usually embedded)
// receives the entity id. Named pointer fields tagged `ecs:"optional"` are
// set to nil when the entity lacks that component.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	return &View[T]{
		storage: storage,
		fields:  parseViewFields(reflect.TypeFor[T]()),
	}
}

func parseViewFields(structType reflect.Type) []viewField {
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{kind: fieldEntity, offset: field.Offset})
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types or EntityId")
		}

		kind := fieldRequired
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" on named fields is supported)")
			}
			kind = fieldOptional
		}
		fields = append(fields, viewField{
			kind:   kind,
			typ:    field.Type.Elem(),
			offset: field.Offset,
		})
	}
	return fields
}

// matches reports whether the archetype has every required component.
func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.kind == fieldRequired && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) fill(archetype *Archetype, slot uint32, dst *T) bool {
	base := unsafe.Pointer(dst)
	for _, f := range v.fields {
		p := unsafe.Add(base, f.offset)
		if f.kind == fieldEntity {
			*(*EntityId)(p) = NewEntityId(archetype.id, slot)
			continue
		}

		comp := archetype.component(slot, f.typ)
		if comp == nil {
			if f.kind == fieldOptional {
				*(*unsafe.Pointer)(p) = nil
				continue
			}
			return false
		}
		*(*unsafe.Pointer)(p) = pointerOf(comp)
	}
	return true
}

// Fill populates dst for the given entity. It returns false if the entity
// is gone or lacks a required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.has(id.Index()) {
		return false
	}
	return v.fill(archetype, id.Index(), dst)
}

// Get returns a populated view struct for the entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef returns a populated view struct for the entity ref, or nil.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	var result T
	for slot := range archetype.slots() {
		if !v.fill(archetype, slot, &result) {
			continue
		}
		if !yield(NewEntityId(archetype.id, slot), result) {
			return false
		}
	}
	return true
}

// Iter yields every matching entity in archetype creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values yields only the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component pointers in data.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		if f.kind == fieldEntity {
			continue
		}
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if ptr == nil {
			if f.kind == fieldRequired {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Elem().Interface())
	}
	return v.storage.Spawn(components...)
}
