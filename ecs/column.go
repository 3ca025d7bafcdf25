package ecs

import "reflect"

const pageSize = 64

// column stores the values of one component type for every slot of an
// archetype. Occupancy is owned by the archetype, columns only hold values.
type column interface {
	set(slot uint32, value any) bool
	clear(slot uint32)
	ptr(slot uint32) any
	elemType() reflect.Type
}

type page[T any] [pageSize]T

// typedColumn keeps values in fixed-size pages so that pointers handed out
// by ptr stay valid while the column grows.
type typedColumn[T any] struct {
	pages []*page[T]
}

func (c *typedColumn[T]) set(slot uint32, value any) bool {
	var v T
	switch x := value.(type) {
	case T:
		v = x
	case *T:
		if x == nil {
			return false
		}
		v = *x
	default:
		return false
	}

	p, i := int(slot/pageSize), slot%pageSize
	for len(c.pages) <= p {
		c.pages = append(c.pages, new(page[T]))
	}
	c.pages[p][i] = v
	return true
}

func (c *typedColumn[T]) clear(slot uint32) {
	p, i := int(slot/pageSize), slot%pageSize
	if p >= len(c.pages) {
		return
	}
	var zero T
	c.pages[p][i] = zero
}

func (c *typedColumn[T]) ptr(slot uint32) any {
	p, i := int(slot/pageSize), slot%pageSize
	if p >= len(c.pages) {
		return nil
	}
	return &c.pages[p][i]
}

func (c *typedColumn[T]) elemType() reflect.Type {
	return reflect.TypeFor[T]()
}

// ComponentRegistry records which component types a Storage may hold.
// Each Storage owns a registry so independent worlds never share state.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers T with the registry. Registering the same type
// twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}
