package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface{} value. Views use it to
// pull the component pointer out of the `any` returned by a column without
// going through reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func pointerOf(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
