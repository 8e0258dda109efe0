// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

/*
Package pointer provides utilities for working with pointers in Go.

It utilizes generics to simplify the creation and dereferencing of pointers,
avoiding boilerplate around optional (nullable) entity fields.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a primitive value to a struct field
// that expects a pointer (e.g. pointer.To("quoc-tu-giam")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
