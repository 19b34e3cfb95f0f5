// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"fmt"
)

// Placeholder is rendered for variables that were never set.
const Placeholder = "--"

type (
	// VarInt64 is a type alias for Variable[int64]. Providers use it for unix epochs that may be absent.
	VarInt64 = Variable[int64]

	// VarFloat64 is a type alias for Variable[float64], representing a float64 value with initialization tracking.
	VarFloat64 = Variable[float64]
)

// Variable represents a generic type wrapper that holds a value and tracks its initialization state.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable creates and returns a new Variable instance initialized with the provided value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// NonZero returns a set Variable for any non-zero value and an unset one otherwise.
// Provider payloads encode "no value" as 0 for epochs, so this is the usual constructor.
func NonZero[T comparable](value T) Variable[T] {
	var zero T
	if value == zero {
		return Variable[T]{}
	}
	return NewVariable(value)
}

// Reset clears the value of the Variable and marks it as uninitialized.
func (v *Variable[T]) Reset() {
	var newVal T
	v.value = newVal
	v.isset = false
}

// Value retrieves the current value stored in the Variable.
func (v Variable[T]) Value() T {
	return v.value
}

// Set assigns the provided value to the Variable and marks it as initialized.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// IsSet returns true if the Variable has been initialized with a value, otherwise false.
func (v Variable[T]) IsSet() bool {
	return v.isset
}

// String returns a string representation of the Variable, or Placeholder if it is unset.
func (v Variable[T]) String() string {
	if !v.isset {
		return Placeholder
	}
	return fmt.Sprint(v.value)
}
