package metar

import "fmt"

// Data holds a value that is present in a report but may have been masked.
//
// A masked slot is written as a run of slashes of the slot's exact width, for
// example "////" for visibility. Data is not a replacement for an optional
// value: groups that may be omitted entirely use pointers or empty slices.
type Data[T any] struct {
	value T
	known bool
}

// Known wraps a measured value.
func Known[T any](v T) Data[T] {
	return Data[T]{value: v, known: true}
}

// Unknown returns a masked value.
func Unknown[T any]() Data[T] {
	return Data[T]{}
}

// IsKnown reports whether the value was measured.
func (d Data[T]) IsKnown() bool { return d.known }

// IsUnknown reports whether the value was masked.
func (d Data[T]) IsUnknown() bool { return !d.known }

// Get returns the value and true, or the zero value and false when masked.
func (d Data[T]) Get() (T, bool) {
	return d.value, d.known
}

// Ptr returns a pointer to a copy of the value, or nil when masked.
func (d Data[T]) Ptr() *T {
	if !d.known {
		return nil
	}
	v := d.value
	return &v
}

// OrElse returns the value, or def when masked.
func (d Data[T]) OrElse(def T) T {
	if !d.known {
		return def
	}
	return d.value
}

// MustGet returns the value and panics when it is masked.
//
// It exists for callers that have already checked IsKnown; do not use it on
// untrusted reports.
func (d Data[T]) MustGet() T {
	if !d.known {
		var zero T
		panic(fmt.Sprintf("metar: MustGet called on unknown %T", zero))
	}
	return d.value
}

// MapData converts the value of a known Data, keeping masked values masked.
func MapData[T, U any](d Data[T], fn func(T) U) Data[U] {
	if !d.known {
		return Unknown[U]()
	}
	return Known(fn(d.value))
}

// render formats a known value with fn or writes a placeholder of width slashes.
func render[T any](d Data[T], width int, fn func(T) string) string {
	if !d.known {
		return placeholder(width)
	}
	return fn(d.value)
}

func placeholder(width int) string {
	const slashes = "//////////"
	if width <= len(slashes) {
		return slashes[:width]
	}
	b := make([]byte, width)
	for i := range b {
		b[i] = '/'
	}
	return string(b)
}
