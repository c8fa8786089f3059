package pkg

import "iter"

// Convert returns an iterator over v that yields each element converted by fn.
func Convert[T, U any](fn func(T) U, v ...T) iter.Seq[U] {
	return func(yield func(U) bool) {
		for _, x := range v {
			if !yield(fn(x)) {
				return
			}
		}
	}
}

// AnyValues returns the given values of type T as a sequence of any.
// It is the usual bridge from typed slices (command-line words, parsed
// records) into variadic logging calls.
func AnyValues[T any](v ...T) iter.Seq[any] {
	return Convert(func(x T) any { return x }, v...)
}
