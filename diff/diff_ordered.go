package diff

import (
	"cmp"
)

// Ordered performs a diff operation on two sorted sources of cmp.Ordered types
// using cmp.Compare for ordering. This is a wrapper around Generic.
func Ordered[T cmp.Ordered](a, b Source[T], resultFunc ResultFunc[T]) (Result, error) {
	return Generic(a, b, cmp.Compare[T], resultFunc)
}

// Strings performs a diff operation on two sources of strings sorted lexicographically.
func Strings(a, b Source[string], resultFunc StringResultFunc) (Result, error) {
	if resultFunc == nil {
		return Result{}, errNilArgument
	}
	return Ordered(a, b, ResultFunc[string](resultFunc))
}
