package diff

import "fmt"

// Delta represents the type of difference found when comparing two sorted streams.
// It indicates whether an item is unique to the first stream (OLD) or second stream (NEW).
type Delta int

const (
	// NEW indicates an item that exists only in the second stream (B).
	// This represents a "new" or "added" item when comparing A to B.
	NEW Delta = iota // +

	// OLD indicates an item that exists only in the first stream (A).
	// This represents an "old" or "removed" item when comparing A to B.
	OLD // -
)

func (d Delta) String() string {
	switch d {
	case NEW:
		return ">"
	case OLD:
		return "<"
	default:
		return "?"
	}
}

// Source is a sorted stream that is read one item at a time.
// Next returns io.EOF once the stream is exhausted. *extsort.Iterator satisfies Source.
type Source[T any] interface {
	Next() (T, error)
}

// CompareFunc returns a negative integer if a orders before b, zero if they are equal,
// and a positive integer if a orders after b.
type CompareFunc[T any] func(a, b T) int

// ResultFunc is called once for each item that appears in only one of the two streams.
// If the function returns an error, the diff operation will be terminated.
type ResultFunc[T any] func(Delta, T) error

// StringResultFunc is the ResultFunc used by Strings.
type StringResultFunc func(Delta, string) error

// Result contains statistical information about the differences between two sorted streams.
// It provides counts of items that are unique to each stream as well as common items.
type Result struct {
	// ExtraA is the count of items that exist only in stream A (OLD items)
	ExtraA uint64

	// ExtraB is the count of items that exist only in stream B (NEW items)
	ExtraB uint64

	// TotalA is the total count of items processed from stream A
	TotalA uint64

	// TotalB is the total count of items processed from stream B
	TotalB uint64

	// Common is the count of items that exist in both streams
	Common uint64
}

func (r *Result) String() string {
	return fmt.Sprintf("A: %d/%d\tB: %d/%d\tC: %d", r.ExtraA, r.TotalA, r.ExtraB, r.TotalB, r.Common)
}
