// Package diff compares two sorted streams and reports the items that exist in only one of them.
// The streams are pulled one item at a time, so arbitrarily large sorted outputs can be compared
// without holding either in memory.
package diff

import (
	"errors"
	"fmt"
	"io"
)

var errNilArgument = errors.New("diff: arguments must not be nil")

// differ holds the state for one diff between two sorted sources.
type differ[T any] struct {
	a, b       Source[T]
	resultFunc ResultFunc[T]
	compare    CompareFunc[T]
	r          Result
}

// Generic performs a diff of two sorted sources of any type T.
// It compares items from both sources using compareFunc and calls resultFunc for each
// item that exists in only one source.
//
// Returns statistical information about the comparison and the first error returned by a
// source or by resultFunc. Both sources MUST be sorted by compareFunc; this is not validated.
func Generic[T any](a, b Source[T], compareFunc CompareFunc[T], resultFunc ResultFunc[T]) (Result, error) {
	if a == nil || b == nil || compareFunc == nil || resultFunc == nil {
		return Result{}, errNilArgument
	}
	d := differ[T]{a: a, b: b, compare: compareFunc, resultFunc: resultFunc}
	err := d.diff()
	return d.r, err
}

// next reads from src, reporting whether an item was read.
func next[T any](src Source[T], name string) (T, bool, error) {
	v, err := src.Next()
	if err == io.EOF {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("diff: reading %s: %w", name, err)
	}
	return v, true, nil
}

func (d *differ[T]) diff() error {
	dataA, okA, err := next(d.a, "A")
	if err != nil {
		return err
	}
	dataB, okB, err := next(d.b, "B")
	if err != nil {
		return err
	}

	for okA && okB {
		c := d.compare(dataA, dataB)
		switch {
		case c > 0:
			d.r.TotalB++
			d.r.ExtraB++
			if err = d.resultFunc(NEW, dataB); err != nil {
				return err
			}
			if dataB, okB, err = next(d.b, "B"); err != nil {
				return err
			}
		case c < 0:
			d.r.TotalA++
			d.r.ExtraA++
			if err = d.resultFunc(OLD, dataA); err != nil {
				return err
			}
			if dataA, okA, err = next(d.a, "A"); err != nil {
				return err
			}
		default:
			d.r.Common++
			d.r.TotalA++
			d.r.TotalB++
			if dataA, okA, err = next(d.a, "A"); err != nil {
				return err
			}
			if dataB, okB, err = next(d.b, "B"); err != nil {
				return err
			}
		}
	}

	// if only A has data left
	for okA {
		d.r.TotalA++
		d.r.ExtraA++
		if err = d.resultFunc(OLD, dataA); err != nil {
			return err
		}
		if dataA, okA, err = next(d.a, "A"); err != nil {
			return err
		}
	}
	// if only B has data left
	for okB {
		d.r.TotalB++
		d.r.ExtraB++
		if err = d.resultFunc(NEW, dataB); err != nil {
			return err
		}
		if dataB, okB, err = next(d.b, "B"); err != nil {
			return err
		}
	}
	return nil
}

// PrintDiff is a utility function that can be used as a ResultFunc to print
// differences to stdout. It formats each difference with the Delta symbol
// (< for OLD, > for NEW) followed by the item value.
func PrintDiff[T any](d Delta, s T) error {
	_, err := fmt.Printf("%s %v\n", d, s)
	return err
}
