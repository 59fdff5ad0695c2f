package diff

// ChanResult holds a single diff result.
type ChanResult[T any] struct {
	// D indicates whether the item is NEW (only in stream B) or OLD (only in stream A)
	D Delta
	// V contains the item that differs between streams
	V T
}

// ResultChan creates a channel-based result processing system.
// It returns a ResultFunc that can be passed to Generic and a channel for consuming the
// results in a separate goroutine, so the diff runs in one goroutine while results are
// processed in another.
//
// The caller is responsible for closing the returned channel when the diff returns.
func ResultChan[T any]() (ResultFunc[T], chan *ChanResult[T]) {
	c := make(chan *ChanResult[T], 1)
	f := func(d Delta, v T) error {
		c <- &ChanResult[T]{D: d, V: v}
		return nil
	}
	return f, c
}
