package extsort

import (
	"io"
	"iter"

	"github.com/hashicorp/go-multierror"
	"github.com/lanrat/extsort/v2/queue"
	"github.com/lanrat/extsort/v2/tempfile"
	"github.com/sirupsen/logrus"
)

type iterState int

const (
	streaming iterState = iota
	exhausted
	poisoned
	abandoned
)

// head is the smallest unread record of one chunk.
// The chunk index is only bookkeeping, equal records from different chunks are emitted in no particular order.
type head[E any] struct {
	rec   E
	chunk int
}

// Iterator lazily merges the sorted chunks of one Sort call into a single sorted sequence.
//
// Each call to Next reads at most one record from disk. After the last record, or after
// the first error, Next returns io.EOF forever and the chunk files are removed.
// An Iterator must not be used from multiple goroutines at once.
type Iterator[E any] struct {
	codec    codec[E]
	store    tempfile.Store
	readers  []*tempfile.Reader
	heads    *queue.PriorityQueue[head[E]]
	state    iterState
	emitted  int
	logger   logrus.FieldLogger
	closeErr error
}

// newIterator opens every chunk in store and primes the heap with the first record of each.
// On error everything opened, and the store itself, is released before returning.
func newIterator[E any](c codec[E], store tempfile.Store, chunks int, logger logrus.FieldLogger) (*Iterator[E], error) {
	it := &Iterator[E]{
		codec:   c,
		store:   store,
		readers: make([]*tempfile.Reader, chunks),
		heads: queue.NewPriorityQueueSize(func(a, b head[E]) int {
			return c.compare(a.rec, b.rec)
		}, chunks),
		logger: logger,
	}

	for i := 0; i < chunks; i++ {
		r, err := store.Open(i)
		if err != nil {
			it.finish(poisoned)
			return nil, NewDiskError(err, "open chunk", store.Path())
		}
		it.readers[i] = r
		rec, err := it.read(i)
		if err == io.EOF {
			// an empty chunk contributes nothing
			it.closeReader(i)
			continue
		}
		if err != nil {
			it.finish(poisoned)
			return nil, err
		}
		it.heads.Push(head[E]{rec: rec, chunk: i})
	}

	logger.WithField("action", "extsort_merge").
		WithField("chunks", chunks).
		Debug("merge started")
	return it, nil
}

// Chunks returns the number of chunks being merged.
func (it *Iterator[E]) Chunks() int {
	return len(it.readers)
}

// Next returns the next record in sorted order.
// It returns io.EOF when there are no more records. Any other error is returned exactly once;
// the record it was returned in place of is lost and every later call returns io.EOF.
// Reaching io.EOF therefore does not by itself mean the whole input was merged.
func (it *Iterator[E]) Next() (E, error) {
	var zero E
	if it.state != streaming {
		return zero, io.EOF
	}
	if it.heads.Len() == 0 {
		it.finish(exhausted)
		return zero, io.EOF
	}

	h := it.heads.Peek()
	rec, err := it.read(h.chunk)
	switch {
	case err == nil:
		it.heads.PeekUpdate(head[E]{rec: rec, chunk: h.chunk})
	case err == io.EOF:
		it.heads.Pop()
		it.closeReader(h.chunk)
	default:
		it.finish(poisoned)
		return zero, err
	}
	it.emitted++
	return h.rec, nil
}

// All returns an iterator over the remaining records.
// An error is yielded once with the zero record, after which iteration stops.
// Breaking out of the loop leaves the Iterator usable; call Close to release it early.
func (it *Iterator[E]) All() iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		for {
			rec, err := it.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Unique is like All but skips records equal to the one yielded before them.
func (it *Iterator[E]) Unique() iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		var prior E
		priorSet := false
		for rec, err := range it.All() {
			if err == nil && priorSet && it.codec.compare(prior, rec) == 0 {
				continue
			}
			if !yield(rec, err) {
				return
			}
			prior, priorSet = rec, true
		}
	}
}

// Close stops the merge and removes the chunk files.
// It is safe to call Close more than once and after the Iterator has been drained.
func (it *Iterator[E]) Close() error {
	if it.state == streaming {
		it.finish(abandoned)
	}
	return it.closeErr
}

func (it *Iterator[E]) read(chunk int) (rec E, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewDeserializationError(r, 0, chunk, "getNext")
		}
	}()
	return it.codec.decode(it.readers[chunk].Reader, chunk)
}

func (it *Iterator[E]) closeReader(chunk int) {
	r := it.readers[chunk]
	if r == nil {
		return
	}
	it.readers[chunk] = nil
	if err := r.Close(); err != nil {
		it.closeErr = multierror.Append(it.closeErr, err)
	}
}

// finish moves the iterator to a terminal state and releases every resource it holds.
func (it *Iterator[E]) finish(state iterState) {
	it.state = state
	for i := range it.readers {
		it.closeReader(i)
	}
	if it.store != nil {
		if err := it.store.Close(); err != nil {
			it.closeErr = multierror.Append(it.closeErr, NewDiskError(err, "remove chunks", it.store.Path()))
		}
		it.store = nil
	}
	if it.closeErr != nil {
		it.logger.WithField("action", "extsort_release").
			WithError(it.closeErr).
			Warn("failed to release chunk files")
	}
	it.logger.WithField("action", "extsort_merge").
		WithField("emitted", it.emitted).
		Debug("merge finished")
}
