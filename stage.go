package extsort

import (
	"context"
	"iter"
	"slices"

	"github.com/lanrat/extsort/v2/tempfile"
	"github.com/sirupsen/logrus"
)

// largest buffer allocated up front, larger chunks grow on demand
const maxPrealloc = 1 << 16

// producer buffers input records and writes each full buffer as one sorted chunk.
type producer[E any] struct {
	codec    codec[E]
	store    tempfile.Store
	capacity int
	logger   logrus.FieldLogger
	buf      []E
	chunks   int
}

func newProducer[E any](c codec[E], store tempfile.Store, capacity int, logger logrus.FieldLogger) *producer[E] {
	return &producer[E]{
		codec:    c,
		store:    store,
		capacity: capacity,
		logger:   logger,
		buf:      make([]E, 0, min(capacity, maxPrealloc)),
	}
}

// stage consumes input completely and returns the number of chunks written.
// Chunks are numbered from 0 in the order they are written.
// On error staging stops immediately; chunks already written are left for the caller to release.
func (p *producer[E]) stage(ctx context.Context, input iter.Seq[E]) (int, error) {
	for rec := range input {
		if err := ctx.Err(); err != nil {
			return p.chunks, err
		}
		p.buf = append(p.buf, rec)
		if len(p.buf) >= p.capacity {
			if err := p.flush(); err != nil {
				return p.chunks, err
			}
		}
	}
	// input may have stopped early because of ctx
	if err := ctx.Err(); err != nil {
		return p.chunks, err
	}
	// write the last chunk
	if len(p.buf) > 0 {
		if err := p.flush(); err != nil {
			return p.chunks, err
		}
	}
	return p.chunks, nil
}

// flush sorts the buffer and saves it as the next chunk
func (p *producer[E]) flush() error {
	if err := p.sortChunk(); err != nil {
		return err
	}

	w, err := p.store.Create(p.chunks)
	if err != nil {
		return NewDiskError(err, "create chunk", p.store.Path())
	}
	for _, rec := range p.buf {
		if err = p.write(w, rec); err != nil {
			_ = w.Close()
			return err
		}
	}
	if err = w.Close(); err != nil {
		return NewDiskError(err, "close chunk", w.Name())
	}

	p.logger.WithField("action", "extsort_stage_chunk").
		WithField("chunk", p.chunks).
		WithField("records", len(p.buf)).
		Debug("chunk staged")

	clear(p.buf)
	p.buf = p.buf[:0]
	p.chunks++
	return nil
}

// sortChunk sorts the buffer in place, the sort is not stable
func (p *producer[E]) sortChunk() (err error) {
	defer func() {
		// Recover from panics in comparison function
		if r := recover(); r != nil {
			err = NewComparisonError(r, "sortChunk")
		}
	}()
	slices.SortFunc(p.buf, p.codec.compare)
	return nil
}

func (p *producer[E]) write(w *tempfile.Writer, rec E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewSerializationError(r, "saveChunk")
		}
	}()
	return p.codec.encode(w.Writer, rec)
}
