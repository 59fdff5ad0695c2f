// Package extsort implements an unstable external sort.
//
// Input is consumed in two phases. Records are first buffered in memory in chunks of
// a configured size; each full chunk is sorted and written to its own temporary file.
// Once the whole input has been staged a k-way merge streams the records back in sorted
// order, reading from disk only as the caller asks for the next record.
//
// extsort is NOT a stable sort
package extsort

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/lanrat/extsort/v2/tempfile"
	"github.com/sirupsen/logrus"
)

// Sorter sorts sequences of E using a scoped temporary directory.
//
// Every call to Sort stages its chunks in a child directory of its own, so iterators from
// earlier calls stay valid while later calls run. Close removes the directory and
// everything in it. A Sorter must not be used from multiple goroutines at once.
type Sorter[E any] struct {
	config Config
	store  tempfile.Store
	codec  codec[E]
	logger logrus.FieldLogger
	runs   int
}

func newSorter[E any](c codec[E], store tempfile.Store, config *Config) *Sorter[E] {
	return &Sorter[E]{
		config: *config,
		store:  store,
		codec:  c,
		logger: config.Logger.WithField("path", store.Path()),
	}
}

// open creates the sorter directory described by config.
func open[E any](c codec[E], config *Config) (*Sorter[E], error) {
	config, err := mergeConfig(config)
	if err != nil {
		return nil, err
	}
	dir, err := tempfile.Open(config.TempFilesDir, config.DirPrefix)
	if err != nil {
		return nil, NewDiskError(err, "create temp dir", config.TempFilesDir)
	}
	dir.SetBufferSize(config.FileBufferSize)
	return newSorter(c, dir, config), nil
}

// New creates a Sorter for a Record type that buffers bufferCapacity records per chunk
// in a directory under the default temporary location.
// A bufferCapacity of 0 writes every record to a chunk of its own.
//
// The pointer type is inferred: New[MyRecord](1000).
func New[T Record[T], PT Decodable[T]](bufferCapacity int) (*Sorter[T], error) {
	return NewIn[T, PT](bufferCapacity, "")
}

// NewIn is like New but creates the sorter directory inside dir.
func NewIn[T Record[T], PT Decodable[T]](bufferCapacity int, dir string) (*Sorter[T], error) {
	config := DefaultConfig()
	config.ChunkSize = bufferCapacity
	config.TempFilesDir = dir
	return NewWithConfig[T, PT](config)
}

// NewWithConfig creates a Sorter for a Record type. config can be nil to use the defaults.
func NewWithConfig[T Record[T], PT Decodable[T]](config *Config) (*Sorter[T], error) {
	return open[T](recordCodec[T, PT]{}, config)
}

// Generic creates a Sorter for any type E described by a set of functions.
//
// Parameters:
//   - fromBytes: Function to deserialize E from bytes when reading from disk
//   - toBytes: Function to serialize E to bytes when writing to disk
//   - compareFunc: Comparison function that returns negative/zero/positive for less/equal/greater
//   - config: Configuration options (nil uses defaults)
//
// Each item is stored on disk as a uvarint length followed by the bytes returned by toBytes.
func Generic[E any](fromBytes FromBytesGeneric[E], toBytes ToBytesGeneric[E], compareFunc CompareGeneric[E], config *Config) (*Sorter[E], error) {
	return open[E](&funcCodec[E]{compareFunc: compareFunc, fromBytes: fromBytes, toBytes: toBytes}, config)
}

// MockGeneric is like Generic but keeps every chunk in memory instead of on disk.
// This is primarily useful for testing and benchmarking without filesystem I/O overhead.
func MockGeneric[E any](fromBytes FromBytesGeneric[E], toBytes ToBytesGeneric[E], compareFunc CompareGeneric[E], config *Config) (*Sorter[E], error) {
	config, err := mergeConfig(config)
	if err != nil {
		return nil, err
	}
	c := &funcCodec[E]{compareFunc: compareFunc, fromBytes: fromBytes, toBytes: toBytes}
	return newSorter[E](c, tempfile.Mock(), config), nil
}

// Sort stages all of input to disk and returns an Iterator over the records in sorted order.
//
// Staging is complete when Sort returns; the input is not read again. If staging or opening
// the chunks fails the error is returned, and every file written by this call is removed.
// ctx is only consulted while staging.
func (s *Sorter[E]) Sort(ctx context.Context, input iter.Seq[E]) (*Iterator[E], error) {
	run, err := s.store.Sub(fmt.Sprintf("run%d_", s.runs))
	if err != nil {
		return nil, NewDiskError(err, "create run dir", s.store.Path())
	}
	s.runs++
	logger := s.logger.WithField("run", run.Path())

	chunks, err := newProducer(s.codec, run, s.config.ChunkSize, logger).stage(ctx, input)
	if err != nil {
		if cerr := run.Close(); cerr != nil {
			logger.WithField("action", "extsort_release").
				WithError(cerr).
				Warn("failed to remove staged chunks")
		}
		return nil, err
	}
	return newIterator(s.codec, run, chunks, logger)
}

// SortSlice sorts the records of data without modifying it.
func (s *Sorter[E]) SortSlice(ctx context.Context, data []E) (*Iterator[E], error) {
	return s.Sort(ctx, slices.Values(data))
}

// SortChan sorts every record received from input until it is closed.
// If ctx is cancelled before input is closed Sort stops with ctx.Err().
func (s *Sorter[E]) SortChan(ctx context.Context, input <-chan E) (*Iterator[E], error) {
	return s.Sort(ctx, func(yield func(E) bool) {
		for {
			select {
			case rec, ok := <-input:
				if !ok || !yield(rec) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})
}

// Dir returns the directory holding this sorter's chunk files.
func (s *Sorter[E]) Dir() string {
	return s.store.Path()
}

// Close removes the sorter directory, including the chunks of any iterator not yet drained.
// Iterators should be closed or drained first.
func (s *Sorter[E]) Close() error {
	if err := s.store.Close(); err != nil {
		return NewDiskError(err, "remove temp dir", s.store.Path())
	}
	return nil
}

// Ordered creates a Sorter for types that implement cmp.Ordered.
// It uses gob encoding for serialization and cmp.Compare for comparison.
func Ordered[T cmp.Ordered](config *Config) (*Sorter[T], error) {
	o := newOrderedCodec[T]()
	return Generic(o.fromBytesOrdered, o.toBytesOrdered, cmp.Compare[T], config)
}

// Strings creates a Sorter for strings, stored on disk as their raw bytes.
func Strings(config *Config) (*Sorter[string], error) {
	return Generic(stringFromBytes, stringToBytes, cmp.Compare[string], config)
}

func stringFromBytes(b []byte) (string, error) {
	return string(b), nil
}

func stringToBytes(s string) ([]byte, error) {
	return []byte(s), nil
}
