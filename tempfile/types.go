package tempfile

import (
	"bufio"
	"errors"
	"io"

	"github.com/hashicorp/go-multierror"
)

// ErrClosed is returned when a chunk is created or opened in a Store that has been closed.
var ErrClosed = errors.New("tempfile: store is closed")

// Store is a scoped staging area for numbered chunk files.
// Everything created in a Store, including child scopes, is removed by Close.
type Store interface {
	// Close removes the store and every chunk and child scope inside it.
	// Calling Close more than once is a no-op.
	io.Closer

	// Create creates, or truncates, the chunk with the given index and returns a buffered writer to it.
	// The chunk becomes readable once the writer is closed.
	Create(index int) (*Writer, error)

	// Open opens an existing chunk for sequential reading from its start.
	Open(index int) (*Reader, error)

	// Sub creates an isolated child scope inside the store.
	// Chunk indexes in the child never collide with those of the parent or of sibling scopes.
	Sub(prefix string) (Store, error)

	// Path identifies the store; for disk backed stores it is the directory path.
	Path() string
}

// Writer is a buffered writer for a single chunk.
type Writer struct {
	*bufio.Writer
	name   string
	closer io.Closer
}

// Name returns the path of the chunk being written.
func (w *Writer) Name() string {
	return w.name
}

// Close flushes any buffered data and closes the underlying chunk.
// The chunk is closed even if the flush fails.
func (w *Writer) Close() error {
	var result error
	if err := w.Flush(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := w.closer.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}

// Reader is a buffered sequential reader over a single chunk.
type Reader struct {
	*bufio.Reader
	name   string
	closer io.Closer
}

// Name returns the path of the chunk being read.
func (r *Reader) Name() string {
	return r.name
}

// Close releases the underlying chunk.
func (r *Reader) Close() error {
	return r.closer.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
