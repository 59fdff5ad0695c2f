// Package tempfile implements scoped temporary directories that hold numbered chunk files.
// A directory and everything written into it is removed from the filesystem when it is closed,
// and child scopes can be created inside a directory so independent runs never share file names.
package tempfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var (
	// file IO buffer size for each chunk file
	fileBufferSize = 1 << 16 // 64k
	// directory name prefix used when none is given
	dirPrefix = fmt.Sprintf("extsort_%d_", os.Getpid())
)

// Dir is a disk backed Store rooted at a uniquely named directory.
type Dir struct {
	path    string
	bufSize int
	closed  bool
}

// Open creates a uniquely named directory inside parent.
// An empty parent selects a default location using GetTempDir.
// An empty prefix uses a process specific default.
func Open(parent, prefix string) (*Dir, error) {
	if prefix == "" {
		prefix = dirPrefix
	}
	if parent == "" {
		parent = GetTempDir("", true)
		// the default candidates may not exist yet
		if err := os.MkdirAll(parent, 0o700); err != nil {
			return nil, err
		}
	}
	path, err := os.MkdirTemp(parent, prefix)
	if err != nil {
		return nil, err
	}
	return &Dir{path: path, bufSize: fileBufferSize}, nil
}

// SetBufferSize sets the IO buffer size used for chunks created or opened after the call.
// Values less than 1 are ignored.
func (d *Dir) SetBufferSize(n int) {
	if n > 0 {
		d.bufSize = n
	}
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) chunkName(index int) string {
	return filepath.Join(d.path, strconv.Itoa(index))
}

// Create creates or truncates the chunk file named by index.
func (d *Dir) Create(index int) (*Writer, error) {
	if d.closed {
		return nil, ErrClosed
	}
	name := d.chunkName(index)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	return &Writer{
		Writer: bufio.NewWriterSize(f, d.bufSize),
		name:   name,
		closer: f,
	}, nil
}

// Open opens the chunk file named by index for reading.
func (d *Dir) Open(index int) (*Reader, error) {
	if d.closed {
		return nil, ErrClosed
	}
	name := d.chunkName(index)
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &Reader{
		Reader: bufio.NewReaderSize(f, d.bufSize),
		name:   name,
		closer: f,
	}, nil
}

// Sub creates a uniquely named child directory.
// Chunk files of the child are named independently of the parent's.
func (d *Dir) Sub(prefix string) (Store, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if prefix == "" {
		prefix = "run_"
	}
	path, err := os.MkdirTemp(d.path, prefix)
	if err != nil {
		return nil, err
	}
	return &Dir{path: path, bufSize: d.bufSize}, nil
}

// Close removes the directory and all of its contents.
func (d *Dir) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return os.RemoveAll(d.path)
}
