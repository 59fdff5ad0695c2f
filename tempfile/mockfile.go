package tempfile

import (
	"bufio"
	"bytes"
	"fmt"
)

// MockStore provides an in-memory implementation of the Store interface.
// It keeps every chunk in a bytes.Buffer instead of writing files to disk.
// This is useful for testing and benchmarking without filesystem I/O overhead.
type MockStore struct {
	name     string
	chunks   map[int]*bytes.Buffer
	children []*MockStore
	closed   bool
}

// Mock creates a new in-memory Store.
func Mock() *MockStore {
	return newMock("mock")
}

func newMock(name string) *MockStore {
	return &MockStore{
		name:   name,
		chunks: make(map[int]*bytes.Buffer),
	}
}

// Path returns a synthetic name for the store.
func (m *MockStore) Path() string {
	return m.name
}

// Len returns the number of chunks currently held by the store, excluding child scopes.
func (m *MockStore) Len() int {
	return len(m.chunks)
}

// Create creates or truncates the in-memory chunk with the given index.
func (m *MockStore) Create(index int) (*Writer, error) {
	if m.closed {
		return nil, ErrClosed
	}
	buf, ok := m.chunks[index]
	if ok {
		buf.Reset()
	} else {
		buf = new(bytes.Buffer)
		m.chunks[index] = buf
	}
	return &Writer{
		Writer: bufio.NewWriterSize(buf, fileBufferSize),
		name:   m.chunkName(index),
		closer: nopCloser{},
	}, nil
}

// Open returns a reader over a snapshot of the chunk with the given index.
func (m *MockStore) Open(index int) (*Reader, error) {
	if m.closed {
		return nil, ErrClosed
	}
	buf, ok := m.chunks[index]
	if !ok {
		return nil, fmt.Errorf("tempfile: open %s: chunk does not exist", m.chunkName(index))
	}
	return &Reader{
		Reader: bufio.NewReaderSize(bytes.NewReader(buf.Bytes()), fileBufferSize),
		name:   m.chunkName(index),
		closer: nopCloser{},
	}, nil
}

// Sub creates an in-memory child scope that is released together with m.
func (m *MockStore) Sub(prefix string) (Store, error) {
	if m.closed {
		return nil, ErrClosed
	}
	child := newMock(fmt.Sprintf("%s/%s%d", m.name, prefix, len(m.children)))
	m.children = append(m.children, child)
	return child, nil
}

// Close drops every chunk held by the store and its children.
func (m *MockStore) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	for _, c := range m.children {
		_ = c.Close()
	}
	m.children = nil
	m.chunks = nil
	return nil
}

func (m *MockStore) chunkName(index int) string {
	return fmt.Sprintf("%s/%d", m.name, index)
}
