package extsort

import (
	"bufio"
	"errors"
	"io"
)

// Record is the ordering and serialization half of the contract a type must satisfy
// to be sorted with New, NewIn or NewWithConfig. Both methods use value receivers.
type Record[T any] interface {
	// Compare returns a negative integer if the receiver orders before other, zero if
	// they are equal, and a positive integer if it orders after other.
	// It must implement a total order.
	Compare(other T) int

	// Serialize writes exactly one record to w.
	Serialize(w io.Writer) error
}

// Decodable is the deserialization half of the record contract, implemented by *T.
type Decodable[T any] interface {
	*T

	// Deserialize reads exactly one record written by Serialize into the receiver.
	// It must return io.EOF, and only io.EOF, when r holds no more records.
	// A record cut short should be reported as io.ErrUnexpectedEOF.
	// The reader passed in also implements io.ByteReader.
	Deserialize(r io.Reader) error
}

// codec is what the chunk producer and merge engine need from a record type.
type codec[E any] interface {
	compare(a, b E) int
	// encode appends e to w. Returned errors are already classified.
	encode(w *bufio.Writer, e E) error
	// decode reads the next record of chunk from r.
	// It returns io.EOF unwrapped on a clean end of chunk.
	decode(r *bufio.Reader, chunk int) (E, error)
}

// recordCodec adapts the Record contract.
type recordCodec[T Record[T], PT Decodable[T]] struct{}

func (recordCodec[T, PT]) compare(a, b T) int {
	return a.Compare(b)
}

func (recordCodec[T, PT]) encode(w *bufio.Writer, e T) error {
	if err := e.Serialize(w); err != nil {
		return NewSerializationError(err, "Serialize")
	}
	return nil
}

func (recordCodec[T, PT]) decode(r *bufio.Reader, chunk int) (T, error) {
	var v T
	err := PT(&v).Deserialize(r)
	if errors.Is(err, io.EOF) {
		return v, io.EOF
	}
	if err != nil {
		return v, NewDeserializationError(err, 0, chunk, "Deserialize")
	}
	return v, nil
}
