package extsort

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// largest framed item accepted when reading a chunk back
const maxItemSize = 1 << 31

// FromBytesGeneric is a function type for deserializing bytes back to type E.
// It's used during the merge phase to reconstruct items from temporary storage.
// The function should be the inverse of the corresponding ToBytesGeneric function.
// Errors are wrapped in a DeserializationError by the sorter.
type FromBytesGeneric[E any] func([]byte) (E, error)

// ToBytesGeneric is a function type for serializing type E to bytes.
// It's used while staging chunks to store items in temporary files.
// Errors are wrapped in a SerializationError by the sorter.
type ToBytesGeneric[E any] func(E) ([]byte, error)

// CompareGeneric is a function type for comparing two items of type E.
// Returns a negative integer if a should be ordered before b, zero if they are equal,
// and a positive integer if a should be ordered after b in the final sorted output.
// This follows the same semantics as cmp.Compare.
type CompareGeneric[E any] func(a, b E) int

// funcCodec frames each serialized item as a uvarint length followed by the payload.
type funcCodec[E any] struct {
	compareFunc CompareGeneric[E]
	fromBytes   FromBytesGeneric[E]
	toBytes     ToBytesGeneric[E]
	scratch     [binary.MaxVarintLen64]byte
}

func (c *funcCodec[E]) compare(a, b E) int {
	return c.compareFunc(a, b)
}

func (c *funcCodec[E]) encode(w *bufio.Writer, e E) error {
	raw, err := c.toBytes(e)
	if err != nil {
		return NewSerializationError(err, "ToBytes")
	}
	n := binary.PutUvarint(c.scratch[:], uint64(len(raw)))
	if _, err = w.Write(c.scratch[:n]); err != nil {
		return NewDiskError(err, "write size header", "")
	}
	if _, err = w.Write(raw); err != nil {
		return NewDiskError(err, "write data", "")
	}
	return nil
}

func (c *funcCodec[E]) decode(r *bufio.Reader, chunk int) (E, error) {
	var zero E
	n, err := binary.ReadUvarint(r)
	if err == io.EOF {
		return zero, io.EOF
	}
	if err != nil {
		return zero, NewDiskError(err, "read size header", "")
	}
	if n > maxItemSize {
		return zero, NewDiskError(fmt.Errorf("item size %d exceeds %d bytes", n, maxItemSize), "read size header", "")
	}
	raw := make([]byte, int(n))
	if _, err = io.ReadFull(r, raw); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return zero, NewDiskError(err, "read data", "")
	}
	v, err := c.fromBytes(raw)
	if err != nil {
		return zero, NewDeserializationError(err, len(raw), chunk, "FromBytes")
	}
	return v, nil
}
