package extsort

import (
	"bytes"
	"cmp"
	"encoding/gob"
	"sync"
)

// orderedCodec provides byte serialization for types that implement cmp.Ordered
// using gob encoding, with a sync.Pool for buffer reuse to reduce allocations.
type orderedCodec[T cmp.Ordered] struct {
	bufferPool sync.Pool
}

func newOrderedCodec[T cmp.Ordered]() *orderedCodec[T] {
	return &orderedCodec[T]{
		bufferPool: sync.Pool{
			New: func() any {
				return &bytes.Buffer{}
			},
		},
	}
}

// fromBytesOrdered deserializes a byte slice back to the original type T
// using gob decoding. It reuses buffers from the pool for efficiency.
func (o *orderedCodec[T]) fromBytesOrdered(d []byte) (T, error) {
	var v T
	buf := o.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Write(d)
	defer o.bufferPool.Put(buf)

	err := gob.NewDecoder(buf).Decode(&v)
	return v, err
}

// toBytesOrdered serializes a value of type T to bytes using gob encoding.
// It reuses buffers from the pool and returns a copy of the serialized data.
func (o *orderedCodec[T]) toBytesOrdered(d T) ([]byte, error) {
	buf := o.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer o.bufferPool.Put(buf)

	if err := gob.NewEncoder(buf).Encode(d); err != nil {
		return nil, err
	}

	// Need to copy the bytes since we're returning the buffer to the pool
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
