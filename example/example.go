package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"math/rand"

	"github.com/lanrat/extsort/v2"
	"github.com/sirupsen/logrus"
)

var (
	count = flag.Int("count", int(1e7), "number of random integers to sort")
	chunk = flag.Int("chunk", int(1e6), "integers held in memory per chunk")
	dir   = flag.String("dir", "", "parent directory for chunk files")
	debug = flag.Bool("debug", false, "log chunk and merge progress")
)

type sortInt struct {
	i int64
}

func (s sortInt) Compare(other sortInt) int {
	switch {
	case s.i < other.i:
		return -1
	case s.i > other.i:
		return 1
	}
	return 0
}

func (s sortInt) Serialize(w io.Writer) error {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(buf, s.i)
	_, err := w.Write(buf[:n])
	return err
}

func (s *sortInt) Deserialize(r io.Reader) error {
	i, err := binary.ReadVarint(r.(io.ByteReader))
	if err != nil {
		return err
	}
	s.i = i
	return nil
}

func main() {
	flag.Parse()
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	config := extsort.DefaultConfig()
	config.ChunkSize = *chunk
	config.TempFilesDir = *dir
	sorter, err := extsort.NewWithConfig[sortInt](config)
	if err != nil {
		logrus.WithError(err).Fatal("create sorter")
	}
	defer sorter.Close()

	// unsorted input, generated lazily
	input := func(yield func(sortInt) bool) {
		for i := 0; i < *count; i++ {
			if !yield(sortInt{i: rand.Int63()}) {
				return
			}
		}
	}

	it, err := sorter.Sort(context.Background(), input)
	if err != nil {
		logrus.WithError(err).Fatal("sort")
	}
	defer it.Close()

	// print output sorted data
	for data, err := range it.All() {
		if err != nil {
			logrus.WithError(err).Fatal("merge")
		}
		fmt.Printf("%d\n", data.i)
	}
}
