package extsort_test

import (
	"cmp"
	"context"
	"encoding/binary"
	"fmt"
	"math/rand"
	"testing"

	"github.com/lanrat/extsort/v2"
)

// Benchmark configurations
var benchmarkSizes = []int{1000, 10000, 100000}

func generateRandomInts(size int) []int {
	r := rand.New(rand.NewSource(1))
	data := make([]int, size)
	for i := range data {
		data[i] = r.Int()
	}
	return data
}

func intToBytes(i int) ([]byte, error) {
	buf := make([]byte, binary.MaxVarintLen64)
	return buf[:binary.PutVarint(buf, int64(i))], nil
}

func intFromBytes(b []byte) (int, error) {
	i, _ := binary.Varint(b)
	return int(i), nil
}

type newSorterFunc func(config *extsort.Config) (*extsort.Sorter[int], error)

func benchmarkSort(b *testing.B, newSorter newSorterFunc) {
	for _, size := range benchmarkSizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			// Pre-generate data to avoid timing issues
			data := generateRandomInts(size)
			config := &extsort.Config{ChunkSize: max(size/10, 100), TempFilesDir: b.TempDir()}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sorter, err := newSorter(config)
				if err != nil {
					b.Fatal(err)
				}
				it, err := sorter.SortSlice(context.Background(), data)
				if err != nil {
					b.Fatal(err)
				}
				count := 0
				for _, err := range it.All() {
					if err != nil {
						b.Fatal(err)
					}
					count++
				}
				if count != size {
					b.Fatalf("got %d records, want %d", count, size)
				}
				_ = sorter.Close()
			}
		})
	}
}

// BenchmarkGenericInts benchmarks the function based API writing varints to disk
func BenchmarkGenericInts(b *testing.B) {
	benchmarkSort(b, func(config *extsort.Config) (*extsort.Sorter[int], error) {
		return extsort.Generic(intFromBytes, intToBytes, cmp.Compare[int], config)
	})
}

// BenchmarkMockGenericInts is BenchmarkGenericInts without the filesystem
func BenchmarkMockGenericInts(b *testing.B) {
	benchmarkSort(b, func(config *extsort.Config) (*extsort.Sorter[int], error) {
		return extsort.MockGeneric(intFromBytes, intToBytes, cmp.Compare[int], config)
	})
}

// BenchmarkOrderedInts measures the gob encoding used by Ordered
func BenchmarkOrderedInts(b *testing.B) {
	benchmarkSort(b, extsort.Ordered[int])
}
