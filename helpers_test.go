package extsort_test

import (
	"cmp"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/lanrat/extsort/v2"
	"github.com/stretchr/testify/require"
)

// Num is a single byte record
type Num struct {
	N uint8
}

func (n Num) Compare(other Num) int {
	return cmp.Compare(n.N, other.N)
}

func (n Num) Serialize(w io.Writer) error {
	_, err := w.Write([]byte{n.N})
	return err
}

func (n *Num) Deserialize(r io.Reader) error {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	n.N = buf[0]
	return nil
}

func nums(values ...uint8) []Num {
	out := make([]Num, len(values))
	for i, v := range values {
		out[i] = Num{N: v}
	}
	return out
}

var (
	errPoison   = errors.New("poisoned record")
	errBadWrite = errors.New("unserializable record")
)

const (
	poisonValue   = 200
	badWriteValue = 255
)

// FaultyNum deserializes poisonValue as an error and refuses to serialize badWriteValue
type FaultyNum struct {
	N uint8
}

func (n FaultyNum) Compare(other FaultyNum) int {
	return cmp.Compare(n.N, other.N)
}

func (n FaultyNum) Serialize(w io.Writer) error {
	if n.N == badWriteValue {
		return errBadWrite
	}
	_, err := w.Write([]byte{n.N})
	return err
}

func (n *FaultyNum) Deserialize(r io.Reader) error {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	if buf[0] == poisonValue {
		return errPoison
	}
	n.N = buf[0]
	return nil
}

// drain reads it until io.EOF and returns the records and every error seen
func drain[E any](t *testing.T, it *extsort.Iterator[E]) ([]E, []error) {
	t.Helper()
	var out []E
	var errs []error
	for i := 0; ; i++ {
		require.Less(t, i, 10_000_000, "iterator did not terminate")
		rec, err := it.Next()
		if err == io.EOF {
			return out, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, rec)
	}
}

func isSorted(a []Num) bool {
	for i := 1; i < len(a); i++ {
		if a[i].N < a[i-1].N {
			return false
		}
	}
	return true
}

// dirEntries lists the names in dir
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
