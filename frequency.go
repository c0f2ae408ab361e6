package huff

import (
	"fmt"
	"io"
)

// FrequencyTable counts occurrences of each byte value in an input.
// It is immutable once built.
type FrequencyTable struct {
	counts [256]uint64
}

// CountFrequencies builds the frequency table of data.
func CountFrequencies(data []byte) *FrequencyTable {
	ft := &FrequencyTable{}
	for _, b := range data {
		ft.counts[b]++
	}
	return ft
}

// CountFrequenciesFrom builds the frequency table of everything r yields and
// returns the number of bytes consumed.
func CountFrequenciesFrom(r io.Reader) (*FrequencyTable, int64, error) {
	ft := &FrequencyTable{}
	buf := make([]byte, readBufferSize)
	var n int64
	for {
		m, err := r.Read(buf)
		for _, b := range buf[:m] {
			ft.counts[b]++
		}
		n += int64(m)
		if err == io.EOF {
			return ft, n, nil
		}
		if err != nil {
			return nil, n, fmt.Errorf("count frequencies: %w", err)
		}
	}
}

// Count returns the number of occurrences of sym.
func (ft *FrequencyTable) Count(sym byte) uint64 {
	return ft.counts[sym]
}

// Len returns the number of distinct symbols present.
func (ft *FrequencyTable) Len() int {
	n := 0
	for _, c := range ft.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts, i.e. the input length.
func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, c := range ft.counts {
		total += c
	}
	return total
}

// Symbols returns the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, 256)
	for i, c := range ft.counts {
		if c > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// histogram returns a copy of the raw counts, usable as a map key.
func (ft *FrequencyTable) histogram() [256]uint64 {
	return ft.counts
}
