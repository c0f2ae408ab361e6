// Package prng generates reproducible byte corpora for tests and benchmarks.
package prng

// Source is a linear congruential generator. The same seed yields the same
// sequence on every platform.
type Source struct {
	state uint64
}

// New creates a Source with the given seed.
func New(seed uint64) *Source {
	return &Source{state: seed}
}

// Next advances the generator (Numerical Recipes constants).
func (p *Source) Next() uint64 {
	p.state = p.state*6364136223846793005 + 1442695040888963407
	return p.state
}

// Uint64N returns a number in [0, n).
func (p *Source) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return (p.Next() >> 11) % n
}

// Bytes returns n bytes drawn uniformly from the first alphabet symbols.
// An alphabet of 0 or more than 256 means all byte values.
func (p *Source) Bytes(n, alphabet int) []byte {
	if alphabet <= 0 || alphabet > 256 {
		alphabet = 256
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(p.Uint64N(uint64(alphabet)))
	}
	return out
}

// Skewed returns n bytes where symbol k is drawn with weight proportional to
// 2^-(k+1), so low symbols dominate and the Huffman tree gets deep.
func (p *Source) Skewed(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		// low LCG bits have short periods, consume from the top
		v := p.Next()
		k := 0
		for v>>63 == 1 && k < 255 {
			v <<= 1
			k++
			if k%32 == 0 {
				v = p.Next()
			}
		}
		out[i] = byte(k)
	}
	return out
}

// Shuffle performs an in-place Fisher-Yates shuffle.
func (p *Source) Shuffle(b []byte) {
	for i := len(b) - 1; i > 0; i-- {
		j := int(p.Uint64N(uint64(i + 1)))
		b[i], b[j] = b[j], b[i]
	}
}
