package huff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/seiflotfy/huff/bitstream"
)

// Encoder compresses byte streams into the huff format.
//
// An Encoder may be reused; with WithTreeCache it remembers the trees of
// recent byte distributions.
type Encoder struct {
	config Config
	cache  *treeCache
}

// NewEncoder creates a new encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	cfg := newConfig(opts)
	return &Encoder{config: cfg, cache: newTreeCache(cfg.TreeCacheSize)}
}

// Encode reads r to its end twice, once to count byte frequencies and once to
// encode, and writes the compressed file to w. The second pass starts from the
// offset r had when Encode was called.
//
// If r yields different content on the second pass Encode fails with
// ErrInputChanged. An empty source produces no output.
func (e *Encoder) Encode(w io.Writer, r io.ReadSeeker) (*Stats, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	ft, n, err := CountFrequenciesFrom(r)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("encode: rewind input: %w", err)
	}
	return e.encode(w, r, ft, n, true)
}

// EncodeBytes compresses data in memory.
func (e *Encoder) EncodeBytes(data []byte) ([]byte, *Stats, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)
	stats, err := e.encode(&buf, bytes.NewReader(data), CountFrequencies(data), int64(len(data)), false)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), stats, nil
}

// encode writes tree, payload and trailer for the n bytes of r described by
// ft. mutable marks sources that may differ from what ft was counted from.
func (e *Encoder) encode(w io.Writer, r io.Reader, ft *FrequencyTable, n int64, mutable bool) (*Stats, error) {
	stats := &Stats{InputBytes: n, Frequencies: ft}
	if n == 0 {
		stats.Table = DeriveCodeTable(nil)
		return stats, nil
	}

	tree, _ := e.cache.build(ft)
	table := DeriveCodeTable(tree)
	stats.Table = table

	bw := bitstream.NewWriter(w)
	if err := WriteTree(bw, tree); err != nil {
		return nil, fmt.Errorf("encode: write tree: %w", err)
	}
	stats.TreeBits = bw.BitsWritten()
	treePad, err := bw.Align()
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	stats.TreePadding = treePad

	payloadStart := bw.BitsWritten()
	if err := writePayload(bw, table, r, n, mutable); err != nil {
		return nil, err
	}
	stats.PayloadBits = bw.BitsWritten() - payloadStart
	payloadPad, err := bw.Align()
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	stats.PayloadPadding = payloadPad

	if err := bw.WriteByte(packTrailer(treePad, payloadPad)); err != nil {
		return nil, fmt.Errorf("encode: write trailer: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	stats.OutputBytes = bw.BitsWritten() / 8
	return stats, nil
}

func writePayload(bw *bitstream.Writer, table *CodeTable, r io.Reader, n int64, mutable bool) error {
	buf := make([]byte, readBufferSize)
	var seen int64
	for {
		m, rerr := r.Read(buf)
		seen += int64(m)
		if seen > n {
			return fmt.Errorf("%w: read %d bytes, counted %d", ErrInputChanged, seen, n)
		}
		for _, b := range buf[:m] {
			code, ok := table.Lookup(b)
			if !ok {
				if mutable {
					return fmt.Errorf("%w: symbol 0x%02x was not counted", ErrInputChanged, b)
				}
				panic(fmt.Sprintf("huff: no code for symbol 0x%02x", b))
			}
			if err := writeCode(bw, code); err != nil {
				return fmt.Errorf("encode: write payload: %w", err)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("encode: read input: %w", rerr)
		}
	}
	if seen != n {
		return fmt.Errorf("%w: read %d bytes, counted %d", ErrInputChanged, seen, n)
	}
	return nil
}

func writeCode(bw *bitstream.Writer, c Code) error {
	for k := 0; k*64 < c.Len(); k++ {
		word, n := c.word(k)
		if err := bw.WriteBits(word, n); err != nil {
			return err
		}
	}
	return nil
}
