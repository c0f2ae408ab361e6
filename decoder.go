package huff

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/seiflotfy/huff/bitstream"
)

// Decoder decompresses files produced by an Encoder.
type Decoder struct {
	config Config
}

// NewDecoder creates a new decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{config: newConfig(opts)}
}

// Decode reads the compressed file held by r, from its current offset to its
// end, and writes the original bytes to w.
//
// The trailer is read first by seeking to the end, then the tree and payload
// from the start. Malformed input fails with ErrCorrupt; output written before
// the failure is not retracted.
func (d *Decoder) Decode(w io.Writer, r io.ReadSeeker) (*Stats, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	size := end - start
	stats := &Stats{InputBytes: size, Decoded: true}
	if size == 0 {
		stats.Table = DeriveCodeTable(nil)
		return stats, nil
	}

	if _, err := r.Seek(-trailerBytes, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("decode: seek trailer: %w", err)
	}
	var trailer [trailerBytes]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, fmt.Errorf("decode: read trailer: %w", err)
	}
	treePad, payloadPad, err := unpackTrailer(trailer[0])
	if err != nil {
		return nil, err
	}
	stats.TreePadding, stats.PayloadPadding = treePad, payloadPad

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("decode: rewind input: %w", err)
	}
	br := bitstream.NewReader(io.LimitReader(r, size-trailerBytes))
	tree, err := ReadTree(br)
	if err != nil {
		return nil, err
	}
	stats.TreeBits = br.BitsRead()
	stats.Table = DeriveCodeTable(tree)

	if err := readPadding(br, treePad); err != nil {
		return nil, fmt.Errorf("%w: tree padding: %w", ErrCorrupt, err)
	}
	if !br.Aligned() {
		return nil, fmt.Errorf("%w: tree padding of %d bits does not reach a byte boundary", ErrCorrupt, treePad)
	}
	bits, err := payloadBits(size, br.BitsRead()/8, payloadPad)
	if err != nil {
		return nil, err
	}
	stats.PayloadBits = bits

	bw := bufio.NewWriterSize(w, readBufferSize)
	n, err := d.walk(bw, br, tree, bits)
	stats.OutputBytes = n
	if err == nil {
		if perr := readPadding(br, payloadPad); perr != nil {
			err = fmt.Errorf("%w: payload padding: %w", ErrCorrupt, perr)
		}
	}
	if ferr := bw.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("decode: write output: %w", ferr)
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DecodeBytes decompresses data in memory.
func (d *Decoder) DecodeBytes(data []byte) ([]byte, *Stats, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) * 2)
	stats, err := d.Decode(&buf, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), stats, nil
}

// walk consumes exactly bits payload bits, descending from root per bit and
// emitting a symbol at every leaf.
func (d *Decoder) walk(w *bufio.Writer, br *bitstream.Reader, root *Node, bits int64) (int64, error) {
	limit := d.config.MaxDecodedSize
	var n int64
	node := root
	for i := int64(0); i < bits; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return n, fmt.Errorf("%w: payload bit %d of %d: %w", ErrCorrupt, i, bits, err)
		}
		switch {
		case root.IsLeaf():
			if bit {
				return n, fmt.Errorf("%w: payload bit %d is 1 under a single-symbol tree", ErrCorrupt, i)
			}
		case bit:
			node = node.Right
		default:
			node = node.Left
		}
		if !node.IsLeaf() {
			continue
		}
		if limit > 0 && n >= limit {
			return n, fmt.Errorf("%w: limit is %d bytes", ErrMaxDecodedSize, limit)
		}
		if err := w.WriteByte(node.Symbol); err != nil {
			return n, fmt.Errorf("decode: write output: %w", err)
		}
		n++
		node = root
	}
	if node != root {
		return n, fmt.Errorf("%w: payload ends inside a code", ErrCorrupt)
	}
	return n, nil
}

var errNonZeroPadding = errors.New("padding bits are not zero")

// readPadding consumes n alignment bits, which must all be zero.
func readPadding(br *bitstream.Reader, n uint8) error {
	pad, err := br.ReadBits(n)
	if err != nil {
		return err
	}
	if pad != 0 {
		return errNonZeroPadding
	}
	return nil
}
