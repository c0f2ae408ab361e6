// Package bitstream provides MSB-first bit writers and readers for the huff
// file format.
package bitstream

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// maxChunk is the widest run handed to the underlying writer in one call.
const maxChunk = 32

// Writer packs individual bits into bytes, most significant bit first.
//
// Bits are buffered until a byte is complete. Align pads the partial byte with
// zeros and flushes everything written so far to the underlying sink.
type Writer struct {
	bw *bitio.CountWriter
}

// NewWriter returns a Writer over w.
//
// The Writer must be closed (or aligned) for buffered bits to reach w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bitio.NewCountWriter(w)}
}

// WriteBit appends one bit: 1 if bit is true, 0 otherwise.
func (w *Writer) WriteBit(bit bool) error {
	if err := w.bw.WriteBool(bit); err != nil {
		return errors.Wrap(err, "bitstream: write bit")
	}
	return nil
}

// WriteByte appends the 8 bits of b, most significant first.
func (w *Writer) WriteByte(b byte) error {
	if err := w.bw.WriteByte(b); err != nil {
		return errors.Wrap(err, "bitstream: write byte")
	}
	return nil
}

// WriteBits appends the n lowest bits of u, most significant first.
// n may be up to 64.
func (w *Writer) WriteBits(u uint64, n uint8) error {
	for n > maxChunk {
		n -= maxChunk
		if err := w.bw.WriteBits(u>>n, maxChunk); err != nil {
			return errors.Wrap(err, "bitstream: write bits")
		}
	}
	if n == 0 {
		return nil
	}
	if err := w.bw.WriteBits(u, n); err != nil {
		return errors.Wrap(err, "bitstream: write bits")
	}
	return nil
}

// Align pads the current partial byte with zero bits, flushes it and returns
// the number of padding bits inserted (0-7).
func (w *Writer) Align() (uint8, error) {
	skipped, err := w.bw.Align()
	if err != nil {
		return skipped, errors.Wrap(err, "bitstream: align")
	}
	return skipped, nil
}

// BitsWritten reports the number of bits written so far, padding included.
func (w *Writer) BitsWritten() int64 {
	return w.bw.BitsCount
}

// Close aligns the stream and flushes buffered output.
// It does not close the underlying writer.
func (w *Writer) Close() error {
	if _, err := w.Align(); err != nil {
		return err
	}
	return nil
}
