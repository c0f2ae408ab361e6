package bitstream

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// ErrEndOfStream is returned when a read needs more bits than the source holds.
var ErrEndOfStream = errors.New("bitstream: end of stream")

// Reader unpacks bits from a byte source, most significant bit first, one
// byte at a time.
type Reader struct {
	br *bitio.CountReader
}

// NewReader returns a Reader over r.
//
// Sources that do not implement io.ByteReader are buffered, so r must not be
// read by anyone else while the Reader is in use.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewCountReader(r)}
}

// ReadBit reads the next bit.
func (r *Reader) ReadBit() (bool, error) {
	b, err := r.br.ReadBool()
	if err != nil {
		return false, wrapReadErr(err, "read bit")
	}
	return b, nil
}

// ReadByte reads the next 8 bits and assembles them MSB-first.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, wrapReadErr(err, "read byte")
	}
	return b, nil
}

// ReadBits reads n bits (n <= 64) and returns them as the lowest bits of the
// result, first bit read most significant.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	var u uint64
	for n > maxChunk {
		n -= maxChunk
		part, err := r.br.ReadBits(maxChunk)
		if err != nil {
			return 0, wrapReadErr(err, "read bits")
		}
		u = u<<maxChunk | part
	}
	if n == 0 {
		return u, nil
	}
	part, err := r.br.ReadBits(n)
	if err != nil {
		return 0, wrapReadErr(err, "read bits")
	}
	return u<<n | part, nil
}

// Skip discards the next n bits.
func (r *Reader) Skip(n uint8) error {
	_, err := r.ReadBits(n)
	return err
}

// BitsRead reports the number of bits consumed so far.
func (r *Reader) BitsRead() int64 {
	return r.br.BitsCount
}

// Aligned reports whether the next read starts on a byte boundary.
func (r *Reader) Aligned() bool {
	return r.br.BitsCount%8 == 0
}

func wrapReadErr(err error, op string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrEndOfStream, op)
	}
	return errors.Wrap(err, "bitstream: "+op)
}
