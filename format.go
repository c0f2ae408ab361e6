package huff

import "fmt"

// File layout, all multi-bit fields MSB-first:
//
//	tree     = serialized Huffman tree (see treecodec.go)
//	pad      = 0-7 zero bits to the next byte boundary
//	payload  = code of every input byte, in order
//	pad      = 0-7 zero bits to the next byte boundary
//	trailer  = 1 byte: high nibble tree padding, low nibble payload padding
//
// An empty input is stored as an empty file.

const (
	trailerBytes   = 1
	maxPadding     = 7
	readBufferSize = 64 * 1024
)

func packTrailer(treePad, payloadPad uint8) byte {
	return treePad<<4 | payloadPad&0x0F
}

func unpackTrailer(b byte) (treePad, payloadPad uint8, err error) {
	treePad, payloadPad = b>>4, b&0x0F
	if treePad > maxPadding || payloadPad > maxPadding {
		return 0, 0, fmt.Errorf("%w: invalid trailer 0x%02x", ErrCorrupt, b)
	}
	return treePad, payloadPad, nil
}

// payloadBits returns the number of payload bits in a file of size bytes
// whose tree section, padding included, spans treeBytes.
func payloadBits(size, treeBytes int64, payloadPad uint8) (int64, error) {
	bits := (size-treeBytes-trailerBytes)*8 - int64(payloadPad)
	if bits < 0 {
		return 0, fmt.Errorf("%w: tree and trailer overrun file of %d bytes", ErrCorrupt, size)
	}
	return bits, nil
}
