// Package huff implements a Huffman byte-stream compressor.
//
// A compressed file is self-describing: it carries the serialized Huffman tree,
// the bit-packed payload and one trailing byte of padding metadata. See
// format.go for the layout.
package huff

import "errors"

var (
	// ErrCorrupt indicates the compressed input is malformed or truncated.
	ErrCorrupt = errors.New("huff: corrupt input")
	// ErrInputChanged indicates the source changed between the two encoding passes.
	ErrInputChanged = errors.New("huff: input changed during encoding")
	// ErrMaxDecodedSize indicates decoding stopped at the configured output limit.
	ErrMaxDecodedSize = errors.New("huff: maximum decoded size exceeded")
)

// Config holds configuration for encoders and decoders.
type Config struct {
	TreeCacheSize  int   // Number of trees kept by an Encoder (0 = no cache)
	MaxDecodedSize int64 // Decoder output limit in bytes (0 = unlimited)
}

// Option is a functional option for configuring encoders and decoders.
type Option func(*Config)

// WithTreeCache keeps up to size trees keyed by byte histogram, so an Encoder
// seeing the same distribution again skips tree construction.
func WithTreeCache(size int) Option {
	return func(c *Config) {
		c.TreeCacheSize = size
	}
}

// WithMaxDecodedSize limits the number of bytes a Decoder will produce.
func WithMaxDecodedSize(n int64) Option {
	return func(c *Config) {
		c.MaxDecodedSize = n
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Stats describes one encode or decode call. InputBytes and OutputBytes are
// seen from the call: raw to packed for an encode, packed to raw for a decode.
type Stats struct {
	InputBytes     int64
	OutputBytes    int64
	TreeBits       int64 // serialized tree, padding excluded
	PayloadBits    int64 // encoded payload, padding excluded
	TreePadding    uint8
	PayloadPadding uint8

	Table       *CodeTable
	Frequencies *FrequencyTable // set by encoders only
	Decoded     bool            // set by decoders
}

// Ratio returns uncompressed size over compressed size.
func (s *Stats) Ratio() float64 {
	raw, packed := s.InputBytes, s.OutputBytes
	if s.Decoded {
		raw, packed = s.OutputBytes, s.InputBytes
	}
	if packed == 0 {
		return 0
	}
	return float64(raw) / float64(packed)
}

var (
	defaultEncoder = NewEncoder()
	defaultDecoder = NewDecoder()
)

// Compress encodes data with a default Encoder.
func Compress(data []byte) ([]byte, error) {
	out, _, err := defaultEncoder.EncodeBytes(data)
	return out, err
}

// Decompress decodes data produced by Compress with a default Decoder.
func Decompress(data []byte) ([]byte, error) {
	out, _, err := defaultDecoder.DecodeBytes(data)
	return out, err
}
