package bitstream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBits(t *testing.T, w *Writer, bits string) {
	t.Helper()
	for _, c := range bits {
		require.NoError(t, w.WriteBit(c == '1'))
	}
}

func TestWriterPacksMSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	writeBits(t, w, "10110001")
	writeBits(t, w, "111")
	pad, err := w.Align()
	require.NoError(t, err)

	assert.Equal(t, uint8(5), pad)
	assert.Equal(t, []byte{0xB1, 0xE0}, buf.Bytes())
	assert.Equal(t, int64(16), w.BitsWritten())
}

func TestWriterAlignOnBoundary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	pad, err := w.Align()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), pad)
	assert.Empty(t, buf.Bytes())

	require.NoError(t, w.WriteByte(0x5A))
	pad, err = w.Align()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), pad)
	assert.Equal(t, []byte{0x5A}, buf.Bytes())
}

func TestWriteByteUnaligned(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	writeBits(t, w, "1")
	require.NoError(t, w.WriteByte(0xFF))
	pad, err := w.Align()
	require.NoError(t, err)

	assert.Equal(t, uint8(7), pad)
	assert.Equal(t, []byte{0xFF, 0x80}, buf.Bytes())
}

func TestWriteBitsWide(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBits(0x0123456789ABCDEF, 64))
	require.NoError(t, w.WriteBits(0x5, 3))
	require.NoError(t, w.Close())

	r := NewReader(bytes.NewReader(buf.Bytes()))
	got, err := r.ReadBits(64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0123456789ABCDEF), got)
	got, err = r.ReadBits(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x5), got)
}

func TestReaderBits(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xB1, 0xE0}))

	want := "1011000111100000"
	for i, c := range want {
		bit, err := r.ReadBit()
		require.NoError(t, err, "bit %d", i)
		assert.Equal(t, c == '1', bit, "bit %d", i)
	}
	assert.True(t, r.Aligned())
	assert.Equal(t, int64(16), r.BitsRead())

	_, err := r.ReadBit()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEndOfStream))
}

func TestReaderByteAcrossBoundary(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x0F, 0xF0}))

	require.NoError(t, r.Skip(4))
	assert.False(t, r.Aligned())

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), b)

	_, err = r.ReadByte()
	assert.True(t, errors.Is(err, ErrEndOfStream))
}

func TestReaderEmptySource(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.ReadByte()
	assert.True(t, errors.Is(err, ErrEndOfStream))
}

type failingWriter struct{}

var errSink = errors.New("sink failed")

func (failingWriter) Write(p []byte) (int, error) { return 0, errSink }

func TestWriterPropagatesSinkErrors(t *testing.T) {
	w := NewWriter(failingWriter{})
	require.NoError(t, w.WriteByte(0x01))

	_, err := w.Align()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSink))
}

func TestRoundTripMixed(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	pattern := []bool{true, false, false, true, true}
	for i := 0; i < 37; i++ {
		require.NoError(t, w.WriteBit(pattern[i%len(pattern)]))
		if i%7 == 0 {
			require.NoError(t, w.WriteByte(byte(i)))
		}
	}
	pad, err := w.Align()
	require.NoError(t, err)
	total := w.BitsWritten()
	assert.Zero(t, total%8)
	assert.Equal(t, int64(buf.Len()*8), total)

	r := NewReader(bytes.NewReader(buf.Bytes()))
	for i := 0; i < 37; i++ {
		bit, err := r.ReadBit()
		require.NoError(t, err)
		require.Equal(t, pattern[i%len(pattern)], bit, "bit %d", i)
		if i%7 == 0 {
			b, err := r.ReadByte()
			require.NoError(t, err)
			require.Equal(t, byte(i), b)
		}
	}
	require.NoError(t, r.Skip(pad))
	assert.True(t, r.Aligned())
}
