package reader_test

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/ostafen/minifs/pkg/reader"
	"github.com/stretchr/testify/require"
)

// chunked splits data into extents of the given sizes laid out
// back-to-front in a backing buffer, so logical and physical order
// disagree the way a fragmented FAT chain's do.
func chunked(data []byte, sizes ...int) (io.ReaderAt, []reader.Extent) {
	backing := make([]byte, len(data))
	extents := make([]reader.Extent, 0, len(sizes))

	pos := 0
	off := len(data)
	for _, size := range sizes {
		off -= size
		copy(backing[off:], data[pos:pos+size])
		extents = append(extents, reader.Extent{Offset: int64(off), Length: int64(size)})
		pos += size
	}
	return bytes.NewReader(backing), extents
}

func TestExtentReaderSequential(t *testing.T) {
	data := []byte("0123456789abcdefghijklmnopqrstuvwxyz")
	src, extents := chunked(data, 10, 1, 17, 8)

	r := reader.NewExtentReader(src, extents)
	require.Equal(t, int64(len(data)), r.Size())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestExtentReaderReadAt(t *testing.T) {
	data := []byte("0123456789abcdefghijklmnopqrstuvwxyz")
	src, extents := chunked(data, 7, 13, 16)
	r := reader.NewExtentReader(src, extents)

	// Reads crossing extent boundaries.
	buf := make([]byte, 10)
	n, err := r.ReadAt(buf, 5)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, data[5:15], buf)

	// A read running past the end is truncated with io.EOF.
	n, err = r.ReadAt(buf, int64(len(data))-4)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 4, n)
	require.Equal(t, data[len(data)-4:], buf[:4])

	// Reads at or past the end transfer nothing.
	n, err = r.ReadAt(buf, int64(len(data)))
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 0, n)

	_, err = r.ReadAt(buf, -1)
	require.Error(t, err)
}

func TestExtentReaderRandomSeek(t *testing.T) {
	data := make([]byte, 10*1024)
	rng := rand.New(rand.NewSource(42))
	rng.Read(data)

	// Random fragmentation.
	var sizes []int
	for left := len(data); left > 0; {
		size := min(rng.Intn(1024)+1, left)
		sizes = append(sizes, size)
		left -= size
	}
	src, extents := chunked(data, sizes...)
	r := reader.NewExtentReader(src, extents)

	buf := make([]byte, 64)
	for trial := 0; trial < 1000; trial++ {
		offset := rng.Intn(len(data))
		readLen := min(rng.Intn(63)+1, len(data)-offset)

		_, err := r.Seek(int64(offset), io.SeekStart)
		require.NoError(t, err)

		n, err := r.Read(buf[:readLen])
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
		}
		require.Equal(t, readLen, n, "trial %d: offset %d", trial, offset)
		require.Equal(t, data[offset:offset+readLen], buf[:n], "trial %d: offset %d", trial, offset)
	}
}

func TestExtentReaderEmpty(t *testing.T) {
	r := reader.NewExtentReader(bytes.NewReader(nil), nil)
	require.Equal(t, int64(0), r.Size())

	n, err := r.Read(make([]byte, 8))
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 0, n)
}

func TestBlockReader(t *testing.T) {
	data := []byte("0123456789abcdefghijklmnopqrstuvwxyz")
	b := reader.NewBlockReader(bytes.NewReader(data), 8)

	// Byte-at-a-time reads drain the stream in order.
	var out []byte
	one := make([]byte, 1)
	for {
		n, err := b.Read(one)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, one[:n]...)
	}
	require.Equal(t, data, out)
}

func TestBlockReaderSeek(t *testing.T) {
	data := []byte("0123456789abcdefghijklmnopqrstuvwxyz")
	b := reader.NewBlockReader(bytes.NewReader(data), 8)

	// Consume a few bytes so the buffer holds unread data, then seek
	// relative to the logical position.
	buf := make([]byte, 3)
	_, err := io.ReadFull(b, buf)
	require.NoError(t, err)

	pos, err := b.Seek(2, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(5), pos)

	_, err = io.ReadFull(b, buf)
	require.NoError(t, err)
	require.Equal(t, data[5:8], buf)

	pos, err = b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)

	_, err = io.ReadFull(b, buf)
	require.NoError(t, err)
	require.Equal(t, data[:3], buf)
}

func TestBlockReaderLargeReadBypassesBuffer(t *testing.T) {
	data := bytes.Repeat([]byte{0x5A}, 64)
	b := reader.NewBlockReader(bytes.NewReader(data), 8)

	buf := make([]byte, 32)
	n, err := b.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 32, n)
	require.Equal(t, data[:32], buf)
}
