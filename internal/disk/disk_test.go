package disk_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/stretchr/testify/require"
)

func newImage(t *testing.T, blocks int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, make([]byte, blocks*disk.BlockSize), 0644))
	return path
}

func TestOpenRejectsUnalignedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, make([]byte, disk.BlockSize+1), 0644))

	_, err := disk.Open(path)
	require.Error(t, err)
}

func TestOpenRejectsEmptyImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := disk.Open(path)
	require.Error(t, err)
}

func TestOpenMissingImage(t *testing.T) {
	_, err := disk.Open(filepath.Join(t.TempDir(), "nope.img"))
	require.Error(t, err)
}

func TestReadWriteBlock(t *testing.T) {
	dev, err := disk.Open(newImage(t, 4))
	require.NoError(t, err)
	defer dev.Close()

	require.Equal(t, 4, dev.BlockCount())

	in := bytes.Repeat([]byte{0xC3}, disk.BlockSize)
	require.NoError(t, dev.WriteBlock(2, in))

	out := make([]byte, disk.BlockSize)
	require.NoError(t, dev.ReadBlock(2, out))
	require.Equal(t, in, out)

	// Neighboring blocks stay untouched.
	require.NoError(t, dev.ReadBlock(1, out))
	require.Equal(t, make([]byte, disk.BlockSize), out)
}

func TestBlockIndexBounds(t *testing.T) {
	dev, err := disk.Open(newImage(t, 2))
	require.NoError(t, err)
	defer dev.Close()

	buf := make([]byte, disk.BlockSize)
	require.ErrorIs(t, dev.ReadBlock(-1, buf), disk.ErrOutOfRange)
	require.ErrorIs(t, dev.ReadBlock(2, buf), disk.ErrOutOfRange)
	require.ErrorIs(t, dev.WriteBlock(2, buf), disk.ErrOutOfRange)

	require.ErrorIs(t, dev.ReadBlock(0, buf[:10]), disk.ErrShortBlock)
	require.ErrorIs(t, dev.WriteBlock(0, buf[:10]), disk.ErrShortBlock)
}

func TestOpenReadOnly(t *testing.T) {
	path := newImage(t, 2)

	dev, err := disk.Open(path)
	require.NoError(t, err)
	block := bytes.Repeat([]byte{0x7E}, disk.BlockSize)
	require.NoError(t, dev.WriteBlock(1, block))
	require.NoError(t, dev.Close())

	r, err := disk.OpenReadOnly(path)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 2, r.BlockCount())

	out := make([]byte, 16)
	_, err = r.ReadAt(out, disk.BlockSize)
	require.NoError(t, err)
	require.Equal(t, block[:16], out)
}
