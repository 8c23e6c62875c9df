package minifs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/minifs/internal/minifs"
	"github.com/stretchr/testify/require"
)

func TestGeometryFor(t *testing.T) {
	tests := []struct {
		total, fat, data int
	}{
		{4, 1, 1},
		{64, 1, 61},
		{2051, 1, 2048},
		{2052, 2, 2048},
		{8192, 4, 8186},
		{65535, 32, 65501},
	}

	for _, tt := range tests {
		g, err := minifs.GeometryFor(tt.total)
		require.NoError(t, err)
		require.Equal(t, tt.total, g.TotalBlocks)
		require.Equal(t, tt.fat, g.FATBlocks, "total=%d", tt.total)
		require.Equal(t, tt.data, g.DataBlocks, "total=%d", tt.total)

		// The layout must fill the device exactly.
		require.Equal(t, tt.total, 2+g.FATBlocks+g.DataBlocks)
	}
}

func TestGeometryForRejectsBadSizes(t *testing.T) {
	for _, total := range []int{-1, 0, 1, 3, 65536} {
		_, err := minifs.GeometryFor(total)
		require.Error(t, err, "total=%d", total)
	}
}

func TestFormatProducesMountableImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")

	var last int
	err := minifs.Format(path, 64, func(written, total int) {
		require.Equal(t, 64, total)
		last = written
	})
	require.NoError(t, err)
	require.Equal(t, 64, last)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(64*minifs.BlockSize), fi.Size())

	fsys, err := minifs.Mount(path, nil)
	require.NoError(t, err)

	free, err := fsys.FreeBlocks()
	require.NoError(t, err)
	require.Equal(t, 61, free)

	require.NoError(t, fsys.Unmount())
}

func TestFormatReplacesExistingFileAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0644))

	require.NoError(t, minifs.Format(path, 16, nil))

	fsys, err := minifs.Mount(path, nil)
	require.NoError(t, err)
	require.NoError(t, fsys.Unmount())
}
