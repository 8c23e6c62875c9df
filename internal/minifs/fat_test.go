package minifs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFATFirstFitAllocation(t *testing.T) {
	f := newFAT(1, 8)

	for i := 0; i < 8; i++ {
		idx, ok := f.allocate()
		require.True(t, ok)
		require.Equal(t, uint16(i), idx)
		require.Equal(t, FATEOC, f.next(idx))
	}

	_, ok := f.allocate()
	require.False(t, ok)
	require.Equal(t, 0, f.freeCount())

	// Freeing entries makes the lowest one win again.
	f.set(5, 0)
	f.set(2, 0)
	require.Equal(t, 2, f.freeCount())

	idx, ok := f.allocate()
	require.True(t, ok)
	require.Equal(t, uint16(2), idx)
}

func TestFATFreeCountIgnoresPadding(t *testing.T) {
	// One FAT block indexes up to 2048 entries, but only dataBlocks of
	// them are meaningful.
	f := newFAT(1, 8)
	require.Equal(t, 8, f.freeCount())

	f.set(0, FATEOC)
	require.Equal(t, 7, f.freeCount())
}

func TestFATEncodeDecodeRoundTrip(t *testing.T) {
	f := newFAT(2, 3000)
	f.set(0, 1)
	f.set(1, 2999)
	f.set(2999, FATEOC)

	raw := append(f.encodeBlock(0), f.encodeBlock(1)...)
	require.Len(t, raw, 2*BlockSize)

	decoded, err := decodeFAT(raw, 3000)
	require.NoError(t, err)
	require.Equal(t, f.entries, decoded.entries)
	require.Equal(t, 2, decoded.blockCount())
	require.Equal(t, uint16(2999), decoded.next(1))
}
