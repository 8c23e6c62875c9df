package minifs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSuperblock() *Superblock {
	return &Superblock{
		Signature:      signature,
		TotalBlocks:    64,
		RootDirBlock:   2,
		DataStartBlock: 3,
		DataBlockCount: 61,
		FATBlockCount:  1,
	}
}

func TestSuperblockEncodeDecode(t *testing.T) {
	sb := testSuperblock()
	sb.Padding[0] = 0xAA
	sb.Padding[4078] = 0xBB

	buf := sb.encode()
	require.Len(t, buf, BlockSize)

	decoded, err := decodeSuperblock(buf)
	require.NoError(t, err)
	require.Equal(t, sb, decoded)
}

func TestDecodeSuperblockRejectsBadSignature(t *testing.T) {
	buf := testSuperblock().encode()
	buf[3] = 'X'

	_, err := decodeSuperblock(buf)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestDecodeSuperblockRejectsShortBuffer(t *testing.T) {
	_, err := decodeSuperblock(make([]byte, BlockSize-1))
	require.Error(t, err)
}

func TestSuperblockValidate(t *testing.T) {
	require.NoError(t, testSuperblock().validate(64))

	// Device size disagreement.
	require.ErrorIs(t, testSuperblock().validate(65), ErrBadDevice)

	// Data region overflowing the device.
	sb := testSuperblock()
	sb.DataBlockCount = 62
	require.ErrorIs(t, sb.validate(64), ErrBadDevice)

	// Misplaced root directory.
	sb = testSuperblock()
	sb.RootDirBlock = 3
	require.ErrorIs(t, sb.validate(64), ErrBadDevice)

	// Misplaced data region.
	sb = testSuperblock()
	sb.DataStartBlock = 4
	require.ErrorIs(t, sb.validate(64), ErrBadDevice)

	// More data blocks than the FAT can index.
	sb = testSuperblock()
	sb.TotalBlocks = 4096
	sb.DataBlockCount = 3000
	require.ErrorIs(t, sb.validate(4096), ErrBadDevice)
}
