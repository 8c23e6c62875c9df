package minifs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckFilename(t *testing.T) {
	require.NoError(t, checkFilename("a"))
	require.NoError(t, checkFilename(strings.Repeat("x", 15)))

	require.ErrorIs(t, checkFilename(""), ErrNameInvalid)
	require.ErrorIs(t, checkFilename(strings.Repeat("x", 16)), ErrNameInvalid)
	require.ErrorIs(t, checkFilename("a\x00b"), ErrNameInvalid)
}

func TestDirEntryName(t *testing.T) {
	var e dirEntry
	require.True(t, e.isEmpty())

	e.setName("hello")
	require.False(t, e.isEmpty())
	require.Equal(t, "hello", e.name())

	// Setting a shorter name must not leak the previous one.
	e.setName("hi")
	require.Equal(t, "hi", e.name())

	// A non-terminated field yields the full 16 bytes.
	copy(e.Filename[:], "0123456789abcdef")
	require.Equal(t, "0123456789abcdef", e.name())
}

func TestRootDirLookupAndSlots(t *testing.T) {
	var rd rootDir
	require.Equal(t, MaxFiles, rd.freeCount())
	require.Equal(t, 0, rd.freeSlot())
	require.Equal(t, -1, rd.lookup("missing"))

	rd.entries[0].setName("a")
	rd.entries[3].setName("b")

	require.Equal(t, 0, rd.lookup("a"))
	require.Equal(t, 3, rd.lookup("b"))
	require.Equal(t, 1, rd.freeSlot())
	require.Equal(t, MaxFiles-2, rd.freeCount())
}

func TestRootDirEncodeDecode(t *testing.T) {
	var rd rootDir
	rd.entries[0].setName("file")
	rd.entries[0].Size = 1234
	rd.entries[0].FirstBlock = 7
	rd.entries[127].setName("last")
	rd.entries[127].FirstBlock = FATEOC

	buf := rd.encode()
	require.Len(t, buf, BlockSize)

	decoded, err := decodeRootDir(buf)
	require.NoError(t, err)
	require.Equal(t, &rd, decoded)
}
