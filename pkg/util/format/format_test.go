package format_test

import (
	"testing"

	"github.com/ostafen/minifs/pkg/util/format"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "0B", format.FormatBytes(0))
	require.Equal(t, "512B", format.FormatBytes(512))
	require.Equal(t, "4KB", format.FormatBytes(4096))
	require.Equal(t, "1.50KB", format.FormatBytes(1536))
	require.Equal(t, "32MB", format.FormatBytes(32*1024*1024))
	require.Equal(t, "2GB", format.FormatBytes(2*1024*1024*1024))
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"4096", 4096},
		{"512B", 512},
		{"4KB", 4096},
		{"4kb", 4096},
		{" 32MB ", 32 * 1024 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"1TB", 1024 * 1024 * 1024 * 1024},
	}

	for _, tt := range tests {
		got, err := format.ParseBytes(tt.in)
		require.NoError(t, err, "input=%q", tt.in)
		require.Equal(t, tt.want, got, "input=%q", tt.in)
	}

	for _, in := range []string{"", "abc", "12XB", "-1"} {
		_, err := format.ParseBytes(in)
		require.Error(t, err, "input=%q", in)
	}
}
