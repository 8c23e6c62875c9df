package dfxml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ostafen/minifs/pkg/dfxml"
	"github.com/stretchr/testify/require"
)

func TestReportRoundTrip(t *testing.T) {
	source := dfxml.Source{
		ImageFilename: "disk.img",
		BlockSize:     4096,
		TotalBlocks:   64,
		ImageSize:     64 * 4096,
	}
	files := []dfxml.FileObject{
		{
			Filename:   "hello",
			FileSize:   6,
			FirstBlock: 0,
			ByteRuns: []dfxml.ByteRun{
				{Offset: 0, ImgOffset: 12288, Length: 6},
			},
		},
		{
			Filename:   "fragmented",
			FileSize:   5000,
			FirstBlock: 1,
			ByteRuns: []dfxml.ByteRun{
				{Offset: 0, ImgOffset: 16384, Length: 4096},
				{Offset: 4096, ImgOffset: 24576, Length: 904},
			},
		},
	}

	var buf bytes.Buffer

	w, err := dfxml.NewWriter(&buf, dfxml.Header{
		Metadata: dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              "minifs",
			Version:              "test",
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: source,
	})
	require.NoError(t, err)

	for _, obj := range files {
		require.NoError(t, w.WriteFile(obj))
	}
	require.NoError(t, w.Close())

	doc := buf.String()
	require.True(t, strings.HasPrefix(doc, "<?xml"))
	require.Contains(t, doc, "<dfxml xmloutputversion=\"1.0\">")
	require.Contains(t, doc, "<first_data_blk>1</first_data_blk>")

	parsedSource, parsedFiles, err := dfxml.ReadReport(&buf)
	require.NoError(t, err)
	require.Equal(t, source, parsedSource)
	require.Equal(t, files, parsedFiles)
}
