// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/env"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/ostafen/minifs/pkg/dfxml"
	"github.com/spf13/cobra"
)

func DefineExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <image>",
		Short: "Write a DFXML index of the files stored in an image",
		Long: `The 'export' command resolves every file's FAT chain into physical byte
runs and writes a DFXML document describing them. The report can be fed to
forensic tooling, or back to the 'mount' command of other recovery tools.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunExport,
	}

	cmd.Flags().StringP("output", "o", "", "the path of the report file (defaults to <image>.report.xml)")
	return cmd
}

func RunExport(cmd *cobra.Command, args []string) error {
	path := disk.NormalizeVolumePath(args[0])

	fsys, err := minifs.Mount(path, loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	files, err := fsys.Files()
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = args[0] + ".report.xml"
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create report file %q: %w", output, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeReport(w, path, files); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("[INFO] Files exported: \t%d\n", len(files))
	fmt.Printf("[INFO] Report saved to: \t%s\n", output)
	return nil
}

func writeReport(w *bufio.Writer, imagePath string, files []minifs.FileInfo) error {
	imageSize := uint64(0)
	if fi, err := os.Stat(imagePath); err == nil {
		imageSize = uint64(fi.Size())
	}

	rw, err := dfxml.NewWriter(w, dfxml.Header{
		Metadata: dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              AppName,
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: imagePath,
			BlockSize:     minifs.BlockSize,
			TotalBlocks:   int(imageSize / minifs.BlockSize),
			ImageSize:     imageSize,
		},
	})
	if err != nil {
		return err
	}

	for _, file := range files {
		runs := make([]dfxml.ByteRun, 0, len(file.Extents))

		logical := uint64(0)
		for _, ext := range file.Extents {
			runs = append(runs, dfxml.ByteRun{
				Offset:    logical,
				ImgOffset: uint64(ext.Offset),
				Length:    uint64(ext.Length),
			})
			logical += uint64(ext.Length)
		}

		err := rw.WriteFile(dfxml.FileObject{
			Filename:   file.Name,
			FileSize:   uint64(file.Size),
			FirstBlock: file.FirstBlock,
			ByteRuns:   runs,
		})
		if err != nil {
			return err
		}
	}
	return rw.Close()
}
