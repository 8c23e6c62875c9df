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
	"fmt"

	"github.com/ostafen/minifs/internal/minifs"
	"github.com/ostafen/minifs/pkg/pbar"
	"github.com/ostafen/minifs/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineMkfsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mkfs <image>",
		Short:        "Create a new empty filesystem image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMkfs,
	}

	cmd.Flags().IntP("blocks", "b", 0, "image size in 4096-byte blocks")
	cmd.Flags().StringP("size", "s", "", "image size in bytes (e.g. 32MB); rounded down to whole blocks")
	return cmd
}

func RunMkfs(cmd *cobra.Command, args []string) error {
	path := args[0]

	blocks, err := blocksFromFlags(cmd)
	if err != nil {
		return err
	}

	g, err := minifs.GeometryFor(blocks)
	if err != nil {
		return err
	}

	bar := pbar.NewProgressBarState(int64(blocks) * minifs.BlockSize)
	err = minifs.Format(path, blocks, func(written, total int) {
		bar.ProcessedBytes = int64(written) * minifs.BlockSize
		bar.Render(written == total)
	})
	bar.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("[INFO] Created image: \t%s\n", path)
	fmt.Printf("[INFO] Image size: \t%s\n", format.FormatBytes(int64(blocks)*minifs.BlockSize))
	fmt.Printf("[INFO] FAT blocks: \t%d\n", g.FATBlocks)
	fmt.Printf("[INFO] Data blocks: \t%d\n", g.DataBlocks)
	return nil
}

func blocksFromFlags(cmd *cobra.Command) (int, error) {
	blocks, _ := cmd.Flags().GetInt("blocks")
	size, _ := cmd.Flags().GetString("size")

	if blocks > 0 && size != "" {
		return 0, fmt.Errorf("--blocks and --size are mutually exclusive")
	}
	if blocks > 0 {
		return blocks, nil
	}
	if size == "" {
		return 0, fmt.Errorf("either --blocks or --size is required")
	}

	bytes, err := format.ParseBytes(size)
	if err != nil {
		return 0, err
	}
	return int(bytes / minifs.BlockSize), nil
}
