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
package minifs

import (
	"bufio"
	"fmt"
	"math"

	"github.com/google/renameio"
)

// Geometry is the block layout of a formatted image.
type Geometry struct {
	TotalBlocks int
	FATBlocks   int
	DataBlocks  int
}

// minTotalBlocks is the smallest formattable image: superblock, one FAT
// block, the root directory and a single data block.
const minTotalBlocks = 4

// GeometryFor computes the layout of an image with the given total
// block count: the number of FAT blocks is the smallest that can index
// the remaining data blocks.
func GeometryFor(totalBlocks int) (Geometry, error) {
	if totalBlocks < minTotalBlocks {
		return Geometry{}, fmt.Errorf("image needs at least %d blocks, got %d", minTotalBlocks, totalBlocks)
	}
	if totalBlocks > math.MaxUint16 {
		return Geometry{}, fmt.Errorf("image cannot exceed %d blocks, got %d", math.MaxUint16, totalBlocks)
	}

	fatBlocks := 1
	for {
		dataBlocks := totalBlocks - 2 - fatBlocks
		if dataBlocks < 1 {
			return Geometry{}, fmt.Errorf("no room for data blocks in a %d-block image", totalBlocks)
		}

		need := (dataBlocks + fatEntriesPerBlock - 1) / fatEntriesPerBlock
		if need <= fatBlocks {
			return Geometry{
				TotalBlocks: totalBlocks,
				FATBlocks:   fatBlocks,
				DataBlocks:  dataBlocks,
			}, nil
		}
		fatBlocks = need
	}
}

// Format creates a fresh, empty image of totalBlocks blocks at path.
// The image is written to a temporary file and published atomically, so
// a crash mid-format never leaves a truncated image behind. The
// optional progress callback is invoked after every written block.
func Format(path string, totalBlocks int, progress func(written, total int)) error {
	g, err := GeometryFor(totalBlocks)
	if err != nil {
		return err
	}

	sb := &Superblock{
		Signature:      signature,
		TotalBlocks:    uint16(g.TotalBlocks),
		RootDirBlock:   uint16(g.FATBlocks + 1),
		DataStartBlock: uint16(g.FATBlocks + 2),
		DataBlockCount: uint16(g.DataBlocks),
		FATBlockCount:  uint8(g.FATBlocks),
	}

	t, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("failed to create temporary image for %q: %w", path, err)
	}
	defer t.Cleanup()

	w := bufio.NewWriterSize(t, 1024*1024)
	if _, err := w.Write(sb.encode()); err != nil {
		return err
	}
	if progress != nil {
		progress(1, g.TotalBlocks)
	}

	// FAT, root directory and data blocks all start out zeroed.
	zero := make([]byte, BlockSize)
	for i := 1; i < g.TotalBlocks; i++ {
		if _, err := w.Write(zero); err != nil {
			return err
		}
		if progress != nil {
			progress(i+1, g.TotalBlocks)
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return t.CloseAtomicallyReplace()
}
