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
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ostafen/minifs/internal/disk"
)

// BlockSize is the size of every on-disk block, re-exported from the
// device layer so library consumers need only this package.
const BlockSize = disk.BlockSize

// signature identifies a minifs image. It occupies the first 8 bytes of
// block 0.
var signature = [8]byte{'E', 'C', 'S', '1', '5', '0', 'F', 'S'}

// Superblock is the metadata block stored at image block 0. The struct
// maps byte-for-byte onto the on-disk layout; all multi-byte fields are
// little-endian. It is read-only after mount and never flushed back.
type Superblock struct {
	Signature      [8]byte // 0x00 must equal "ECS150FS"
	TotalBlocks    uint16  // 0x08 total number of blocks on the device
	RootDirBlock   uint16  // 0x0A index of the root directory block
	DataStartBlock uint16  // 0x0C index of the first data block
	DataBlockCount uint16  // 0x0E number of data blocks
	FATBlockCount  uint8   // 0x10 number of FAT blocks
	Padding        [4079]byte
}

func decodeSuperblock(data []byte) (*Superblock, error) {
	if len(data) != BlockSize {
		return nil, fmt.Errorf("superblock slice size mismatch: expected %d bytes, got %d bytes",
			BlockSize, len(data))
	}

	var sb Superblock
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &sb); err != nil {
		return nil, fmt.Errorf("error decoding superblock: %w", err)
	}

	if sb.Signature != signature {
		return nil, fmt.Errorf("%w: got %q", ErrBadSignature, sb.Signature[:])
	}
	return &sb, nil
}

// validate cross-checks the superblock's structural counts against the
// device geometry.
func (sb *Superblock) validate(deviceBlocks int) error {
	if int(sb.TotalBlocks) != deviceBlocks {
		return fmt.Errorf("%w: superblock declares %d blocks, device has %d",
			ErrBadDevice, sb.TotalBlocks, deviceBlocks)
	}

	// Layout is superblock, FAT blocks, root directory, then data.
	metaBlocks := int(sb.FATBlockCount) + 2
	if metaBlocks+int(sb.DataBlockCount) > int(sb.TotalBlocks) {
		return fmt.Errorf("%w: %d metadata blocks + %d data blocks exceed %d total",
			ErrBadDevice, metaBlocks, sb.DataBlockCount, sb.TotalBlocks)
	}
	if int(sb.RootDirBlock) != int(sb.FATBlockCount)+1 {
		return fmt.Errorf("%w: root directory block %d, expected %d",
			ErrBadDevice, sb.RootDirBlock, sb.FATBlockCount+1)
	}
	if int(sb.DataStartBlock) != int(sb.RootDirBlock)+1 {
		return fmt.Errorf("%w: data start block %d, expected %d",
			ErrBadDevice, sb.DataStartBlock, sb.RootDirBlock+1)
	}
	if int(sb.DataBlockCount) > int(sb.FATBlockCount)*fatEntriesPerBlock {
		return fmt.Errorf("%w: %d FAT blocks cannot index %d data blocks",
			ErrBadDevice, sb.FATBlockCount, sb.DataBlockCount)
	}
	return nil
}

func (sb *Superblock) encode() []byte {
	var buf bytes.Buffer
	buf.Grow(BlockSize)

	// The struct is exactly one block; binary.Write cannot fail on a Buffer.
	_ = binary.Write(&buf, binary.LittleEndian, sb)
	return buf.Bytes()
}
