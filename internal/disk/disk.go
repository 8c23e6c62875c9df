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
package disk

import (
	"errors"
	"fmt"
	"os"
)

// BlockSize is the fixed size of a device sector in bytes.
// Every transfer to or from a Device moves exactly one block.
const BlockSize = 4096

var (
	ErrOutOfRange = errors.New("disk: block index out of range")
	ErrShortBlock = errors.New("disk: buffer is not exactly one block")
)

// Device is a fixed-size random-access block device backed by a disk
// image file. The image size must be an exact multiple of BlockSize.
type Device struct {
	path   string
	file   *os.File
	blocks int
}

// Open opens the disk image at path for read-write block access.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("disk: failed to open %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("disk: failed to stat %q: %w", path, err)
	}

	size := fi.Size()
	if size == 0 || size%BlockSize != 0 {
		f.Close()
		return nil, fmt.Errorf("disk: image %q size %d is not a positive multiple of %d", path, size, BlockSize)
	}

	return &Device{
		path:   path,
		file:   f,
		blocks: int(size / BlockSize),
	}, nil
}

// Path returns the path the device was opened with.
func (d *Device) Path() string {
	return d.path
}

// BlockCount returns the total number of BlockSize sectors on the device.
func (d *Device) BlockCount() int {
	return d.blocks
}

// ReadBlock reads the block at the given index into buf.
// The buffer must be exactly BlockSize bytes long.
func (d *Device) ReadBlock(index int, buf []byte) error {
	if len(buf) != BlockSize {
		return ErrShortBlock
	}
	if index < 0 || index >= d.blocks {
		return fmt.Errorf("%w: %d (device has %d blocks)", ErrOutOfRange, index, d.blocks)
	}

	if _, err := d.file.ReadAt(buf, int64(index)*BlockSize); err != nil {
		return fmt.Errorf("disk: read of block %d failed: %w", index, err)
	}
	return nil
}

// WriteBlock writes buf to the block at the given index.
// The buffer must be exactly BlockSize bytes long.
func (d *Device) WriteBlock(index int, buf []byte) error {
	if len(buf) != BlockSize {
		return ErrShortBlock
	}
	if index < 0 || index >= d.blocks {
		return fmt.Errorf("%w: %d (device has %d blocks)", ErrOutOfRange, index, d.blocks)
	}

	if _, err := d.file.WriteAt(buf, int64(index)*BlockSize); err != nil {
		return fmt.Errorf("disk: write of block %d failed: %w", index, err)
	}
	return nil
}

// Close closes the underlying image file.
func (d *Device) Close() error {
	if d.file == nil {
		return nil
	}

	err := d.file.Close()
	d.file = nil
	if err != nil {
		return fmt.Errorf("disk: failed to close %q: %w", d.path, err)
	}
	return nil
}
