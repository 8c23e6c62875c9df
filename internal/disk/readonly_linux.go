//go:build linux
// +build linux

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

	"golang.org/x/sys/unix"
)

// mmapReader serves ReadAt requests straight out of a shared read-only
// mapping of the image.
type mmapReader struct {
	data []byte
	file *os.File
}

// OpenReadOnly opens the disk image at path for read-only access.
// On Linux the whole image is memory-mapped, which keeps the FUSE read
// path free of read syscalls.
func OpenReadOnly(path string) (ReadOnlyDevice, error) {
	f, err := os.Open(path)
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

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("disk: failed to mmap %q: %w", path, err)
	}

	return &mmapReader{data: data, file: f}, nil
}

func (m *mmapReader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		return 0, errors.New("disk: read offset outside mapped image")
	}

	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, errors.New("disk: read past end of mapped image")
	}
	return n, nil
}

func (m *mmapReader) BlockCount() int {
	return len(m.data) / BlockSize
}

func (m *mmapReader) Close() error {
	var err error
	if m.data != nil {
		err = unix.Munmap(m.data)
		m.data = nil
	}
	if m.file != nil {
		if cerr := m.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		m.file = nil
	}
	return err
}
