//go:build !linux
// +build !linux

package disk

import (
	"fmt"
	"os"
)

type fileReader struct {
	file   *os.File
	blocks int
}

// OpenReadOnly opens the disk image at path for read-only access
// through plain file reads.
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

	return &fileReader{file: f, blocks: int(size / BlockSize)}, nil
}

func (r *fileReader) ReadAt(p []byte, off int64) (int, error) {
	return r.file.ReadAt(p, off)
}

func (r *fileReader) BlockCount() int {
	return r.blocks
}

func (r *fileReader) Close() error {
	return r.file.Close()
}
