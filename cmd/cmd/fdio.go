package cmd

import (
	"fmt"
	"io"

	"github.com/ostafen/minifs/internal/minifs"
)

// fsFile adapts an open minifs descriptor to the standard io
// interfaces so the CLI can reuse plain copy helpers.
type fsFile struct {
	fsys *minifs.FS
	fd   int
	pos  int
}

func openFsFile(fsys *minifs.FS, name string) (*fsFile, error) {
	fd, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	return &fsFile{fsys: fsys, fd: fd}, nil
}

func (f *fsFile) Read(p []byte) (int, error) {
	n, err := f.fsys.Read(f.fd, p)
	if err != nil {
		return n, err
	}
	f.pos += n
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (f *fsFile) Write(p []byte) (int, error) {
	n, err := f.fsys.Write(f.fd, p)
	if err != nil {
		return n, err
	}
	f.pos += n
	if n < len(p) {
		// The image ran out of free blocks.
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (f *fsFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += int64(f.pos)
	case io.SeekEnd:
		size, err := f.fsys.Stat(f.fd)
		if err != nil {
			return 0, err
		}
		offset += int64(size)
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if err := f.fsys.Seek(f.fd, int(offset)); err != nil {
		return 0, err
	}
	f.pos = int(offset)
	return offset, nil
}

func (f *fsFile) Close() error {
	return f.fsys.Close(f.fd)
}
