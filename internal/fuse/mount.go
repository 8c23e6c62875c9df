//go:build !linux
// +build !linux

package fuse

import (
	"fmt"
	"io"

	"github.com/ostafen/minifs/internal/minifs"
)

func Mount(mountpoint string, r io.ReaderAt, files []minifs.FileInfo) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
