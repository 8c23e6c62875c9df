package disk

import "io"

// ReadOnlyDevice is the read-side view of a disk image, used by
// consumers that never mutate it (the FUSE adapter).
type ReadOnlyDevice interface {
	io.ReaderAt
	io.Closer

	// BlockCount returns the total number of BlockSize sectors.
	BlockCount() int
}
