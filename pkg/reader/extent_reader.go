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
package reader

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Extent is a contiguous run of bytes within a backing store. A file's
// FAT chain resolves to one extent per run of adjacent data blocks, in
// chain order.
type Extent struct {
	Offset int64
	Length int64
}

// ExtentReader presents a file scattered across extents of a disk
// image as one contiguous, seekable stream. Logical byte i of the file
// lives at extents[k].Offset + (i - start of extent k) in the image.
type ExtentReader struct {
	src     io.ReaderAt
	extents []Extent
	ends    []int64 // cumulative logical end offset of each extent
	pos     int64
	size    int64
}

// NewExtentReader builds a reader over the given extents of src. The
// extents are read in the order given; an empty slice yields an empty
// stream.
func NewExtentReader(src io.ReaderAt, extents []Extent) *ExtentReader {
	ends := make([]int64, len(extents))

	size := int64(0)
	for i, e := range extents {
		size += e.Length
		ends[i] = size
	}

	return &ExtentReader{
		src:     src,
		extents: extents,
		ends:    ends,
		size:    size,
	}
}

// Size returns the total logical length of the stream.
func (r *ExtentReader) Size() int64 {
	return r.size
}

// ReadAt reads from logical offset off, crossing extent boundaries as
// needed. It returns io.EOF when the requested range extends past the
// last extent.
func (r *ExtentReader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("ExtentReader.ReadAt: negative offset")
	}

	read := 0
	for read < len(p) && off < r.size {
		// Locate the extent holding logical offset off.
		i := sort.Search(len(r.ends), func(i int) bool {
			return r.ends[i] > off
		})

		logicalStart := int64(0)
		if i > 0 {
			logicalStart = r.ends[i-1]
		}
		within := off - logicalStart

		n := int64(len(p) - read)
		if rem := r.extents[i].Length - within; n > rem {
			n = rem
		}

		m, err := r.src.ReadAt(p[read:read+int(n)], r.extents[i].Offset+within)
		read += m
		off += int64(m)
		if err != nil {
			return read, err
		}
	}

	if read < len(p) {
		return read, io.EOF
	}
	return read, nil
}

func (r *ExtentReader) Read(p []byte) (int, error) {
	n, err := r.ReadAt(p, r.pos)
	r.pos += int64(n)
	return n, err
}

func (r *ExtentReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.pos
	case io.SeekEnd:
		offset += r.size
	default:
		return -1, fmt.Errorf("ExtentReader.Seek: invalid whence (%d)", whence)
	}

	if offset < 0 {
		return -1, errors.New("ExtentReader.Seek: negative position")
	}

	r.pos = offset
	return offset, nil
}
