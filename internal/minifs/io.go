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

import "fmt"

// Read copies up to len(p) bytes from the handle's current offset into
// p and advances the offset. Reads are clamped at end of file; a read
// starting at or past the end transfers nothing.
func (fs *FS) Read(fd int, p []byte) (int, error) {
	if !fs.mounted() {
		return 0, ErrNotMounted
	}

	h := fs.handles.get(fd)
	if h == nil {
		return 0, fmt.Errorf("%w: %d", ErrBadHandle, fd)
	}

	e := &fs.root.entries[h.dirIndex]
	size := int(e.Size)
	start := h.offset
	if len(p) == 0 || start >= size {
		return 0, nil
	}

	count := len(p)
	if start+count > size {
		count = size - start
	}
	final := start + count - 1

	var bounce []byte
	transferred := 0

	cur := e.FirstBlock
	for k := 0; ; k++ {
		blockStart := k * BlockSize
		blockEnd := blockStart + BlockSize - 1

		if blockEnd < start {
			cur = fs.fat.next(cur)
			continue
		}

		inStart := 0
		if start > blockStart {
			inStart = start - blockStart
		}
		inEnd := BlockSize - 1
		if final < blockEnd {
			inEnd = final - blockStart
		}

		if inStart == 0 && inEnd == BlockSize-1 {
			// Full block: transfer straight into the destination.
			if err := fs.dev.ReadBlock(fs.dataBlock(cur), p[transferred:transferred+BlockSize]); err != nil {
				return transferred, err
			}
		} else {
			if bounce == nil {
				bounce = make([]byte, BlockSize)
			}
			if err := fs.dev.ReadBlock(fs.dataBlock(cur), bounce); err != nil {
				return transferred, err
			}
			copy(p[transferred:], bounce[inStart:inEnd+1])
		}
		transferred += inEnd - inStart + 1

		if blockEnd >= final {
			break
		}
		cur = fs.fat.next(cur)
	}

	h.offset += transferred
	return transferred, nil
}

// Write copies len(p) bytes from p into the file at the handle's
// current offset, growing the chain on demand. When the disk fills up
// mid-write, the bytes written so far are kept and their count is
// returned with a nil error.
func (fs *FS) Write(fd int, p []byte) (int, error) {
	if !fs.mounted() {
		return 0, ErrNotMounted
	}

	h := fs.handles.get(fd)
	if h == nil {
		return 0, fmt.Errorf("%w: %d", ErrBadHandle, fd)
	}
	if len(p) == 0 {
		return 0, nil
	}

	e := &fs.root.entries[h.dirIndex]
	start := h.offset
	count := len(p)
	final := start + count - 1

	var bounce []byte
	written := 0

	var prev uint16
	hasPrev := false
	cur := e.FirstBlock

	for k := 0; written < count; k++ {
		fresh := false
		if cur == FATEOC {
			idx, ok := fs.fat.allocate()
			if !ok {
				// Disk full: keep what was written so far.
				fs.log.Debug("allocation failed, truncating write", "written", written)
				break
			}
			if hasPrev {
				fs.fat.set(prev, idx)
			} else {
				e.FirstBlock = idx
			}
			cur = idx
			fresh = true
		}

		blockStart := k * BlockSize
		blockEnd := blockStart + BlockSize - 1

		if blockEnd < start {
			prev, hasPrev = cur, true
			cur = fs.fat.next(cur)
			continue
		}

		inStart := 0
		if start > blockStart {
			inStart = start - blockStart
		}
		inEnd := BlockSize - 1
		if final < blockEnd {
			inEnd = final - blockStart
		}
		n := inEnd - inStart + 1

		if n == BlockSize {
			if err := fs.dev.WriteBlock(fs.dataBlock(cur), p[written:written+BlockSize]); err != nil {
				return written, err
			}
		} else {
			// Partial block: read-modify-write through the bounce
			// buffer. A freshly allocated block has unspecified
			// contents, so it is zero-filled instead of read.
			if bounce == nil {
				bounce = make([]byte, BlockSize)
			}
			if fresh {
				clear(bounce)
			} else if err := fs.dev.ReadBlock(fs.dataBlock(cur), bounce); err != nil {
				return written, err
			}
			copy(bounce[inStart:inEnd+1], p[written:written+n])
			if err := fs.dev.WriteBlock(fs.dataBlock(cur), bounce); err != nil {
				return written, err
			}
		}
		written += n

		if blockEnd >= final {
			break
		}
		prev, hasPrev = cur, true
		cur = fs.fat.next(cur)
	}

	h.offset = start + written
	if start+written > int(e.Size) {
		e.Size = uint32(start + written)
	}

	if err := fs.flushMeta(); err != nil {
		return written, err
	}
	return written, nil
}
