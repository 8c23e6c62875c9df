package reader

import "io"

// BlockReader reads src through a block-sized buffer, so that
// byte-at-a-time consumers still hit the underlying store one full
// block at a time. Reads at least as large as the buffer bypass it.
type BlockReader struct {
	src  io.ReadSeeker
	buf  []byte
	r, w int // unread window within buf
}

func NewBlockReader(src io.ReadSeeker, blockSize int) *BlockReader {
	return &BlockReader{
		src: src,
		buf: make([]byte, blockSize),
	}
}

func (b *BlockReader) Read(p []byte) (int, error) {
	if b.r == b.w {
		if len(p) >= len(b.buf) {
			return b.src.Read(p)
		}

		n, err := b.src.Read(b.buf)
		if n == 0 {
			if err == nil {
				err = io.EOF
			}
			return 0, err
		}
		b.r, b.w = 0, n
	}

	n := copy(p, b.buf[b.r:b.w])
	b.r += n
	return n, nil
}

// Seek discards the buffered window and repositions the underlying
// source. SeekCurrent is adjusted for the bytes buffered but not yet
// consumed.
func (b *BlockReader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent {
		offset -= int64(b.w - b.r)
	}

	pos, err := b.src.Seek(offset, whence)
	if err != nil {
		return pos, err
	}

	b.r, b.w = 0, 0
	return pos, nil
}
