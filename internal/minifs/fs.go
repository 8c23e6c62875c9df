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

// Package minifs implements a simplified FAT-style file system over a
// fixed-size block device. A mounted image exposes a single flat root
// directory of up to 128 files; file data lives in 4096-byte blocks
// linked through a file allocation table.
package minifs

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ostafen/minifs/internal/disk"
)

// FS is a mounted filesystem: the device plus in-memory owned copies of
// the superblock, the FAT and the root directory, and the table of open
// handles. At most one FS should exist per image; access is
// single-threaded and exclusive.
type FS struct {
	dev     *disk.Device
	sb      *Superblock
	fat     *fat
	root    *rootDir
	handles handleTable
	log     *slog.Logger
}

// Mount opens the disk image at path, validates its metadata and loads
// it into memory. A nil logger disables library logging.
func Mount(path string, log *slog.Logger) (*FS, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dev, err := disk.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDevice, err)
	}

	fsys, err := load(dev, log)
	if err != nil {
		dev.Close()
		return nil, err
	}

	log.Debug("mounted image",
		"path", path,
		"total_blocks", fsys.sb.TotalBlocks,
		"fat_blocks", fsys.sb.FATBlockCount,
		"data_blocks", fsys.sb.DataBlockCount)
	return fsys, nil
}

func load(dev *disk.Device, log *slog.Logger) (*FS, error) {
	buf := make([]byte, BlockSize)
	if err := dev.ReadBlock(0, buf); err != nil {
		return nil, err
	}

	sb, err := decodeSuperblock(buf)
	if err != nil {
		return nil, err
	}
	if err := sb.validate(dev.BlockCount()); err != nil {
		return nil, err
	}

	raw := make([]byte, int(sb.FATBlockCount)*BlockSize)
	for i := 0; i < int(sb.FATBlockCount); i++ {
		if err := dev.ReadBlock(1+i, raw[i*BlockSize:(i+1)*BlockSize]); err != nil {
			return nil, err
		}
	}
	fat, err := decodeFAT(raw, int(sb.DataBlockCount))
	if err != nil {
		return nil, err
	}

	if err := dev.ReadBlock(int(sb.RootDirBlock), buf); err != nil {
		return nil, err
	}
	root, err := decodeRootDir(buf)
	if err != nil {
		return nil, err
	}

	fsys := &FS{
		dev:  dev,
		sb:   sb,
		fat:  fat,
		root: root,
		log:  log,
	}
	fsys.handles.reset()
	return fsys, nil
}

// Unmount flushes the metadata and closes the device. It fails while
// any handle is still open.
func (fs *FS) Unmount() error {
	if fs.dev == nil {
		return ErrNotMounted
	}
	if fs.handles.anyOpen() {
		return fmt.Errorf("%w: cannot unmount", ErrFileBusy)
	}

	if err := fs.flushMeta(); err != nil {
		return err
	}

	err := fs.dev.Close()
	fs.dev = nil
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadDevice, err)
	}

	fs.log.Debug("unmounted image")
	return nil
}

func (fs *FS) mounted() bool {
	return fs.dev != nil
}

// flushMeta writes the FAT blocks and the root directory block back to
// the device. The superblock is read-only and never rewritten.
func (fs *FS) flushMeta() error {
	for i := 0; i < fs.fat.blockCount(); i++ {
		if err := fs.dev.WriteBlock(1+i, fs.fat.encodeBlock(i)); err != nil {
			return err
		}
	}
	return fs.dev.WriteBlock(int(fs.sb.RootDirBlock), fs.root.encode())
}

// dataBlock maps a FAT entry index to its absolute block index on the
// device.
func (fs *FS) dataBlock(i uint16) int {
	return int(fs.sb.DataStartBlock) + int(i)
}

// clearChain zero-fills every data block of the chain starting at head
// and releases the corresponding FAT entries. A FATEOC head is a no-op.
func (fs *FS) clearChain(head uint16) error {
	zero := make([]byte, BlockSize)

	cur := head
	for cur != FATEOC {
		if err := fs.dev.WriteBlock(fs.dataBlock(cur), zero); err != nil {
			return err
		}
		next := fs.fat.next(cur)
		fs.fat.set(cur, 0)
		cur = next
	}
	return nil
}

// Create adds an empty file named name to the root directory. No data
// block is allocated until the first write.
func (fs *FS) Create(name string) error {
	if !fs.mounted() {
		return ErrNotMounted
	}
	if err := checkFilename(name); err != nil {
		return err
	}
	if fs.root.lookup(name) >= 0 {
		return fmt.Errorf("%w: %q", ErrNameExists, name)
	}

	slot := fs.root.freeSlot()
	if slot < 0 {
		return ErrDirFull
	}

	e := &fs.root.entries[slot]
	e.setName(name)
	e.Size = 0
	e.FirstBlock = FATEOC

	fs.log.Debug("created file", "name", name, "slot", slot)
	return fs.flushMeta()
}

// Delete removes the file named name, reclaiming its chain. It fails
// while any handle references the file.
func (fs *FS) Delete(name string) error {
	if !fs.mounted() {
		return ErrNotMounted
	}

	idx := fs.root.lookup(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	if fs.handles.references(idx) {
		return fmt.Errorf("%w: %q", ErrFileBusy, name)
	}

	e := &fs.root.entries[idx]
	if err := fs.clearChain(e.FirstBlock); err != nil {
		return err
	}
	*e = dirEntry{}

	fs.log.Debug("deleted file", "name", name, "slot", idx)
	return fs.flushMeta()
}

// Open returns a file descriptor for the file named name, positioned at
// offset 0.
func (fs *FS) Open(name string) (int, error) {
	if !fs.mounted() {
		return 0, ErrNotMounted
	}

	idx := fs.root.lookup(name)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}

	fd, ok := fs.handles.open(idx)
	if !ok {
		return 0, ErrTooManyOpen
	}
	return fd, nil
}

// Close releases the file descriptor.
func (fs *FS) Close(fd int) error {
	if !fs.mounted() {
		return ErrNotMounted
	}
	if fs.handles.get(fd) == nil {
		return fmt.Errorf("%w: %d", ErrBadHandle, fd)
	}

	fs.handles.close(fd)
	return nil
}

// Stat returns the current size in bytes of the file fd refers to.
func (fs *FS) Stat(fd int) (int, error) {
	if !fs.mounted() {
		return 0, ErrNotMounted
	}

	h := fs.handles.get(fd)
	if h == nil {
		return 0, fmt.Errorf("%w: %d", ErrBadHandle, fd)
	}
	return int(fs.root.entries[h.dirIndex].Size), nil
}

// Seek repositions the handle's byte offset. Seeking past the end of
// the file is not permitted; growth happens only through Write.
func (fs *FS) Seek(fd int, offset int) error {
	if !fs.mounted() {
		return ErrNotMounted
	}

	h := fs.handles.get(fd)
	if h == nil {
		return fmt.Errorf("%w: %d", ErrBadHandle, fd)
	}

	size := int(fs.root.entries[h.dirIndex].Size)
	if offset < 0 || offset > size {
		return fmt.Errorf("%w: offset %d, file size %d", ErrSeekRange, offset, size)
	}

	h.offset = offset
	return nil
}

// Info writes the filesystem summary to w.
func (fs *FS) Info(w io.Writer) error {
	if !fs.mounted() {
		return ErrNotMounted
	}

	fmt.Fprintf(w, "FS Info:\n")
	fmt.Fprintf(w, "total_blk_count=%d\n", fs.sb.TotalBlocks)
	fmt.Fprintf(w, "fat_blk_count=%d\n", fs.sb.FATBlockCount)
	fmt.Fprintf(w, "rdir_blk=%d\n", fs.sb.RootDirBlock)
	fmt.Fprintf(w, "data_blk=%d\n", fs.sb.DataStartBlock)
	fmt.Fprintf(w, "data_blk_count=%d\n", fs.sb.DataBlockCount)
	fmt.Fprintf(w, "fat_free_ratio=%d/%d\n", fs.fat.freeCount(), fs.sb.DataBlockCount)
	fmt.Fprintf(w, "rdir_free_ratio=%d/%d\n", fs.root.freeCount(), MaxFiles)
	return nil
}

// Ls writes the directory listing to w, one line per file in directory
// order.
func (fs *FS) Ls(w io.Writer) error {
	if !fs.mounted() {
		return ErrNotMounted
	}

	fmt.Fprintf(w, "FS Ls:\n")
	for i := range fs.root.entries {
		e := &fs.root.entries[i]
		if e.isEmpty() {
			continue
		}
		fmt.Fprintf(w, "file: %s, size: %d, data_blk: %d\n", e.name(), e.Size, e.FirstBlock)
	}
	return nil
}

// FreeBlocks returns the number of unallocated data blocks.
func (fs *FS) FreeBlocks() (int, error) {
	if !fs.mounted() {
		return 0, ErrNotMounted
	}
	return fs.fat.freeCount(), nil
}

// FileInfo describes one file of a mounted image, including the
// physical extents its chain occupies within the image.
type FileInfo struct {
	Name       string
	Size       int
	FirstBlock uint16
	Extents    []Extent
}

// Files returns a snapshot of every file in directory order.
func (fs *FS) Files() ([]FileInfo, error) {
	if !fs.mounted() {
		return nil, ErrNotMounted
	}

	var files []FileInfo
	for i := range fs.root.entries {
		e := &fs.root.entries[i]
		if e.isEmpty() {
			continue
		}

		extents, err := fs.extentsOf(e)
		if err != nil {
			return nil, err
		}
		files = append(files, FileInfo{
			Name:       e.name(),
			Size:       int(e.Size),
			FirstBlock: e.FirstBlock,
			Extents:    extents,
		})
	}
	return files, nil
}
