package minifs

import "fmt"

// Extent is a contiguous run of file data within the image, addressed
// in absolute image bytes.
type Extent struct {
	Offset int64
	Length int64
}

// chainBlocks walks the FAT chain starting at head and returns the
// visited entry indices. Chains longer than the data region indicate a
// cycle and are rejected.
func (fs *FS) chainBlocks(head uint16) ([]uint16, error) {
	if head == FATEOC {
		return nil, nil
	}

	var blocks []uint16
	cur := head
	for cur != FATEOC {
		if len(blocks) >= fs.fat.dataBlocks {
			return nil, fmt.Errorf("%w: FAT chain from %d does not terminate", ErrBadDevice, head)
		}
		if int(cur) >= fs.fat.dataBlocks {
			return nil, fmt.Errorf("%w: FAT chain from %d escapes the data region", ErrBadDevice, head)
		}
		blocks = append(blocks, cur)
		cur = fs.fat.next(cur)
	}
	return blocks, nil
}

// extentsOf resolves a directory entry's chain into physical extents,
// coalescing adjacent blocks. The final extent is trimmed to the file
// size.
func (fs *FS) extentsOf(e *dirEntry) ([]Extent, error) {
	blocks, err := fs.chainBlocks(e.FirstBlock)
	if err != nil {
		return nil, err
	}

	var extents []Extent
	remaining := int64(e.Size)
	for i := 0; i < len(blocks) && remaining > 0; {
		j := i + 1
		for j < len(blocks) && blocks[j] == blocks[j-1]+1 {
			j++
		}

		length := int64(j-i) * BlockSize
		if length > remaining {
			length = remaining
		}
		extents = append(extents, Extent{
			Offset: int64(fs.dataBlock(blocks[i])) * BlockSize,
			Length: length,
		})
		remaining -= length
		i = j
	}
	return extents, nil
}

// Extents resolves the named file's chain into physical image extents.
func (fs *FS) Extents(name string) ([]Extent, error) {
	if !fs.mounted() {
		return nil, ErrNotMounted
	}

	idx := fs.root.lookup(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	return fs.extentsOf(&fs.root.entries[idx])
}
