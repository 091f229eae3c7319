package ext2

import (
	"encoding/binary"
	"fmt"
	"io"
)

// dataBlocks returns, in logical-offset order, every non-zero physical
// block number holding the inode's content: the twelve direct pointers,
// then single-, double-, and triple-indirect blocks in turn. Zero entries
// (holes) are elided rather than materialized as zero pages, so the
// returned slice may be shorter than the file's logical block count.
func (fsys *FileSystem) dataBlocks(in *inode) ([]uint32, error) {
	blocks := make([]uint32, 0, 12)
	for i := 0; i < 12; i++ {
		if in.block[i] != 0 {
			blocks = append(blocks, in.block[i])
		}
	}
	if err := fsys.appendIndirectBlocks(in.block[12], 1, &blocks); err != nil {
		return nil, err
	}
	if err := fsys.appendIndirectBlocks(in.block[13], 2, &blocks); err != nil {
		return nil, err
	}
	if err := fsys.appendIndirectBlocks(in.block[14], 3, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// appendIndirectBlocks walks one indirect pointer block. depth counts how
// many levels of indirection remain below blockNum: 1 means blockNum holds
// leaf data-block pointers directly, 2 means it holds pointers to depth-1
// blocks, and so on.
func (fsys *FileSystem) appendIndirectBlocks(blockNum uint32, depth int, out *[]uint32) error {
	if blockNum == 0 {
		return nil
	}
	blockSize := fsys.superblock.blockSize()
	buf := make([]byte, blockSize)
	n, err := fsys.backend.ReadAt(buf, int64(blockNum)*int64(blockSize))
	if err != nil && err != io.EOF {
		return fmt.Errorf("could not read indirect block %d: %w", blockNum, err)
	}
	if uint32(n) < blockSize {
		return fmt.Errorf("could not read indirect block %d: got %d of %d bytes", blockNum, n, blockSize)
	}

	ptrCount := len(buf) / 4
	for i := 0; i < ptrCount; i++ {
		ptr := binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
		if ptr == 0 {
			continue
		}
		if depth == 1 {
			*out = append(*out, ptr)
			continue
		}
		if err := fsys.appendIndirectBlocks(ptr, depth-1, out); err != nil {
			return err
		}
	}
	return nil
}
