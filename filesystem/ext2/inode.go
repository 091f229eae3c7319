package ext2

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ext2 file-type bits packed into the top nibble of i_mode.
const (
	modeTypeMask    uint16 = 0xF000
	modeTypeRegular uint16 = 0x8000
	modeTypeDir     uint16 = 0x4000
)

// minInodeRecordSize covers i_mode through i_block[14]; anything the
// superblock declares beyond this (extended attributes, ext3/4 extras) is
// read but never interpreted.
const minInodeRecordSize = 100

// inode is the subset of an on-disk ext2 inode this reader decodes: the
// mode, byte size, and the fifteen block pointers (12 direct, single,
// double, triple indirect).
type inode struct {
	mode  uint16
	size  uint32
	mtime uint32
	block [15]uint32
}

func inodeFromBytes(b []byte) (*inode, error) {
	if len(b) < minInodeRecordSize {
		return nil, fmt.Errorf("inode record too short: got %d of %d bytes", len(b), minInodeRecordSize)
	}
	in := &inode{
		mode:  binary.LittleEndian.Uint16(b[0:2]),
		size:  binary.LittleEndian.Uint32(b[4:8]),
		mtime: binary.LittleEndian.Uint32(b[16:20]),
	}
	for i := 0; i < 15; i++ {
		off := 40 + i*4
		in.block[i] = binary.LittleEndian.Uint32(b[off : off+4])
	}
	return in, nil
}

func (in *inode) isDir() bool {
	return in.mode&modeTypeMask == modeTypeDir
}

// loadInode computes the inode's block group and index within it, then
// reads exactly inode_size bytes from that group's inode table. Short reads
// here are metadata failures and are always fatal to the caller.
func (fsys *FileSystem) loadInode(ino uint32) (*inode, error) {
	if ino == 0 {
		return nil, fmt.Errorf("invalid inode number 0")
	}
	group := (ino - 1) / fsys.superblock.inodesPerGroup
	index := (ino - 1) % fsys.superblock.inodesPerGroup
	if int(group) >= len(fsys.groups) {
		return nil, fmt.Errorf("inode %d: block group %d out of range (have %d)", ino, group, len(fsys.groups))
	}

	tableBlock := int64(fsys.groups[group].inodeTable)
	blockSize := int64(fsys.superblock.blockSize())
	inodeSize := int64(fsys.superblock.inodeSize)
	offset := tableBlock*blockSize + int64(index)*inodeSize

	readLen := inodeSize
	if readLen < minInodeRecordSize {
		readLen = minInodeRecordSize
	}
	buf := make([]byte, readLen)
	n, err := fsys.backend.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not read inode %d: %w", ino, err)
	}
	if n < len(buf) {
		return nil, fmt.Errorf("could not read inode %d: got %d of %d bytes", ino, n, len(buf))
	}
	return inodeFromBytes(buf)
}
