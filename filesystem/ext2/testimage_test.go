package ext2

import (
	"encoding/binary"
	"io"

	"github.com/ssu-systems/ssu_ext2/testhelper"
)

// Block layout of the synthetic single-group image built by newTestImage:
//
//	0  boot block (unused)
//	1  superblock
//	2  group descriptor table
//	3  inode bitmap (unused)
//	4  block bitmap (unused)
//	5  inode table, inodes 1-8
//	6  inode table, inodes 9-16
//	7  inode table, inodes 17-24
//	8  inode table, inodes 25-32
//	9  root directory entries
//	10 "sub" directory entries
//	11 "hello.txt" content
//	12 "sub/nested.txt" content
//	13 "partial.txt" content (no trailing newline)
const (
	testBlockSize      = 1024
	testInodeSize      = 128
	testInodesPerGroup = 32
	testBlocksCount    = 14

	testRootInode    = 2
	testSubInode     = 11
	testHelloInode   = 12
	testNestedInode  = 13
	testPartialInode = 14

	helloContent   = "hello world\nsecond line\n"
	nestedContent  = "nested content\n"
	partialContent = "a\nb\nc"
)

func writeInode(img []byte, ino uint32, mode uint16, size uint32, block0 uint32) {
	index := (ino - 1) % testInodesPerGroup
	group := (ino - 1) / testInodesPerGroup
	tableBlock := 5 + group*4 // single group, 4 inode-table blocks
	off := int(tableBlock)*testBlockSize + int(index)*testInodeSize

	binary.LittleEndian.PutUint16(img[off:off+2], mode)
	binary.LittleEndian.PutUint32(img[off+4:off+8], size)
	binary.LittleEndian.PutUint32(img[off+16:off+20], 1_700_000_000)
	binary.LittleEndian.PutUint32(img[off+40:off+44], block0)
}

type dirEnt struct {
	inode    uint32
	fileType uint8
	name     string
}

func writeDirBlock(img []byte, block uint32, entries []dirEnt) {
	off := int(block) * testBlockSize
	pos := off
	for _, e := range entries {
		recLen := dirEntryHeaderSize + len(e.name)
		binary.LittleEndian.PutUint32(img[pos:pos+4], e.inode)
		binary.LittleEndian.PutUint16(img[pos+4:pos+6], uint16(recLen))
		img[pos+6] = byte(len(e.name))
		img[pos+7] = e.fileType
		copy(img[pos+8:pos+8+len(e.name)], e.name)
		pos += recLen
	}
}

// newTestImage builds a minimal, valid, single-block-group ext2 image with:
//
//	/hello.txt
//	/partial.txt
//	/sub/nested.txt
func newTestImage() []byte {
	img := make([]byte, testBlocksCount*testBlockSize)

	sbOff := superblockOffset
	binary.LittleEndian.PutUint32(img[sbOff+0:sbOff+4], testInodesPerGroup)   // s_inodes_count
	binary.LittleEndian.PutUint32(img[sbOff+4:sbOff+8], testBlocksCount)      // s_blocks_count
	binary.LittleEndian.PutUint32(img[sbOff+20:sbOff+24], 1)                  // s_first_data_block
	binary.LittleEndian.PutUint32(img[sbOff+24:sbOff+28], 0)                  // s_log_block_size (1024<<0)
	binary.LittleEndian.PutUint32(img[sbOff+32:sbOff+36], testBlocksCount)    // s_blocks_per_group
	binary.LittleEndian.PutUint32(img[sbOff+40:sbOff+44], testInodesPerGroup) // s_inodes_per_group
	binary.LittleEndian.PutUint16(img[sbOff+56:sbOff+58], ext2Magic)
	binary.LittleEndian.PutUint16(img[sbOff+88:sbOff+90], testInodeSize)
	copy(img[sbOff+120:sbOff+136], "test-volume")

	gdtOff := 2 * testBlockSize
	binary.LittleEndian.PutUint32(img[gdtOff+8:gdtOff+12], 5) // bg_inode_table

	writeInode(img, testRootInode, modeTypeDir|0o755, testBlockSize, 9)
	writeInode(img, testSubInode, modeTypeDir|0o755, testBlockSize, 10)
	writeInode(img, testHelloInode, modeTypeRegular|0o644, uint32(len(helloContent)), 11)
	writeInode(img, testNestedInode, modeTypeRegular|0o644, uint32(len(nestedContent)), 12)
	writeInode(img, testPartialInode, modeTypeRegular|0o644, uint32(len(partialContent)), 13)

	writeDirBlock(img, 9, []dirEnt{
		{testRootInode, 2, "."},
		{testRootInode, 2, ".."},
		{testHelloInode, 1, "hello.txt"},
		{testSubInode, 2, "sub"},
		{testPartialInode, 1, "partial.txt"},
	})
	writeDirBlock(img, 10, []dirEnt{
		{testSubInode, 2, "."},
		{testRootInode, 2, ".."},
		{testNestedInode, 1, "nested.txt"},
	})

	copy(img[11*testBlockSize:], helloContent)
	copy(img[12*testBlockSize:], nestedContent)
	copy(img[13*testBlockSize:], partialContent)

	return img
}

// newTestBackend wraps a raw image buffer as a backend.Storage.
func newTestBackend(img []byte) *testhelper.FileImpl {
	return testhelper.NewFileImpl(func(b []byte, offset int64) (int, error) {
		if offset >= int64(len(img)) {
			return 0, io.EOF
		}
		n := copy(b, img[offset:])
		if n < len(b) {
			return n, io.EOF
		}
		return n, nil
	}, int64(len(img)))
}
