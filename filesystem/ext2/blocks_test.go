package ext2

import (
	"encoding/binary"
	"io"
	"reflect"
	"testing"

	"github.com/ssu-systems/ssu_ext2/testhelper"
)

// writePointerBlock writes a sequence of uint32 block pointers into block
// blockNum of img, one per 4-byte slot, leaving the rest of the block zero.
func writePointerBlock(img []byte, blockNum uint32, ptrs []uint32) {
	off := int(blockNum) * testBlockSize
	for i, p := range ptrs {
		binary.LittleEndian.PutUint32(img[off+i*4:off+i*4+4], p)
	}
}

// TestDataBlocksWalksAllIndirectionLevels builds an inode whose single,
// double, and triple indirect pointers (block[12..14]) each resolve to a
// handful of leaf data blocks, and checks that dataBlocks enumerates exactly
// the non-zero leaf pointers reachable through those levels, per the
// indirect traversal property: single block 20 holds leaves [21, 22];
// double block 23 points at block 24, which holds leaves [25, 26]; triple
// block 27 points at block 28, which points at block 29, which holds
// leaves [30, 31].
func TestDataBlocksWalksAllIndirectionLevels(t *testing.T) {
	const blockCount = 32
	img := make([]byte, blockCount*testBlockSize)

	writePointerBlock(img, 20, []uint32{21, 22})

	writePointerBlock(img, 23, []uint32{24})
	writePointerBlock(img, 24, []uint32{25, 26})

	writePointerBlock(img, 27, []uint32{28})
	writePointerBlock(img, 28, []uint32{29})
	writePointerBlock(img, 29, []uint32{30, 31})

	backend := testhelper.NewFileImpl(func(b []byte, offset int64) (int, error) {
		if offset >= int64(len(img)) {
			return 0, io.EOF
		}
		n := copy(b, img[offset:])
		if n < len(b) {
			return n, io.EOF
		}
		return n, nil
	}, int64(len(img)))

	fsys := &FileSystem{
		backend:    backend,
		superblock: &superblock{logBlockSize: 0},
	}

	in := &inode{}
	in.block[12] = 20
	in.block[13] = 23
	in.block[14] = 27

	got, err := fsys.dataBlocks(in)
	if err != nil {
		t.Fatalf("dataBlocks: %v", err)
	}
	want := []uint32{21, 22, 25, 26, 30, 31}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dataBlocks = %v, want %v", got, want)
	}
}

// TestDataBlocksSkipsHoles checks that a zero direct pointer (a hole) and a
// zero single-indirect pointer (no indirect block at all) are both elided
// rather than producing a zero-valued entry.
func TestDataBlocksSkipsHoles(t *testing.T) {
	backend := testhelper.NewFileImpl(func(b []byte, offset int64) (int, error) {
		for i := range b {
			b[i] = 0
		}
		return len(b), nil
	}, testBlockSize)

	fsys := &FileSystem{
		backend:    backend,
		superblock: &superblock{logBlockSize: 0},
	}

	in := &inode{}
	in.block[0] = 5
	in.block[1] = 0
	in.block[2] = 6

	got, err := fsys.dataBlocks(in)
	if err != nil {
		t.Fatalf("dataBlocks: %v", err)
	}
	want := []uint32{5, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dataBlocks = %v, want %v", got, want)
	}
}
