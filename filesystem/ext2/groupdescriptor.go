package ext2

import "encoding/binary"

// groupDescSize is the on-disk size of one block group descriptor record.
const groupDescSize = 32

// groupDescriptor exposes only the field the reader needs to locate a
// group's inode table; block/inode bitmaps and free counts play no part in
// a read-only, non-allocating reader.
type groupDescriptor struct {
	inodeTable uint32
}

func groupDescriptorFromBytes(b []byte) groupDescriptor {
	return groupDescriptor{
		inodeTable: binary.LittleEndian.Uint32(b[8:12]),
	}
}
