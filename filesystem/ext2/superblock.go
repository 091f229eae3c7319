package ext2

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	// superblockOffset is the fixed byte offset of the superblock, per the
	// ext2 on-disk layout.
	superblockOffset int64 = 1024
	// superblockRecordSize covers every field this reader decodes,
	// including the volume name and UUID from the dynamic-revision region.
	superblockRecordSize = 136

	ext2Magic uint16 = 0xEF53
)

// superblock holds the process-wide constants decoded once at startup.
// Nothing here changes for the life of a FileSystem.
type superblock struct {
	inodesCount    uint32
	blocksCount    uint32
	firstDataBlock uint32
	logBlockSize   uint32
	blocksPerGroup uint32
	inodesPerGroup uint32
	magic          uint16
	inodeSize      uint16
	volumeUUID     uuid.UUID
	volumeName     string
}

// blockSize is 1024 << log_block_size, per the ext2 specification; this is
// the only block size computation the reader ever performs.
func (s *superblock) blockSize() uint32 {
	return 1024 << s.logBlockSize
}

func superblockFromBytes(b []byte) (*superblock, error) {
	if len(b) < superblockRecordSize {
		return nil, fmt.Errorf("superblock record too short: got %d of %d bytes", len(b), superblockRecordSize)
	}

	sb := &superblock{
		inodesCount:    binary.LittleEndian.Uint32(b[0:4]),
		blocksCount:    binary.LittleEndian.Uint32(b[4:8]),
		firstDataBlock: binary.LittleEndian.Uint32(b[20:24]),
		logBlockSize:   binary.LittleEndian.Uint32(b[24:28]),
		blocksPerGroup: binary.LittleEndian.Uint32(b[32:36]),
		inodesPerGroup: binary.LittleEndian.Uint32(b[40:44]),
		magic:          binary.LittleEndian.Uint16(b[56:58]),
		inodeSize:      binary.LittleEndian.Uint16(b[88:90]),
	}
	copy(sb.volumeUUID[:], b[104:120])
	sb.volumeName = string(b[120:136])

	if sb.magic != ext2Magic {
		return nil, fmt.Errorf("not an ext2 image: magic is 0x%04x, want 0x%04x", sb.magic, ext2Magic)
	}
	if sb.inodeSize == 0 {
		return nil, errors.New("superblock declares zero inode size")
	}
	if sb.inodesPerGroup == 0 {
		return nil, errors.New("superblock declares zero inodes per group")
	}
	if sb.blocksPerGroup == 0 {
		return nil, errors.New("superblock declares zero blocks per group")
	}
	return sb, nil
}

// blockGroupCount is the number of block groups the filesystem is divided
// into, derived from the total block count.
func blockGroupCount(sb *superblock) int {
	blocks := sb.blocksCount - sb.firstDataBlock
	count := blocks / sb.blocksPerGroup
	if blocks%sb.blocksPerGroup != 0 {
		count++
	}
	return int(count)
}

// groupDescriptorTableBlock is the block immediately following the block
// that holds the superblock.
func groupDescriptorTableBlock(sb *superblock) uint32 {
	return uint32(superblockOffset/int64(sb.blockSize())) + 1
}
