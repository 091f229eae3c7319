//go:build linux

package file

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// these should be part of golang.org/x/sys/unix, but for older releases are not
const (
	blkSsz  = 0x1268 // BLKSSZGET
	blkPbsz = 0x127B // BLKPBSZGET
)

// sectorSizes returns the logical and physical sector sizes for a block
// device, queried via ioctl against the open file descriptor.
func sectorSizes(f *os.File) (logical, physical int64, err error) {
	fd := int(f.Fd())
	l, err := unix.IoctlGetInt(fd, blkSsz)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device logical sector size: %w", err)
	}
	p, err := unix.IoctlGetInt(fd, blkPbsz)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device physical sector size: %w", err)
	}
	return int64(l), int64(p), nil
}
