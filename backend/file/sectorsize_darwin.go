//go:build darwin

package file

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// these constants should be part of golang.org/x/sys/unix, but aren't, yet
const (
	dkioctlGetBlockSize         = 0x40046418
	dkioctlGetPhysicalBlockSize = 0x4004644D
)

func sectorSizes(f *os.File) (logical, physical int64, err error) {
	fd := int(f.Fd())
	l, err := unix.IoctlGetInt(fd, dkioctlGetBlockSize)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device logical sector size: %w", err)
	}
	p, err := unix.IoctlGetInt(fd, dkioctlGetPhysicalBlockSize)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get device physical sector size: %w", err)
	}
	return int64(l), int64(p), nil
}
