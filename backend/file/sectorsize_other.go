//go:build !linux && !darwin

package file

import (
	"errors"
	"os"
)

func sectorSizes(f *os.File) (logical, physical int64, err error) {
	return 0, 0, errors.New("block device sector size detection not supported on this platform")
}
