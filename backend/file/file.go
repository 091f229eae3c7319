// Package file adapts a path on disk -- a regular image file or a raw block
// device -- into a backend.Storage.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	times "gopkg.in/djherbis/times.v1"

	"github.com/ssu-systems/ssu_ext2/backend"
)

type rawBackend struct {
	storage fs.File
}

// New creates a backend.Storage from an already-open fs.File.
func New(f fs.File) backend.Storage {
	return rawBackend{storage: f}
}

// OpenFromPath opens pathName read-only. pathName may name a regular image
// file or a block device; either way the result is read only with
// positioned reads, never a shared cursor.
func OpenFromPath(pathName string) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass device or file name")
	}

	info, err := os.Stat(pathName)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("provided device/file %s does not exist", pathName)
	}
	if err != nil {
		return nil, fmt.Errorf("could not stat %s: %w", pathName, err)
	}

	f, err := os.OpenFile(pathName, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open %s read-only: %w", pathName, err)
	}

	logImageTimes(pathName)

	if info.Mode()&os.ModeDevice != 0 {
		logical, physical, serr := sectorSizes(f)
		if serr != nil {
			logrus.WithError(serr).WithField("path", pathName).Debug("could not determine block device sector size")
		} else {
			logrus.WithFields(logrus.Fields{
				"path":     pathName,
				"logical":  logical,
				"physical": physical,
			}).Debug("opened block device")
		}
	}

	return rawBackend{storage: f}, nil
}

// logImageTimes records the host filesystem's view of the image file's
// timestamps, which is independent of anything decoded from inside the
// image, for startup diagnostics.
func logImageTimes(pathName string) {
	t, err := times.Stat(pathName)
	if err != nil {
		logrus.WithError(err).WithField("path", pathName).Debug("could not read host timestamps for image")
		return
	}
	fields := logrus.Fields{
		"path":  pathName,
		"mtime": t.ModTime(),
		"atime": t.AccessTime(),
	}
	if t.HasChangeTime() {
		fields["ctime"] = t.ChangeTime()
	}
	if t.HasBirthTime() {
		fields["btime"] = t.BirthTime()
	}
	logrus.WithFields(fields).Debug("image host timestamps")
}

var _ backend.Storage = rawBackend{}

func (f rawBackend) Sys() (*os.File, error) {
	if osFile, ok := f.storage.(*os.File); ok {
		return osFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f rawBackend) Stat() (fs.FileInfo, error) {
	return f.storage.Stat()
}

func (f rawBackend) Read(b []byte) (int, error) {
	return f.storage.Read(b)
}

func (f rawBackend) Close() error {
	return f.storage.Close()
}

func (f rawBackend) ReadAt(p []byte, off int64) (n int, err error) {
	readerAt, ok := f.storage.(interface {
		ReadAt(p []byte, off int64) (int, error)
	})
	if !ok {
		return -1, backend.ErrNotSuitable
	}
	return readerAt.ReadAt(p, off)
}
