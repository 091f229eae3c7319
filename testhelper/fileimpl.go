// Package testhelper provides stand-ins for backend.Storage used to exercise
// error paths -- such as a short read on a data block -- that are awkward to
// reproduce with a real image file.
package testhelper

import (
	"io/fs"
	"os"
	"time"

	"github.com/ssu-systems/ssu_ext2/backend"
)

var _ backend.Storage = (*FileImpl)(nil)

type reader func(b []byte, offset int64) (int, error)

// FileImpl implements backend.Storage over a caller-supplied reader function,
// so tests can stub out specific offsets returning short reads or errors.
type FileImpl struct {
	Reader reader
	size   int64
}

// NewFileImpl wraps a reader function as a backend.Storage of the given size.
func NewFileImpl(r reader, size int64) *FileImpl {
	return &FileImpl{Reader: r, size: size}
}

func (f *FileImpl) Stat() (fs.FileInfo, error) {
	return fakeInfo{size: f.size}, nil
}

func (f *FileImpl) Read(b []byte) (int, error) {
	return f.Reader(b, 0)
}

func (f *FileImpl) Close() error {
	return nil
}

func (f *FileImpl) ReadAt(b []byte, offset int64) (int, error) {
	return f.Reader(b, offset)
}

func (f *FileImpl) Sys() (*os.File, error) {
	return nil, os.ErrInvalid
}

type fakeInfo struct {
	size int64
}

func (fakeInfo) Name() string       { return "fake" }
func (f fakeInfo) Size() int64      { return f.size }
func (fakeInfo) Mode() fs.FileMode  { return 0 }
func (fakeInfo) ModTime() time.Time { return time.Time{} }
func (fakeInfo) IsDir() bool        { return false }
func (fakeInfo) Sys() interface{}   { return nil }
