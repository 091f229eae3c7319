// Package backend abstracts the image being read: a regular disk image file
// or a raw block device. Every access is positioned (ReadAt), so the
// underlying descriptor carries no cursor state that callers must coordinate.
package backend

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

var ErrNotSuitable = errors.New("backing file is not suitable")

// File is the minimal handle the reader needs against an open image.
type File interface {
	fs.File
	io.ReaderAt
	io.Closer
}

// Storage is a File plus access to the OS-level handle, when there is one.
type Storage interface {
	File
	// Sys exposes the underlying *os.File when the backing store is one.
	Sys() (*os.File, error)
}
