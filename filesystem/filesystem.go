// Package filesystem provides the interface implemented by the ext2 reader.
// It mirrors the layering a read-write filesystem driver would use, trimmed
// to the operations a read-only filesystem can support: this reader never
// mutates the image (see package ext2).
package filesystem

import (
	"errors"
	"io/fs"
)

var ErrNotSupported = errors.New("method not supported by this filesystem")

// FileSystem is a reference to a single filesystem decoded from an image.
type FileSystem interface {
	// Type returns the type of filesystem.
	Type() Type
	// ReadDir reads the contents of a directory.
	ReadDir(pathname string) ([]fs.DirEntry, error)
	// OpenFile opens a handle to read a file's content.
	OpenFile(pathname string, flag int) (File, error)
	// Stat returns file info for a path.
	Stat(pathname string) (fs.FileInfo, error)
	// Label returns the volume label for the filesystem, or "" if none.
	Label() string
}

// Type represents the type of filesystem held on a disk image.
type Type int

const (
	// TypeExt2 is a revision-0/1 ext2 filesystem.
	TypeExt2 Type = iota
)
