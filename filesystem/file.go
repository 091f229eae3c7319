package filesystem

import (
	"io"
	"io/fs"
)

// File is a reference to a single open file or directory.
type File interface {
	fs.ReadDirFile
	io.Seeker
}
