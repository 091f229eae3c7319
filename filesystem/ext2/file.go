package ext2

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/ssu-systems/ssu_ext2/filesystem"
)

// File is an open handle onto a regular file's content, reading across its
// (possibly sparse) data blocks in logical order. A File is not safe for
// concurrent use.
type File struct {
	fs        *FileSystem
	node      *Node
	inode     *inode
	blocks    []uint32
	blockSize int

	offset int64 // byte offset into the concatenation of the listed blocks
}

var _ filesystem.File = (*File)(nil)

// Read implements io.Reader over the concatenation of the file's allocated
// blocks, in order, up to i_size. Holes are elided from the block list, not
// zero-filled, so content after an interior hole moves up to fill its place;
// only bytes beyond the last listed block (but within i_size) read as zero.
func (f *File) Read(p []byte) (int, error) {
	size := int64(f.inode.size)
	if f.offset >= size {
		return 0, io.EOF
	}
	if int64(len(p)) > size-f.offset {
		p = p[:size-f.offset]
	}

	total := 0
	for total < len(p) {
		blockIdx := int((f.offset + int64(total)) / int64(f.blockSize))
		blockOff := int((f.offset + int64(total)) % int64(f.blockSize))
		n := f.blockSize - blockOff
		if n > len(p)-total {
			n = len(p) - total
		}

		if blockIdx >= len(f.blocks) {
			for i := 0; i < n; i++ {
				p[total+i] = 0
			}
		} else {
			buf := make([]byte, f.blockSize)
			rn, err := f.fs.backend.ReadAt(buf, int64(f.blocks[blockIdx])*int64(f.blockSize))
			if err != nil && err != io.EOF {
				return total, fmt.Errorf("could not read data block %d: %w", f.blocks[blockIdx], err)
			}
			if rn < f.blockSize {
				return total, fmt.Errorf("could not read data block %d: got %d of %d bytes", f.blocks[blockIdx], rn, f.blockSize)
			}
			copy(p[total:total+n], buf[blockOff:blockOff+n])
		}
		total += n
	}
	f.offset += int64(total)
	return total, nil
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.offset + offset
	case io.SeekEnd:
		abs = int64(f.inode.size) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative seek position")
	}
	f.offset = abs
	return abs, nil
}

// Close releases the file handle. It performs no I/O of its own: the
// backing image stays open for the life of the FileSystem.
func (f *File) Close() error {
	return nil
}

// Stat returns the file's metadata.
func (f *File) Stat() (fs.FileInfo, error) {
	return fileInfo{node: f.node, attr: Attr{Size: f.inode.size, Mode: f.inode.mode, ModTime: time.Unix(int64(f.inode.mtime), 0)}}, nil
}

// ReadDir always fails: File only ever opens regular files.
func (f *File) ReadDir(n int) ([]fs.DirEntry, error) {
	return nil, ErrNotDirectory
}

// ReadLines copies up to maxLines newline-terminated lines of the file to
// w, starting from the file's current offset. If maxLines is non-positive,
// the entire remaining content is copied. It reports whether strictly more
// lines remained in the file after the copied ones, which the print
// command uses to decide whether to emit one final trailing newline.
func (f *File) ReadLines(w io.Writer, maxLines int) (hasMore bool, err error) {
	r := bufio.NewReader(f)
	if maxLines <= 0 {
		_, err = io.Copy(w, r)
		return false, err
	}

	lines := 0
	for lines < maxLines {
		line, rerr := r.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := w.Write(line); werr != nil {
				return false, werr
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return false, nil
			}
			return false, rerr
		}
		lines++
	}

	// hasMore is true only if a further newline exists before EOF: a
	// trailing partial line past the Nth newline does not count as "more".
	for {
		b, rerr := r.ReadByte()
		if rerr == io.EOF {
			return false, nil
		}
		if rerr != nil {
			return false, rerr
		}
		if b == '\n' {
			return true, nil
		}
	}
}
