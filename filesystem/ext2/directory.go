package ext2

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ssu-systems/ssu_ext2/util/bitmap"
)

// ext2 directory entry file_type values of interest; others (char/block
// device, fifo, socket, symlink) are out of scope and, if ever encountered,
// are added to the namespace tree as regular-file nodes.
const (
	ftRegular   uint8 = 1
	ftDirectory uint8 = 2
)

// dirEntryHeaderSize is the fixed prefix of a directory entry, before the
// variable-length name.
const dirEntryHeaderSize = 8

// rawDirEntry is one decoded, variable-length ext2 directory entry.
type rawDirEntry struct {
	inode    uint32
	fileType uint8
	name     string
}

// readDirEntries reads every directory entry across all of a directory
// inode's data blocks. Entries never span a block boundary, and a rec_len
// of 0 or an entry whose inode field is 0 terminates the containing block.
// A short read on a directory block is metadata I/O and is therefore
// fatal, unlike a short read on file content during print.
func (fsys *FileSystem) readDirEntries(in *inode) ([]rawDirEntry, error) {
	blocks, err := fsys.dataBlocks(in)
	if err != nil {
		return nil, err
	}
	blockSize := int(fsys.superblock.blockSize())
	buf := make([]byte, blockSize)

	var entries []rawDirEntry
	for _, blk := range blocks {
		n, err := fsys.backend.ReadAt(buf, int64(blk)*int64(blockSize))
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("could not read directory block %d: %w", blk, err)
		}
		if n < blockSize {
			return nil, fmt.Errorf("could not read directory block %d: got %d of %d bytes", blk, n, blockSize)
		}

		pos := 0
		for pos+dirEntryHeaderSize <= blockSize {
			ino := binary.LittleEndian.Uint32(buf[pos : pos+4])
			recLen := binary.LittleEndian.Uint16(buf[pos+4 : pos+6])
			nameLen := buf[pos+6]
			fileType := buf[pos+7]
			if ino == 0 || recLen < dirEntryHeaderSize {
				break
			}
			nameEnd := pos + dirEntryHeaderSize + int(nameLen)
			if nameEnd > blockSize {
				break
			}
			entries = append(entries, rawDirEntry{
				inode:    ino,
				fileType: fileType,
				name:     string(buf[pos+dirEntryHeaderSize : nameEnd]),
			})
			pos += int(recLen)
		}
	}
	return entries, nil
}

// skipName reports whether a directory entry's name is one of the synthetic
// entries the namespace tree never surfaces.
func skipName(name string) bool {
	return name == "." || name == ".." || name == "lost+found"
}

// buildTree recursively populates node's children from its on-disk
// directory entries. visited guards against a corrupt or maliciously
// crafted image whose directory entries form a cycle: an inode already
// seen on the current walk is skipped rather than recursed into again.
func (fsys *FileSystem) buildTree(node *Node, visited *bitmap.Bitmap) error {
	if set, err := visited.IsSet(int(node.inodeNo)); err != nil {
		return err
	} else if set {
		return nil
	}
	if err := visited.Set(int(node.inodeNo)); err != nil {
		return err
	}

	in, err := fsys.loadInode(node.inodeNo)
	if err != nil {
		return err
	}
	if !in.isDir() {
		return nil
	}

	entries, err := fsys.readDirEntries(in)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if skipName(e.name) {
			continue
		}
		fileType := ftRegular
		if e.fileType == 0 {
			// file_type feature disabled on this image; fall back to the
			// inode's own mode bits.
			childInode, err := fsys.loadInode(e.inode)
			if err != nil {
				return err
			}
			if childInode.isDir() {
				fileType = ftDirectory
			}
		} else if e.fileType == 2 {
			fileType = ftDirectory
		}

		child := &Node{name: e.name, inodeNo: e.inode, fileType: fileType}
		node.insertChildSorted(child)

		if fileType == ftDirectory {
			if err := fsys.buildTree(child, visited); err != nil {
				return err
			}
		}
	}
	return nil
}
