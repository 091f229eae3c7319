// Package ext2 implements a read-only decoder for the ext2 on-disk format:
// superblock, block group descriptors, inodes, directory entries, and the
// four-level direct/indirect block addressing scheme. It never mutates the
// backing image.
package ext2

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ssu-systems/ssu_ext2/backend"
	"github.com/ssu-systems/ssu_ext2/filesystem"
	"github.com/ssu-systems/ssu_ext2/util/bitmap"
)

var (
	// ErrNotFound is returned when a path does not resolve to any node.
	ErrNotFound = errors.New("path not found")
	// ErrNotDirectory is returned when a directory-only operation targets a file.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNotRegular is returned when a file-only operation targets a directory.
	ErrNotRegular = errors.New("not a file")
)

const rootInodeNumber uint32 = 2

// FileSystem is a decoded, read-only view of an ext2 image: the superblock
// and group descriptor table are process-wide constants once loaded, and the
// whole directory namespace is scanned eagerly into an in-memory tree that
// never changes for the life of the FileSystem.
type FileSystem struct {
	backend    backend.Storage
	superblock *superblock
	groups     []groupDescriptor
	root       *Node
}

// Read decodes an ext2 filesystem from b: the superblock at byte offset
// 1024, the group descriptor table that follows it, and the complete
// directory tree reachable from the root inode (2).
func Read(b backend.Storage) (*FileSystem, error) {
	sbBytes := make([]byte, superblockRecordSize)
	n, err := b.ReadAt(sbBytes, superblockOffset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not read superblock: %w", err)
	}
	if n < superblockRecordSize {
		return nil, fmt.Errorf("could not read superblock: got %d of %d bytes", n, superblockRecordSize)
	}
	sb, err := superblockFromBytes(sbBytes)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"blockSize":      sb.blockSize(),
		"inodeSize":      sb.inodeSize,
		"inodesPerGroup": sb.inodesPerGroup,
		"blocksCount":    sb.blocksCount,
		"volumeUUID":     sb.volumeUUID,
	}).Debug("loaded superblock")

	groupCount := blockGroupCount(sb)
	if groupCount == 0 {
		return nil, errors.New("superblock describes zero block groups")
	}
	gdtOffset := int64(groupDescriptorTableBlock(sb)) * int64(sb.blockSize())
	gdtBytes := make([]byte, groupCount*groupDescSize)
	n, err = b.ReadAt(gdtBytes, gdtOffset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not read group descriptor table: %w", err)
	}
	if n < len(gdtBytes) {
		return nil, fmt.Errorf("could not read group descriptor table: got %d of %d bytes", n, len(gdtBytes))
	}
	groups := make([]groupDescriptor, groupCount)
	for i := 0; i < groupCount; i++ {
		groups[i] = groupDescriptorFromBytes(gdtBytes[i*groupDescSize : (i+1)*groupDescSize])
	}

	fsys := &FileSystem{
		backend:    b,
		superblock: sb,
		groups:     groups,
	}

	root := &Node{name: "/", inodeNo: rootInodeNumber, fileType: ftDirectory}
	visited := bitmap.NewBits(int(sb.inodesCount) + 1)
	if err := fsys.buildTree(root, visited); err != nil {
		return nil, fmt.Errorf("could not build directory tree: %w", err)
	}
	fsys.root = root

	return fsys, nil
}

var _ filesystem.FileSystem = (*FileSystem)(nil)

// Type returns the type of filesystem.
func (fsys *FileSystem) Type() filesystem.Type {
	return filesystem.TypeExt2
}

// Label returns the on-disk volume name, trimmed of trailing NUL padding.
func (fsys *FileSystem) Label() string {
	return strings.TrimRight(fsys.superblock.volumeName, "\x00")
}

// Close releases the in-memory tree and closes the backing image.
func (fsys *FileSystem) Close() error {
	fsys.root = nil
	return fsys.backend.Close()
}

// Root returns the root node of the namespace tree.
func (fsys *FileSystem) Root() *Node {
	return fsys.root
}

// Find resolves a path against the namespace tree. A leading "/" is
// absolute; since the shell has no notion of a working directory, any other
// path is also resolved starting from the root.
func (fsys *FileSystem) Find(path string) (*Node, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	n := findNode(fsys.root, path)
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

// Attr describes the subset of inode metadata the command surface needs to
// render a node: its byte size and its permission bits.
type Attr struct {
	Size    uint32
	Mode    uint16
	ModTime time.Time
}

// Attr loads and returns the inode metadata for a node.
func (fsys *FileSystem) Attr(n *Node) (Attr, error) {
	in, err := fsys.loadInode(n.inodeNo)
	if err != nil {
		return Attr{}, err
	}
	return Attr{Size: in.size, Mode: in.mode, ModTime: time.Unix(int64(in.mtime), 0)}, nil
}

// OpenNode opens a regular file node for streaming reads.
func (fsys *FileSystem) OpenNode(n *Node) (*File, error) {
	if n.fileType != ftRegular {
		return nil, ErrNotRegular
	}
	in, err := fsys.loadInode(n.inodeNo)
	if err != nil {
		return nil, err
	}
	blocks, err := fsys.dataBlocks(in)
	if err != nil {
		return nil, err
	}
	return &File{fs: fsys, node: n, inode: in, blocks: blocks, blockSize: int(fsys.superblock.blockSize())}, nil
}

// ReadDir implements filesystem.FileSystem by listing a directory's
// immediate, already-sorted children.
func (fsys *FileSystem) ReadDir(pathname string) ([]fs.DirEntry, error) {
	n, err := fsys.Find(pathname)
	if err != nil {
		return nil, err
	}
	if n.fileType != ftDirectory {
		return nil, ErrNotDirectory
	}
	children := n.Children()
	entries := make([]fs.DirEntry, len(children))
	for i, c := range children {
		entries[i] = dirEntry{node: c, fsys: fsys}
	}
	return entries, nil
}

// OpenFile implements filesystem.FileSystem. flag is accepted for interface
// compatibility but must request read-only access.
func (fsys *FileSystem) OpenFile(pathname string, flag int) (filesystem.File, error) {
	if flag != 0 {
		return nil, filesystem.ErrNotSupported
	}
	n, err := fsys.Find(pathname)
	if err != nil {
		return nil, err
	}
	return fsys.OpenNode(n)
}

// Stat implements filesystem.FileSystem.
func (fsys *FileSystem) Stat(pathname string) (fs.FileInfo, error) {
	n, err := fsys.Find(pathname)
	if err != nil {
		return nil, err
	}
	return fsys.nodeFileInfo(n)
}

// Superblock holds diagnostic information about the decoded superblock.
type Superblock struct {
	BlockSize      uint32
	InodesCount    uint32
	BlocksCount    uint32
	InodesPerGroup uint32
	BlockGroups    int
	VolumeUUID     string
	VolumeName     string
}

// Superblock returns a snapshot of the loaded superblock.
func (fsys *FileSystem) Superblock() Superblock {
	return Superblock{
		BlockSize:      fsys.superblock.blockSize(),
		InodesCount:    fsys.superblock.inodesCount,
		BlocksCount:    fsys.superblock.blocksCount,
		InodesPerGroup: fsys.superblock.inodesPerGroup,
		BlockGroups:    len(fsys.groups),
		VolumeUUID:     fsys.superblock.volumeUUID.String(),
		VolumeName:     fsys.Label(),
	}
}
