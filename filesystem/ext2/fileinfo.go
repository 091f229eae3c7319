package ext2

import (
	"io/fs"
	"time"
)

// fileInfo adapts a Node plus its loaded inode Attr to fs.FileInfo.
type fileInfo struct {
	node *Node
	attr Attr
}

func (fi fileInfo) Name() string       { return fi.node.name }
func (fi fileInfo) Size() int64        { return int64(fi.attr.Size) }
func (fi fileInfo) ModTime() time.Time { return fi.attr.ModTime }
func (fi fileInfo) IsDir() bool        { return fi.node.IsDir() }
func (fi fileInfo) Sys() any           { return fi.node }

func (fi fileInfo) Mode() fs.FileMode {
	perm := fs.FileMode(fi.attr.Mode & 0o777)
	if fi.node.IsDir() {
		return perm | fs.ModeDir
	}
	return perm
}

// nodeFileInfo loads a node's inode metadata and wraps it as fs.FileInfo.
func (fsys *FileSystem) nodeFileInfo(n *Node) (fs.FileInfo, error) {
	attr, err := fsys.Attr(n)
	if err != nil {
		return nil, err
	}
	return fileInfo{node: n, attr: attr}, nil
}

// dirEntry adapts a Node to fs.DirEntry.
type dirEntry struct {
	node *Node
	fsys *FileSystem
}

func (d dirEntry) Name() string { return d.node.name }
func (d dirEntry) IsDir() bool  { return d.node.IsDir() }

func (d dirEntry) Type() fs.FileMode {
	if d.node.IsDir() {
		return fs.ModeDir
	}
	return 0
}

func (d dirEntry) Info() (fs.FileInfo, error) {
	return d.fsys.nodeFileInfo(d.node)
}
