package ext2

import (
	"bytes"
	"testing"
)

func mustRead(t *testing.T) *FileSystem {
	t.Helper()
	fsys, err := Read(newTestBackend(newTestImage()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return fsys
}

func TestReadDecodesSuperblock(t *testing.T) {
	fsys := mustRead(t)
	sb := fsys.Superblock()
	if sb.BlockSize != testBlockSize {
		t.Errorf("BlockSize = %d, want %d", sb.BlockSize, testBlockSize)
	}
	if sb.BlockGroups != 1 {
		t.Errorf("BlockGroups = %d, want 1", sb.BlockGroups)
	}
	if fsys.Label() != "test-volume" {
		t.Errorf("Label = %q, want %q", fsys.Label(), "test-volume")
	}
}

func TestFindResolvesNestedPaths(t *testing.T) {
	fsys := mustRead(t)

	cases := []struct {
		path    string
		wantDir bool
	}{
		{"/", true},
		{"/hello.txt", false},
		{"/sub", true},
		{"/sub/nested.txt", false},
		{"sub/nested.txt", false},
	}
	for _, c := range cases {
		n, err := fsys.Find(c.path)
		if err != nil {
			t.Errorf("Find(%q): %v", c.path, err)
			continue
		}
		if n.IsDir() != c.wantDir {
			t.Errorf("Find(%q).IsDir() = %v, want %v", c.path, n.IsDir(), c.wantDir)
		}
	}
}

func TestFindNotFound(t *testing.T) {
	fsys := mustRead(t)
	if _, err := fsys.Find("/does/not/exist"); err != ErrNotFound {
		t.Errorf("Find(missing) = %v, want ErrNotFound", err)
	}
}

func TestRootChildrenSortedDirectoriesFirst(t *testing.T) {
	fsys := mustRead(t)
	children := fsys.Root().Children()
	if len(children) != 3 {
		t.Fatalf("len(children) = %d, want 3", len(children))
	}
	if children[0].Name() != "sub" || !children[0].IsDir() {
		t.Errorf("children[0] = %q (dir=%v), want sub (dir)", children[0].Name(), children[0].IsDir())
	}
	if children[1].Name() != "hello.txt" || children[1].IsDir() {
		t.Errorf("children[1] = %q, want hello.txt", children[1].Name())
	}
	if children[2].Name() != "partial.txt" || children[2].IsDir() {
		t.Errorf("children[2] = %q, want partial.txt", children[2].Name())
	}
}

func TestOpenNodeReadsContent(t *testing.T) {
	fsys := mustRead(t)
	n, err := fsys.Find("/hello.txt")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	f, err := fsys.OpenNode(n)
	if err != nil {
		t.Fatalf("OpenNode: %v", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if buf.String() != helloContent {
		t.Errorf("content = %q, want %q", buf.String(), helloContent)
	}
}

func TestOpenNodeRejectsDirectory(t *testing.T) {
	fsys := mustRead(t)
	n, err := fsys.Find("/sub")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if _, err := fsys.OpenNode(n); err != ErrNotRegular {
		t.Errorf("OpenNode(dir) = %v, want ErrNotRegular", err)
	}
}

func TestReadDirListsChildren(t *testing.T) {
	fsys := mustRead(t)
	entries, err := fsys.ReadDir("/sub")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "nested.txt" {
		t.Fatalf("entries = %v, want [nested.txt]", entries)
	}
}

func TestAttrReportsSize(t *testing.T) {
	fsys := mustRead(t)
	n, err := fsys.Find("/hello.txt")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	attr, err := fsys.Attr(n)
	if err != nil {
		t.Fatalf("Attr: %v", err)
	}
	if attr.Size != uint32(len(helloContent)) {
		t.Errorf("Size = %d, want %d", attr.Size, len(helloContent))
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	img := newTestImage()
	img[superblockOffset+56] = 0
	img[superblockOffset+57] = 0
	if _, err := Read(newTestBackend(img)); err == nil {
		t.Error("Read with corrupt magic = nil error, want error")
	}
}
