package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ssu-systems/ssu_ext2/filesystem/ext2"
)

// parseTreeArgs splits a tree invocation's arguments into its target path
// and its -r/-s/-p flags, each of which may appear standalone or combined
// into a single "-rsp"-style token, at most once overall. On a usage error
// it writes the tree usage banner to out before returning.
func parseTreeArgs(args []string, out io.Writer) (path string, recurse, showSize, showPerm bool, err error) {
	seen := map[byte]bool{}
	for _, a := range args {
		if strings.HasPrefix(a, "-") && a != "-" {
			for i := 1; i < len(a); i++ {
				c := a[i]
				if c != 'r' && c != 's' && c != 'p' {
					fmt.Fprint(out, usageTree)
					return "", false, false, false, usageError("tree: unknown flag -%c", c)
				}
				if seen[c] {
					fmt.Fprint(out, usageTree)
					return "", false, false, false, usageError("tree: duplicate flag -%c", c)
				}
				seen[c] = true
				switch c {
				case 'r':
					recurse = true
				case 's':
					showSize = true
				case 'p':
					showPerm = true
				}
			}
			continue
		}
		if path != "" {
			fmt.Fprint(out, usageTree)
			return "", false, false, false, usageError("tree: too many arguments")
		}
		path = a
	}
	if path == "" {
		fmt.Fprint(out, usageTree)
		return "", false, false, false, usageError("tree: missing PATH")
	}
	return path, recurse, showSize, showPerm, nil
}

func cmdTree(fsys *ext2.FileSystem, args []string, out io.Writer) error {
	path, recurse, showSize, showPerm, err := parseTreeArgs(args, out)
	if err != nil {
		return err
	}

	n, err := fsys.Find(path)
	if err == ext2.ErrNotFound {
		return notFoundError("tree: %s: no such file or directory", path)
	} else if err != nil {
		return badArgumentError("tree: %s: %v", path, err)
	}
	if !n.IsDir() {
		return wrongTypeError("tree: %s: is not a directory", path)
	}

	attr, err := fsys.Attr(n)
	if err != nil {
		return dataReadError("tree: %s: %v", path, err)
	}

	name := path
	if path == "/" {
		name = "."
	}
	fmt.Fprintf(out, "%s%s\n", formatAttrs(attr, true, showPerm, showSize), name)

	dirCount, fileCount := 1, 0
	if err := renderChildren(fsys, out, n, "", recurse, showSize, showPerm, &dirCount, &fileCount); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d directories, %d files\n", dirCount, fileCount)
	return nil
}

func renderChildren(fsys *ext2.FileSystem, out io.Writer, node *ext2.Node, prefix string, recurse, showSize, showPerm bool, dirCount, fileCount *int) error {
	children := node.Children()
	for i, c := range children {
		last := i == len(children)-1
		branch := "├"
		childPrefix := prefix + "│ "
		if last {
			branch = "└"
			childPrefix = prefix + " "
		}

		attr, err := fsys.Attr(c)
		if err != nil {
			return dataReadError("tree: %s: %v", c.Name(), err)
		}
		fmt.Fprintf(out, "%s%s %s%s\n", prefix, branch, formatAttrs(attr, c.IsDir(), showPerm, showSize), c.Name())

		if c.IsDir() {
			*dirCount++
			if recurse {
				if err := renderChildren(fsys, out, c, childPrefix, recurse, showSize, showPerm, dirCount, fileCount); err != nil {
					return err
				}
			}
		} else {
			*fileCount++
		}
	}
	return nil
}

// formatAttrs renders the optional "[perm size] " prefix shown before a
// tree entry's name. It is empty when neither -p nor -s is set.
func formatAttrs(attr ext2.Attr, isDir, showPerm, showSize bool) string {
	if !showPerm && !showSize {
		return ""
	}
	var parts []string
	if showPerm {
		parts = append(parts, ext2.FormatPermissions(attr.Mode, isDir))
	}
	if showSize {
		parts = append(parts, strconv.FormatUint(uint64(attr.Size), 10))
	}
	return "[" + strings.Join(parts, " ") + "] "
}

// parsePrintArgs splits a print invocation's arguments into its target
// path and an optional -n line-count limit. On a usage error it writes the
// print usage banner to out before returning.
func parsePrintArgs(args []string, out io.Writer) (path string, n int, hasN bool, err error) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "-n" {
			if hasN {
				fmt.Fprint(out, usagePrint)
				return "", 0, false, usageError("print: duplicate flag -n")
			}
			if i+1 >= len(args) {
				fmt.Fprint(out, usagePrint)
				return "", 0, false, usageError("print: -n requires an argument")
			}
			i++
			v, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprint(out, usagePrint)
				return "", 0, false, usageError("print: -n requires an integer argument")
			}
			n, hasN = v, true
			continue
		}
		if strings.HasPrefix(a, "-") && a != "-" {
			fmt.Fprint(out, usagePrint)
			return "", 0, false, usageError("print: unknown flag %s", a)
		}
		if path != "" {
			fmt.Fprint(out, usagePrint)
			return "", 0, false, usageError("print: too many arguments")
		}
		path = a
	}
	if path == "" {
		fmt.Fprint(out, usagePrint)
		return "", 0, false, usageError("print: missing PATH")
	}
	return path, n, hasN, nil
}

func cmdPrint(fsys *ext2.FileSystem, args []string, out io.Writer) error {
	path, n, hasN, err := parsePrintArgs(args, out)
	if err != nil {
		return err
	}
	if hasN && n < 0 {
		return badArgumentError("print: -n must not be negative")
	}

	node, err := fsys.Find(path)
	if err == ext2.ErrNotFound {
		return notFoundError("print: %s: no such file or directory", path)
	} else if err != nil {
		return badArgumentError("print: %s: %v", path, err)
	}
	if node.IsDir() {
		return wrongTypeError("print: %s: is not a file", path)
	}

	if hasN && n == 0 {
		return nil
	}

	f, err := fsys.OpenNode(node)
	if err != nil {
		return dataReadError("print: %s: %v", path, err)
	}
	defer f.Close()

	maxLines := 0
	if hasN {
		maxLines = n
	}
	hasMore, err := f.ReadLines(out, maxLines)
	if err != nil {
		return dataReadError("print: %s: %v", path, err)
	}
	if hasN && hasMore {
		fmt.Fprint(out, "\n")
	}
	return nil
}

func cmdHelp(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usageBanner)
		return nil
	}
	if len(args) > 1 {
		fmt.Fprint(out, usageBanner)
		return usageError("help: too many arguments")
	}
	text, ok := commandUsage(args[0])
	if !ok {
		fmt.Fprint(out, usageBanner)
		return usageError("help: unknown command %q", args[0])
	}
	fmt.Fprint(out, text)
	return nil
}
