package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ssu-systems/ssu_ext2/filesystem/ext2"
)

const prompt = "20211519> "

// run drives the read-eval-print loop: print the prompt, read one line,
// split it on whitespace, and dispatch on the first token. It returns once
// standard input reaches EOF or an "exit" command is read.
func run(fsys *ext2.FileSystem, in io.Reader, out, errOut io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		if cmd == "exit" {
			return
		}

		if err := dispatch(fsys, cmd, args, out, errOut); err != nil {
			fmt.Fprintln(errOut, err.Error())
		}
	}
}

func dispatch(fsys *ext2.FileSystem, cmd string, args []string, out, errOut io.Writer) error {
	switch cmd {
	case "tree":
		return cmdTree(fsys, args, out)
	case "print":
		return cmdPrint(fsys, args, out)
	case "help":
		return cmdHelp(args, out)
	default:
		fmt.Fprint(out, usageBanner)
		return usageError("unknown command %q", cmd)
	}
}
