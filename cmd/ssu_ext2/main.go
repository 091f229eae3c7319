// Command ssu_ext2 opens a raw ext2 disk image and serves an interactive,
// read-only navigation shell over it: tree listings and file content
// display, without mounting the image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ssu-systems/ssu_ext2/backend/file"
	"github.com/ssu-systems/ssu_ext2/filesystem/ext2"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-v] <image_path>\n", os.Args[0])
	}
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	imagePath := flag.Arg(0)

	b, err := file.OpenFromPath(imagePath)
	if err != nil {
		logrus.WithError(err).Errorf("cannot open %s", imagePath)
		os.Exit(1)
	}

	fsys, err := ext2.Read(b)
	if err != nil {
		logrus.WithError(err).Errorf("cannot read ext2 image %s", imagePath)
		os.Exit(1)
	}
	defer fsys.Close()

	run(fsys, os.Stdin, os.Stdout, os.Stderr)
}
