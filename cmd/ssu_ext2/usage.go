package main

const usageTree = `tree <PATH> [-r] [-s] [-p]
    List PATH and its children as a tree.
    -r  recurse into subdirectories
    -s  show file/directory size
    -p  show permission string
`

const usagePrint = `print <PATH> [-n N]
    Print the content of the regular file at PATH.
    -n N  print only the first N newline-terminated lines
`

const usageHelp = `help [cmd]
    Print this banner, or the usage of a single command.
`

const usageExit = `exit
    Leave the shell.
`

const usageBanner = usageTree + usagePrint + usageHelp + usageExit

// commandUsage returns the usage text for a single named command, or the
// full banner (and ok=false) if name is not a known command.
func commandUsage(name string) (text string, ok bool) {
	switch name {
	case "tree":
		return usageTree, true
	case "print":
		return usagePrint, true
	case "help":
		return usageHelp, true
	case "exit":
		return usageExit, true
	default:
		return usageBanner, false
	}
}
