// Kitten writes the contents of the files named on its command line to its
// standard output, one after another, in order: the Unix cat command, minus
// the flags.
//
//	kitten [path ...]
//
// Every argument is a file path; there are no options. With no arguments,
// kitten writes nothing and succeeds. On success, the output is the exact
// byte concatenation of the named files, and nothing else.
//
// The first failure of any kind is terminal: a file that cannot be opened or
// read, or an output that cannot be written, stops the run at that point.
// Output already written stays written, no later file is touched, and kitten
// prints the cause to standard error and exits with status 1.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitfield/kitten"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(paths []string, stdout, stderr io.Writer) int {
	_, err := kitten.Files(paths...).WithStdout(stdout).Stdout()
	if err != nil {
		fmt.Fprintln(stderr, "kitten:", err)
		return 1
	}
	return 0
}
