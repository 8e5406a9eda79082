package kitten

import (
	"os"
	"strings"
)

// Args creates a pipe containing the program's command-line arguments, one
// per line.
func Args() *Pipe {
	var s strings.Builder
	for _, a := range os.Args[1:] {
		s.WriteString(a + "\n")
	}
	return Echo(s.String())
}

// Echo returns a pipe containing the supplied string.
func Echo(s string) *Pipe {
	return NewPipe().WithReader(strings.NewReader(s))
}

// Exec runs an external command and returns a pipe containing the output. If
// the command had a non-zero exit status, the pipe's error status will also
// be set to the string "exit status X", where X is the integer exit status.
func Exec(cmdLine string) *Pipe {
	return NewPipe().Exec(cmdLine)
}

// File returns a pipe associated with the specified file. This is useful for
// starting pipelines. If there is an error opening the file, the pipe's error
// status will be set.
func File(name string) *Pipe {
	p := NewPipe()
	f, err := os.Open(name)
	if err != nil {
		return p.WithError(err)
	}
	return p.WithReader(f)
}

// Files returns a pipe containing the byte-exact concatenation of the named
// files, in the order given. Zero names is valid and produces an empty pipe.
//
// Each file is opened only when reading reaches it, and its handle is closed
// at its end before the next file is opened, so at most one file is open at
// any moment. If opening or reading any file fails, the stream ends there:
// bytes from earlier files (and any partial bytes from the failing one) have
// already been produced, no later file is touched, and the error surfaces
// from whatever sink reads the pipe.
func Files(names ...string) *Pipe {
	return NewPipe().WithReader(newFileSequence(names))
}

// Slice returns a pipe containing each element of the supplied slice, one
// per line.
func Slice(s []string) *Pipe {
	return Echo(strings.Join(s, "\n") + "\n")
}

// Stdin returns a pipe which reads from the program's standard input.
func Stdin() *Pipe {
	return NewPipe().WithReader(os.Stdin)
}
