package kitten

import (
	"io"
	"os"
)

// fileSequence is an io.ReadCloser that streams the contents of an ordered
// list of files, end to end, with no separator. Files are opened lazily, one
// at a time, as reading proceeds: each file's handle is closed at its EOF,
// before the next file is opened, so the sequence never holds more than one
// open handle. The first error opening or reading any file ends the sequence;
// the remaining names are abandoned, and bytes already produced stay
// produced.
type fileSequence struct {
	names   []string
	current *os.File
}

func newFileSequence(names []string) *fileSequence {
	return &fileSequence{names: names}
}

// Read implements io.Reader. It returns bytes from the current file, moving
// on to the next name in the list whenever the current file is exhausted. An
// empty file contributes zero bytes and is skipped over without disturbing
// its neighbours.
func (fs *fileSequence) Read(b []byte) (int, error) {
	for {
		if fs.current == nil {
			if len(fs.names) == 0 {
				return 0, io.EOF
			}
			f, err := os.Open(fs.names[0])
			if err != nil {
				fs.names = nil
				return 0, err
			}
			fs.current = f
			fs.names = fs.names[1:]
		}
		n, err := fs.current.Read(b)
		if err == io.EOF {
			err = fs.current.Close()
			fs.current = nil
			if err != nil {
				fs.names = nil
				return n, err
			}
			if n > 0 {
				return n, nil
			}
			continue
		}
		if err != nil {
			fs.current.Close()
			fs.current = nil
			fs.names = nil
			return n, err
		}
		return n, nil
	}
}

// Close releases the current file handle, if any, and abandons the remaining
// names. Closing an exhausted or never-read sequence is a no-op.
func (fs *fileSequence) Close() error {
	fs.names = nil
	if fs.current == nil {
		return nil
	}
	f := fs.current
	fs.current = nil
	return f.Close()
}
