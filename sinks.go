package kitten

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// Bytes returns the contents of the pipe as a byte slice, or an error, and
// closes the pipe after reading. If there is an error reading, the pipe's
// error status is also set.
func (p *Pipe) Bytes() ([]byte, error) {
	if p == nil || p.Error() != nil {
		return nil, p.Error()
	}
	defer p.Close()
	res, err := io.ReadAll(p.Reader)
	if err != nil {
		p.SetError(err)
		return nil, err
	}
	return res, nil
}

// CountBytes counts the number of bytes in the pipe, and returns the int64
// result, or an error. If there is an error reading the pipe, the pipe's
// error status is also set.
func (p *Pipe) CountBytes() (int64, error) {
	if p == nil || p.Error() != nil {
		return 0, p.Error()
	}
	defer p.Close()
	n, err := io.Copy(io.Discard, p.Reader)
	if err != nil {
		p.SetError(err)
		return n, err
	}
	return n, nil
}

// CountLines counts lines from the pipe's reader, and returns the integer
// result, or an error. If there is an error reading the pipe, the pipe's
// error status is also set.
func (p *Pipe) CountLines() (int, error) {
	var lines int
	p.EachLine(func(line string, out *strings.Builder) {
		lines++
	})
	return lines, p.Error()
}

// SHA256Sum returns the hex-encoded SHA-256 checksum of the contents of the
// pipe, or an error, and closes the pipe after reading. If there is an error
// reading, the pipe's error status is also set.
func (p *Pipe) SHA256Sum() (string, error) {
	if p == nil || p.Error() != nil {
		return "", p.Error()
	}
	defer p.Close()
	h := sha256.New()
	_, err := io.Copy(h, p.Reader)
	if err != nil {
		p.SetError(err)
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Slice returns the contents of the pipe as a slice of strings, one element
// per line, or an error. If there is an error reading the pipe, the pipe's
// error status is also set.
func (p *Pipe) Slice() ([]string, error) {
	if p == nil || p.Error() != nil {
		return nil, p.Error()
	}
	defer p.Close()
	var result []string
	scanner := bufio.NewScanner(p.Reader)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	err := scanner.Err()
	if err != nil {
		p.SetError(err)
		return nil, err
	}
	return result, nil
}

// Stdout streams the contents of the pipe to the program's standard output
// (or to the writer set with WithStdout). It returns the number of bytes
// successfully written, plus a non-nil error if the write failed or if there
// was an error reading from the pipe. If the pipe has error status, Stdout
// returns zero plus the existing error.
//
// Stdout copies rather than buffering the whole stream, so on failure
// partway through, the bytes written before the failure have already reached
// the output. It does not add or remove a single byte: the output is the
// exact content of the pipe.
func (p *Pipe) Stdout() (int64, error) {
	if p == nil || p.Error() != nil {
		return 0, p.Error()
	}
	defer p.Close()
	out := p.stdout
	if out == nil {
		out = os.Stdout
	}
	wrote, err := io.Copy(out, p.Reader)
	if err != nil {
		p.SetError(err)
		return wrote, err
	}
	return wrote, nil
}

// String returns the contents of the pipe as a string, or an error, and
// closes the pipe after reading. If there is an error reading, the pipe's
// error status is also set.
func (p *Pipe) String() (string, error) {
	data, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes the contents of the pipe to the specified file, and closes
// the pipe after reading. It returns the number of bytes successfully
// written, or an error. If there is an error reading or writing, the pipe's
// error status is also set.
func (p *Pipe) WriteFile(fileName string) (int64, error) {
	return p.writeOrAppendFile(fileName, os.O_RDWR|os.O_CREATE|os.O_TRUNC)
}

// AppendFile appends the contents of the pipe to the specified file, and
// closes the pipe after reading. It returns the number of bytes successfully
// written, or an error. If there is an error reading or writing, the pipe's
// error status is also set.
func (p *Pipe) AppendFile(fileName string) (int64, error) {
	return p.writeOrAppendFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY)
}

func (p *Pipe) writeOrAppendFile(fileName string, mode int) (int64, error) {
	if p == nil || p.Error() != nil {
		return 0, p.Error()
	}
	defer p.Close()
	out, err := os.OpenFile(fileName, mode, 0o644)
	if err != nil {
		p.SetError(err)
		return 0, err
	}
	defer out.Close()
	wrote, err := io.Copy(out, p.Reader)
	if err != nil {
		p.SetError(err)
		return 0, err
	}
	return wrote, nil
}
