package kitten

import (
	"bufio"
	"bytes"
	"container/ring"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/itchyny/gojq"
	"mvdan.cc/sh/v3/shell"
)

// Column reads from the pipe, and returns a new pipe containing only the Nth
// column of each line in the input, where '1' means the first column, and
// columns are delimited by whitespace. If there is an error reading the pipe,
// the pipe's error status is also set.
func (p *Pipe) Column(col int) *Pipe {
	return p.EachLine(func(line string, out *strings.Builder) {
		columns := strings.Fields(line)
		if col <= len(columns) {
			out.WriteString(columns[col-1])
			out.WriteRune('\n')
		}
	})
}

// Concat reads a list of file paths from the pipe, one per line, and returns
// a pipe which streams those files' bytes in sequence, exactly as Files
// would: one handle open at a time, each closed before the next is opened,
// and the first open or read failure terminal. Bytes from files before the
// failing one remain in the stream; no file after it is touched.
func (p *Pipe) Concat() *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	names, err := p.Slice()
	if err != nil {
		return p
	}
	return p.WithReader(newFileSequence(names))
}

// EachLine calls the specified function for each line of input, passing it
// the line as a string, and a *strings.Builder to write its output to. The
// return value from EachLine is a pipe containing the contents of the
// strings.Builder.
func (p *Pipe) EachLine(process func(string, *strings.Builder)) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	scanner := bufio.NewScanner(p.Reader)
	output := strings.Builder{}
	for scanner.Scan() {
		process(scanner.Text(), &output)
		if p.Error() != nil {
			return p
		}
	}
	err := scanner.Err()
	if err != nil {
		p.SetError(err)
	}
	return Echo(output.String())
}

// Exec runs an external command, sending it the contents of the pipe as
// input, and returns a pipe containing the command's combined output. The
// command line is split into arguments shell-style, so quoted arguments
// containing spaces are handled correctly. If the command had a non-zero
// exit status, the pipe's error status will also be set to the string "exit
// status X", where X is the integer exit status.
func (p *Pipe) Exec(cmdLine string) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	q := NewPipe()
	args, err := shell.Fields(cmdLine, nil)
	if err != nil {
		return p.WithError(err)
	}
	if len(args) == 0 {
		return p.WithError(fmt.Errorf("no command given in %q", cmdLine))
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = p.Reader
	output, err := cmd.CombinedOutput()
	if err != nil {
		q.SetError(err)
	}
	return q.WithReader(bytes.NewReader(output))
}

// ExecForEach runs the supplied command once for each line of input, and
// returns a pipe containing the output. The command string is interpreted as
// a Go template, so `{{.}}` will be replaced with the input value, for
// example. If any command resulted in a non-zero exit status, the pipe's
// error status will also be set to the string "exit status X", where X is
// the integer exit status.
func (p *Pipe) ExecForEach(cmdTpl string) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	tpl, err := template.New("").Parse(cmdTpl)
	if err != nil {
		return p.WithError(err)
	}
	return p.EachLine(func(line string, out *strings.Builder) {
		cmdLine := strings.Builder{}
		err := tpl.Execute(&cmdLine, line)
		if err != nil {
			p.SetError(err)
			return
		}
		cmdOutput, err := Exec(cmdLine.String()).String()
		if err != nil {
			p.SetError(err)
			return
		}
		out.WriteString(cmdOutput)
	})
}

// First reads from the pipe, and returns a new pipe containing only the
// first N lines. If there is an error reading the pipe, the pipe's error
// status is also set.
func (p *Pipe) First(lines int) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	defer p.Close()
	if lines == 0 {
		return NewPipe()
	}
	scanner := bufio.NewScanner(p.Reader)
	output := strings.Builder{}
	for i := 0; i < lines; i++ {
		if !scanner.Scan() {
			break
		}
		output.WriteString(scanner.Text())
		output.WriteRune('\n')
	}
	err := scanner.Err()
	if err != nil {
		p.SetError(err)
	}
	return Echo(output.String())
}

// Freq reads from the pipe, and returns a new pipe containing only unique
// lines from the input, prefixed with a frequency count, in descending
// numerical order (most frequent lines first). Lines with equal frequency
// will be sorted alphabetically. If there is an error reading the pipe, the
// pipe's error status is also set.
func (p *Pipe) Freq() *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	freq := map[string]int{}
	p.EachLine(func(line string, out *strings.Builder) {
		freq[line]++
	})
	type frequency struct {
		line  string
		count int
	}
	freqs := make([]frequency, 0, len(freq))
	var maxCount int
	for line, count := range freq {
		freqs = append(freqs, frequency{line, count})
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].count == freqs[j].count {
			return freqs[i].line < freqs[j].line
		}
		return freqs[i].count > freqs[j].count
	})
	fieldWidth := len(strconv.Itoa(maxCount))
	output := strings.Builder{}
	for _, item := range freqs {
		output.WriteString(fmt.Sprintf("%*d %s", fieldWidth, item.count, item.line))
		output.WriteRune('\n')
	}
	return Echo(output.String())
}

// JQ reads JSON from the pipe, applies the supplied gojq query to it, and
// returns a pipe containing the query results, one per line. If the query is
// invalid, or the input is not valid JSON, the pipe's error status is set.
func (p *Pipe) JQ(query string) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	parsed, err := gojq.Parse(query)
	if err != nil {
		return p.WithError(err)
	}
	input, err := p.String()
	if err != nil {
		return p
	}
	var data interface{}
	err = json.Unmarshal([]byte(input), &data)
	if err != nil {
		return p.WithError(err)
	}
	output := strings.Builder{}
	iter := parsed.Run(data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return p.WithError(err)
		}
		result, err := gojq.Marshal(v)
		if err != nil {
			return p.WithError(err)
		}
		output.Write(result)
		output.WriteRune('\n')
	}
	return Echo(output.String())
}

// Last reads from the pipe, and returns a new pipe containing only the last
// N lines. If there is an error reading the pipe, the pipe's error status is
// also set.
func (p *Pipe) Last(lines int) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	defer p.Close()
	if lines == 0 {
		return NewPipe()
	}
	scanner := bufio.NewScanner(p.Reader)
	input := ring.New(lines)
	for scanner.Scan() {
		input.Value = scanner.Text()
		input = input.Next()
	}
	output := strings.Builder{}
	input.Do(func(v interface{}) {
		line, ok := v.(string)
		if ok {
			output.WriteString(line)
			output.WriteRune('\n')
		}
	})
	err := scanner.Err()
	if err != nil {
		p.SetError(err)
	}
	return Echo(output.String())
}

// Match reads from the pipe, and returns a new pipe containing only lines
// which contain the specified string. If there is an error reading the pipe,
// the pipe's error status is also set.
func (p *Pipe) Match(s string) *Pipe {
	return p.EachLine(func(line string, out *strings.Builder) {
		if strings.Contains(line, s) {
			out.WriteString(line)
			out.WriteRune('\n')
		}
	})
}

// MatchRegexp reads from the pipe, and returns a new pipe containing only
// lines which match the specified compiled regular expression. If there is
// an error reading the pipe, the pipe's error status is also set.
func (p *Pipe) MatchRegexp(re *regexp.Regexp) *Pipe {
	return p.EachLine(func(line string, out *strings.Builder) {
		if re.MatchString(line) {
			out.WriteString(line)
			out.WriteRune('\n')
		}
	})
}

// Reject reads from the pipe, and returns a new pipe containing only lines
// which do not contain the specified string. If there is an error reading
// the pipe, the pipe's error status is also set.
func (p *Pipe) Reject(s string) *Pipe {
	return p.EachLine(func(line string, out *strings.Builder) {
		if !strings.Contains(line, s) {
			out.WriteString(line)
			out.WriteRune('\n')
		}
	})
}

// RejectRegexp reads from the pipe, and returns a new pipe containing only
// lines which don't match the specified compiled regular expression. If
// there is an error reading the pipe, the pipe's error status is also set.
func (p *Pipe) RejectRegexp(re *regexp.Regexp) *Pipe {
	return p.EachLine(func(line string, out *strings.Builder) {
		if !re.MatchString(line) {
			out.WriteString(line)
			out.WriteRune('\n')
		}
	})
}

// SHA256Sums reads a list of file paths from the pipe, one per line, and
// returns a pipe containing the hex-encoded SHA-256 checksum of each file.
// Like Concat, SHA256Sums is strict: the first file that cannot be opened or
// read sets the pipe's error status and stops further processing.
func (p *Pipe) SHA256Sums() *Pipe {
	return p.EachLine(func(line string, out *strings.Builder) {
		f, err := os.Open(line)
		if err != nil {
			p.SetError(err)
			return
		}
		defer f.Close()
		h := sha256.New()
		_, err = io.Copy(h, f)
		if err != nil {
			p.SetError(err)
			return
		}
		out.WriteString(hex.EncodeToString(h.Sum(nil)))
		out.WriteRune('\n')
	})
}
