package kitten

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestString(t *testing.T) {
	t.Parallel()
	wantRaw, _ := os.ReadFile("testdata/test.txt") // ignoring error
	want := string(wantRaw)
	p := File("testdata/test.txt")
	got, err := p.String()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	_, err = p.String()
	if err == nil {
		t.Fatal("input reader not closed after reading")
	}
}

func TestBytes(t *testing.T) {
	t.Parallel()
	want, err := os.ReadFile("testdata/bytes.bin")
	if err != nil {
		t.Fatal(err)
	}
	got, err := File("testdata/bytes.bin").Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(want, got) {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestCountBytes(t *testing.T) {
	t.Parallel()
	info, err := os.Stat("testdata/test.txt")
	if err != nil {
		t.Fatal(err)
	}
	got, err := File("testdata/test.txt").CountBytes()
	if err != nil {
		t.Fatal(err)
	}
	if got != info.Size() {
		t.Errorf("want %d bytes, got %d", info.Size(), got)
	}
	got, err = File("testdata/empty.txt").CountBytes()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("counting empty file: want 0 bytes, got %d", got)
	}
}

func TestCountLines(t *testing.T) {
	t.Parallel()
	want := 3
	got, err := File("testdata/test.txt").CountLines()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("counting non-empty file: want %d, got %d", want, got)
	}
	want = 0
	got, err = File("testdata/empty.txt").CountLines()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("counting empty file: want %d, got %d", want, got)
	}
}

func TestSHA256SumSink(t *testing.T) {
	t.Parallel()
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	got, err := Echo("hello world").SHA256Sum()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestSliceSink(t *testing.T) {
	t.Parallel()
	want := []string{"a", "b", "c"}
	got, err := Echo("a\nb\nc\n").Slice()
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(want, got) {
		t.Error(cmp.Diff(want, got))
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	want := "Hello, world"
	testFile := filepath.Join(t.TempDir(), "writefile.txt")
	wrote, err := Echo(want).WriteFile(testFile)
	if err != nil {
		t.Fatal(err)
	}
	if int(wrote) != len(want) {
		t.Fatalf("want %d bytes written, got %d", len(want), int(wrote))
	}
	got, err := File(testFile).String()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestAppendFile(t *testing.T) {
	t.Parallel()
	orig := "Hello, world"
	testFile := filepath.Join(t.TempDir(), "appendfile.txt")
	// don't care about results; we're testing AppendFile, not WriteFile
	_, _ = Echo(orig).WriteFile(testFile)
	extra := " and goodbye"
	wrote, err := Echo(extra).AppendFile(testFile)
	if err != nil {
		t.Fatal(err)
	}
	if int(wrote) != len(extra) {
		t.Fatalf("want %d bytes written, got %d", len(extra), int(wrote))
	}
	got, err := File(testFile).String()
	if err != nil {
		t.Fatal(err)
	}
	if got != orig+extra {
		t.Fatalf("want %q, got %q", orig+extra, got)
	}
}

func TestStdoutSink(t *testing.T) {
	t.Parallel()
	want := "hello world"
	buf := &bytes.Buffer{}
	p := File("testdata/hello.txt").WithStdout(buf)
	wrote, err := p.Stdout()
	if err != nil {
		t.Fatal(err)
	}
	if int(wrote) != len(want) {
		t.Fatalf("want %d bytes written, got %d", len(want), wrote)
	}
	if buf.String() != want {
		t.Fatalf("want %q, got %q", want, buf.String())
	}
	_, err = p.String()
	if err == nil {
		t.Fatal("input reader not closed")
	}
}

func TestStdoutStreamsBinaryDataExactly(t *testing.T) {
	t.Parallel()
	want, err := os.ReadFile("testdata/bytes.bin")
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	wrote, err := Files("testdata/bytes.bin").WithStdout(buf).Stdout()
	if err != nil {
		t.Fatal(err)
	}
	if wrote != int64(len(want)) {
		t.Fatalf("want %d bytes written, got %d", len(want), wrote)
	}
	if !bytes.Equal(want, buf.Bytes()) {
		t.Error("output differs from input")
	}
}

func TestStdoutPreservesPartialOutputOnFailure(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	p := Files("testdata/hello.txt", "testdata/nonexistent.txt").WithStdout(buf)
	wrote, err := p.Stdout()
	if err == nil {
		t.Fatal("want error streaming nonexistent file, got nil")
	}
	want, _ := os.ReadFile("testdata/hello.txt")
	if string(want) != buf.String() {
		t.Errorf("want partial output %q, got %q", want, buf.String())
	}
	if wrote != int64(len(want)) {
		t.Errorf("want %d bytes written before failure, got %d", len(want), wrote)
	}
	if p.Error() == nil {
		t.Error("want pipe error status set after failed copy, got nil")
	}
}

func TestEndToEndBytes(t *testing.T) {
	t.Parallel()
	inFile := "testdata/bytes.bin"
	outFile := filepath.Join(t.TempDir(), "bytes.bin.out")
	_, err := File(inFile).WriteFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	inData, _ := os.ReadFile(inFile)
	outData, _ := os.ReadFile(outFile)
	if !bytes.Equal(inData, outData) {
		t.Fatal("output differs from input")
	}
}

func TestSinkOnErroredPipeReturnsZeroValue(t *testing.T) {
	t.Parallel()
	p := File("testdata/nonexistent.txt")
	if _, err := p.Bytes(); err == nil {
		t.Error("Bytes: want error, got nil")
	}
	if n, err := p.CountBytes(); n != 0 || err == nil {
		t.Errorf("CountBytes: want 0 and error, got %d, %v", n, err)
	}
	if s, err := p.SHA256Sum(); s != "" || err == nil {
		t.Errorf("SHA256Sum: want empty and error, got %q, %v", s, err)
	}
	buf := &bytes.Buffer{}
	if n, err := p.WithStdout(buf).Stdout(); n != 0 || err == nil {
		t.Errorf("Stdout: want 0 and error, got %d, %v", n, err)
	}
	if buf.Len() != 0 {
		t.Errorf("Stdout on errored pipe wrote %q", buf.String())
	}
}
