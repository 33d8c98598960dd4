package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrStreamExhausted is returned when a reader has no more input. For a
// replay file this ends the run.
var ErrStreamExhausted = errors.New("command stream exhausted")

// RawReader produces one raw (keyword, parameter) pair per call. The keyword
// is lower-cased; the parameter is the rest of the line after the first space
// with its case kept, since it names files and players.
type RawReader interface {
	ReadRaw(ctx context.Context) (keyword, parameter string, err error)
}

// SplitLine splits a command line on the first space and lower-cases the keyword.
func SplitLine(line string) (keyword, parameter string) {
	keyword, parameter, _ = strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(keyword), strings.TrimSpace(parameter)
}

// ConsoleReader prompts for and reads commands interactively.
type ConsoleReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

// NewConsoleReader reads lines from in and writes prompts to out. The reader
// is shared with anything else consuming the console, such as a human
// player's strategy.
func NewConsoleReader(in *bufio.Reader, out io.Writer) *ConsoleReader {
	return &ConsoleReader{in: in, out: out, prompt: "Enter command: "}
}

// ReadRaw blocks until a line is typed.
func (r *ConsoleReader) ReadRaw(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	fmt.Fprint(r.out, r.prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			kw, param := SplitLine(line)
			return kw, param, nil
		}
		if errors.Is(err, io.EOF) {
			return "", "", fmt.Errorf("console closed: %w", ErrStreamExhausted)
		}
		return "", "", fmt.Errorf("read console: %w", err)
	}
	kw, param := SplitLine(line)
	return kw, param, nil
}

// FileReader replays commands from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
type FileReader struct {
	path    string
	f       *os.File
	scanner *bufio.Scanner
	out     io.Writer
	lineNo  int
}

// OpenFileReader opens path for replay. Echoes of each replayed command go to
// out, which may be nil.
func OpenFileReader(path string, out io.Writer) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open command file %s: %w", path, err)
	}
	if out == nil {
		out = io.Discard
	}
	return &FileReader{path: path, f: f, scanner: bufio.NewScanner(f), out: out}, nil
}

// ReadRaw returns the next command line. End of file is reported as
// ErrStreamExhausted, never as an empty command.
func (r *FileReader) ReadRaw(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if r.scanner == nil {
		return "", "", fmt.Errorf("command file %s is closed: %w", r.path, ErrStreamExhausted)
	}
	for r.scanner.Scan() {
		r.lineNo++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kw, param := SplitLine(line)
		fmt.Fprintf(r.out, "Read command from %s:%d: %s\n", r.path, r.lineNo, line)
		return kw, param, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", "", fmt.Errorf("read command file %s: %w", r.path, err)
	}
	return "", "", fmt.Errorf("end of %s after %d lines: %w", r.path, r.lineNo, ErrStreamExhausted)
}

// Close releases the underlying file.
func (r *FileReader) Close() error {
	r.scanner = nil
	return r.f.Close()
}
